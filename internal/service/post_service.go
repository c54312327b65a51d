package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// PostService enforces the post lifecycle rules. Any authenticated user
// may edit or delete any post; see DESIGN.md before changing that.
type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Subtitle string
	ImgURL   string
	Body     string
}

type UpdatePostInput struct {
	PostID   uint
	Title    string
	Subtitle string
	ImgURL   string
	Body     string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// today is the publication-date stamp: the date of the last save.
func today() string {
	return time.Now().Format("2006-01-02")
}

func validatePostFields(title, subtitle, imgURL, body string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(subtitle) == "" {
		return models.NewValidationError("Subtitle is required")
	}
	if err := validation.ValidateImageURL(imgURL); err != nil {
		return models.NewValidationError(err.Error())
	}
	if strings.TrimSpace(body) == "" {
		return models.NewValidationError("Blog content is required")
	}
	return nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// CreatePost binds the post to the session identity and stamps today's
// date. The author is never taken from the request.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostFields(in.Title, in.Subtitle, in.ImgURL, in.Body); err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID: in.AuthorID,
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Date:     today(),
		Body:     in.Body,
		ImgURL:   in.ImgURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost overwrites title/subtitle/image/body and re-stamps the
// date. ID and author are immutable across edits.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if err := validatePostFields(in.Title, in.Subtitle, in.ImgURL, in.Body); err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.ImgURL = in.ImgURL
	post.Body = in.Body
	post.Date = today()

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post and, transitively, its comments.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, id)
}
