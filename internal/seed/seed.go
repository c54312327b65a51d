// Package seed creates demo data for development databases. These
// helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers           int
	NumPosts           int
	MaxCommentsPerPost int
	// Password shared by all seeded accounts so any of them can log in
	// during development.
	Password string
}

// Seeder populates a database with demo users, posts, and comments.
type Seeder struct {
	db          *gorm.DB
	opts        Options
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	rng         *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.NumUsers <= 0 {
		opts.NumUsers = 5
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 20
	}
	if opts.MaxCommentsPerPost <= 0 {
		opts.MaxCommentsPerPost = 6
	}
	if opts.Password == "" {
		opts.Password = "password123"
	}

	return &Seeder{
		db:          db,
		opts:        opts,
		userRepo:    repository.NewUserRepository(db),
		postRepo:    repository.NewPostRepository(db),
		commentRepo: repository.NewCommentRepository(db),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes every row, children before parents so the foreign
// keys hold at each step.
func (s *Seeder) ClearAll() error {
	for _, stmt := range []string{
		"DELETE FROM comments",
		"DELETE FROM blog_posts",
		"DELETE FROM users",
	} {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}
	return nil
}

// Run seeds users, then posts spread over the recent past, then a
// random handful of comments per post. It goes through the repositories
// so the seeded data obeys the same constraints as real traffic.
func (s *Seeder) Run(ctx context.Context) error {
	// One digest for everyone; hashing is deliberately slow.
	digest, err := auth.HashPassword(s.opts.Password)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, s.opts.NumUsers)
	for i := 0; i < s.opts.NumUsers; i++ {
		user := &models.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("%d.%s", i, strings.ToLower(gofakeit.Email())),
			Password: digest,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	posts := make([]*models.Post, 0, s.opts.NumPosts)
	for i := 0; i < s.opts.NumPosts; i++ {
		author := users[s.rng.Intn(len(users))]
		post := &models.Post{
			AuthorID: author.ID,
			Title:    fmt.Sprintf("%s (%d)", strings.TrimSuffix(gofakeit.Sentence(4), "."), i+1),
			Subtitle: strings.TrimSuffix(gofakeit.Sentence(6), "."),
			Date:     s.randomRecentDate(),
			Body:     "<p>" + gofakeit.Paragraph(2, 4, 10, "</p><p>") + "</p>",
			ImgURL:   fmt.Sprintf("https://picsum.photos/seed/%s/800/400", gofakeit.UUID()),
		}
		if err := s.postRepo.Create(ctx, post); err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, post)
	}

	for _, post := range posts {
		for i := 0; i < s.rng.Intn(s.opts.MaxCommentsPerPost+1); i++ {
			comment := &models.Comment{
				Text:     gofakeit.Sentence(12),
				AuthorID: users[s.rng.Intn(len(users))].ID,
				PostID:   post.ID,
			}
			if err := s.commentRepo.Create(ctx, comment); err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
		}
	}

	return nil
}

// randomRecentDate picks a date within the last 90 days.
func (s *Seeder) randomRecentDate() string {
	daysBack := s.rng.Intn(90)
	return time.Now().AddDate(0, 0, -daysBack).Format("2006-01-02")
}
