package server

import (
	"fmt"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postForm struct {
	Title    string `form:"title"`
	Subtitle string `form:"subtitle"`
	ImgURL   string `form:"img_url"`
	Body     string `form:"body"`
}

// Index lists every post, newest date first.
func (s *Server) Index(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return err
	}
	return s.render(c, "index", fiber.Map{"Posts": posts})
}

// ShowPost renders a single post with its comments and the comment form.
func (s *Server) ShowPost(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return err
	}
	comments, err := s.commentService.ListComments(c.UserContext(), id)
	if err != nil {
		return err
	}

	return s.render(c, "post", fiber.Map{
		"Post":     post,
		"Comments": comments,
	})
}

// MakePostPage renders the empty authoring form.
func (s *Server) MakePostPage(c *fiber.Ctx) error {
	return s.render(c, "make-post", fiber.Map{
		"Heading": "New Post",
		"Action":  "/make-post",
	})
}

// MakePost creates a post authored by the session user.
func (s *Server) MakePost(c *fiber.Ctx) error {
	user := sessionUser(c)

	var form postForm
	if err := c.BodyParser(&form); err != nil {
		return s.render(c, "make-post", fiber.Map{
			"Heading": "New Post",
			"Action":  "/make-post",
			"Error":   "Invalid form submission",
		})
	}

	_, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorID: user.ID,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		ImgURL:   form.ImgURL,
		Body:     form.Body,
	})
	if err != nil {
		switch models.ErrorCode(err) {
		case models.CodeValidation:
			return s.render(c, "make-post", fiber.Map{
				"Heading": "New Post",
				"Action":  "/make-post",
				"Error":   models.ErrorMessage(err),
				"Form":    form,
			})
		case models.CodeConflict:
			setFlash(c, flashDanger, models.ErrorMessage(err))
			return c.Redirect("/make-post", fiber.StatusSeeOther)
		default:
			return err
		}
	}

	setFlash(c, flashSuccess, "Post Created!")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// EditPostPage renders the authoring form pre-filled with the post.
func (s *Server) EditPostPage(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}
	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return err
	}

	return s.render(c, "make-post", fiber.Map{
		"Heading": "Edit Post",
		"Action":  fmt.Sprintf("/edit-post/%d", post.ID),
		"Form": postForm{
			Title:    post.Title,
			Subtitle: post.Subtitle,
			ImgURL:   post.ImgURL,
			Body:     post.Body,
		},
	})
}

// EditPost overwrites the editable fields and re-stamps the date.
func (s *Server) EditPost(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	var form postForm
	if err := c.BodyParser(&form); err != nil {
		return s.render(c, "make-post", fiber.Map{
			"Heading": "Edit Post",
			"Action":  fmt.Sprintf("/edit-post/%d", id),
			"Error":   "Invalid form submission",
		})
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		PostID:   id,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		ImgURL:   form.ImgURL,
		Body:     form.Body,
	})
	if err != nil {
		switch models.ErrorCode(err) {
		case models.CodeValidation:
			return s.render(c, "make-post", fiber.Map{
				"Heading": "Edit Post",
				"Action":  fmt.Sprintf("/edit-post/%d", id),
				"Error":   models.ErrorMessage(err),
				"Form":    form,
			})
		case models.CodeConflict:
			setFlash(c, flashDanger, models.ErrorMessage(err))
			return c.Redirect(fmt.Sprintf("/edit-post/%d", id), fiber.StatusSeeOther)
		default:
			return err
		}
	}

	setFlash(c, flashSuccess, "Post Edited!")
	return c.Redirect(fmt.Sprintf("/show_post/%d", post.ID), fiber.StatusSeeOther)
}

// DeletePost removes the post and its comments, then returns to the index.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}
	if err := s.postService.DeletePost(c.UserContext(), id); err != nil {
		return err
	}

	setFlash(c, flashSuccess, "Post Deleted!")
	return c.Redirect("/", fiber.StatusSeeOther)
}
