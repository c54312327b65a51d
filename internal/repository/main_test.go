package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite database with the full
// schema migrated. A single connection keeps the in-memory database
// alive for the whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}))
	return db
}

// seedUser inserts a user directly, bypassing the service layer.
func seedUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "pbkdf2:sha256:600000$testsalt$00"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

// seedPost inserts a post owned by the given user.
func seedPost(t *testing.T, db *gorm.DB, authorID uint, title string) *models.Post {
	t.Helper()
	post := &models.Post{
		AuthorID: authorID,
		Title:    title,
		Subtitle: "sub",
		Date:     "2026-08-29",
		Body:     "body",
		ImgURL:   "https://example.com/cover.png",
	}
	require.NoError(t, NewPostRepository(db).Create(context.Background(), post))
	return post
}

// seedComment inserts a comment on the given post.
func seedComment(t *testing.T, db *gorm.DB, authorID, postID uint, text string) *models.Comment {
	t.Helper()
	comment := &models.Comment{AuthorID: authorID, PostID: postID, Text: text}
	require.NoError(t, NewCommentRepository(db).Create(context.Background(), comment))
	return comment
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
