package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password hashing dominates the auth flows, so give app.Test plenty of
// headroom.
const testTimeoutMs = 30000

// newTestServer builds a full server over a private in-memory database
// with real templates, so handler tests exercise the same pipeline as
// production requests.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
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

	cfg := &config.Config{
		Port:      "5003",
		DBPath:    ":memory:",
		SecretKey: "unit-test-secret-key-0123456789abcdef",
		Env:       "test",
	}
	srv := NewServerWithDeps(cfg, db)
	app := srv.BuildApp("../../views")
	return srv, app, db
}

// cookieJar carries cookies between requests the way a browser would.
type cookieJar struct {
	cookies map[string]string
}

func newCookieJar() *cookieJar {
	return &cookieJar{cookies: map[string]string{}}
}

func (j *cookieJar) apply(req *http.Request) {
	for name, value := range j.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
}

func (j *cookieJar) update(resp *http.Response) {
	for _, c := range resp.Cookies() {
		if c.Value == "" {
			delete(j.cookies, c.Name)
			continue
		}
		j.cookies[c.Name] = c.Value
	}
}

func doGet(t *testing.T, app *fiber.App, jar *cookieJar, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if jar != nil {
		jar.apply(req)
	}
	resp, err := app.Test(req, testTimeoutMs)
	require.NoError(t, err)
	if jar != nil {
		jar.update(resp)
	}
	return resp
}

func doPostForm(t *testing.T, app *fiber.App, jar *cookieJar, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	if jar != nil {
		jar.apply(req)
	}
	resp, err := app.Test(req, testTimeoutMs)
	require.NoError(t, err)
	if jar != nil {
		jar.update(resp)
	}
	return resp
}

// seedUser inserts a user with a real digest so login works against it.
func seedUser(t *testing.T, db *gorm.DB, name, email, password string) *models.User {
	t.Helper()
	digest, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{Name: name, Email: email, Password: digest}
	require.NoError(t, db.Create(user).Error)
	return user
}

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
	require.NoError(t, db.Create(post).Error)
	return post
}

// login runs the real login flow and stores the session in the jar.
func login(t *testing.T, app *fiber.App, jar *cookieJar, email, password string) {
	t.Helper()
	resp := doPostForm(t, app, jar, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
	require.NotEmpty(t, jar.cookies[sessionCookieName], "login must set a session cookie")
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
