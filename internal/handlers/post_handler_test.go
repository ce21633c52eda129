package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/myville/backend/internal/dto"
	"github.com/myville/backend/internal/models"
	"github.com/myville/backend/internal/services"
	"gorm.io/gorm"
)

var errStoreDown = errors.New("connection refused")

// brokenPostStore has one healthy post but fails every list-shaped read.
type brokenPostStore struct {
	post models.Post
}

func (s *brokenPostStore) CreatePost(p *models.Post) error { return errStoreDown }

func (s *brokenPostStore) PostByID(id uuid.UUID) (*models.Post, error) {
	if id == s.post.ID {
		cp := s.post
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *brokenPostStore) ListPosts(q *dto.ListPostsQuery) ([]models.Post, error) {
	return nil, errStoreDown
}

func (s *brokenPostStore) UpdatePostStatus(id uuid.UUID, status models.PostStatus) error {
	return errStoreDown
}

func (s *brokenPostStore) DeletePost(p *models.Post) error { return errStoreDown }

func (s *brokenPostStore) HasVote(postID, userID uuid.UUID) (bool, error) { return false, nil }

func (s *brokenPostStore) AddVote(v *models.PostVote) error { return errStoreDown }

func (s *brokenPostStore) RemoveVote(postID, userID uuid.UUID) error { return errStoreDown }

func (s *brokenPostStore) AdjustVoteCount(postID uuid.UUID, delta int) error { return errStoreDown }

func (s *brokenPostStore) VotedPostIDs(userID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return nil, errStoreDown
}

func (s *brokenPostStore) CreateComment(c *models.Comment) error { return errStoreDown }

func (s *brokenPostStore) CommentsByPost(postID uuid.UUID) ([]models.Comment, error) {
	return nil, errStoreDown
}

func (s *brokenPostStore) AdjustCommentCount(postID uuid.UUID, delta int) error { return errStoreDown }

func feedApp(store services.PostStore) *fiber.App {
	h := NewPostHandler(services.NewPostService(store), nil)
	app := fiber.New()
	app.Get("/posts", h.List)
	app.Get("/posts/:id/comments", h.Comments)
	return app
}

func getBody(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestListDegradesToEmptyFeedOnStoreFailure(t *testing.T) {
	app := feedApp(&brokenPostStore{})

	status, body := getBody(t, app, "/posts")
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestListStillRejectsBadFilters(t *testing.T) {
	app := feedApp(&brokenPostStore{})

	status, body := getBody(t, app, "/posts?category=potholes")
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if body == "[]" {
		t.Error("filter validation error was swallowed")
	}
}

func TestCommentsDegradeToEmptyListOnStoreFailure(t *testing.T) {
	store := &brokenPostStore{post: models.Post{ID: uuid.New()}}
	app := feedApp(store)

	status, body := getBody(t, app, "/posts/"+store.post.ID.String()+"/comments")
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestCommentsUnknownPostStays404(t *testing.T) {
	app := feedApp(&brokenPostStore{post: models.Post{ID: uuid.New()}})

	status, _ := getBody(t, app, "/posts/"+uuid.New().String()+"/comments")
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}
