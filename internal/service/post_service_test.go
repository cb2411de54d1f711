package service

import (
	"context"
	"errors"
	"testing"

	"blogapi/internal/models"
)

// mockPostsRepo is a lightweight in-test mock for repository.Posts.
type mockPostsRepo struct {
	ListFn    func(ctx context.Context) ([]models.Post, error)
	GetByIDFn func(ctx context.Context, id int) (*models.Post, error)
	CreateFn  func(ctx context.Context, p models.Post) (models.Post, error)
	UpdateFn  func(ctx context.Context, id int, title, content *string) error
	DeleteFn  func(ctx context.Context, id int) error

	updateCalls int
	deleteCalls int
}

func (m *mockPostsRepo) List(ctx context.Context) ([]models.Post, error) {
	return m.ListFn(ctx)
}
func (m *mockPostsRepo) GetByID(ctx context.Context, id int) (*models.Post, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockPostsRepo) Create(ctx context.Context, p models.Post) (models.Post, error) {
	return m.CreateFn(ctx, p)
}
func (m *mockPostsRepo) Update(ctx context.Context, id int, title, content *string) error {
	m.updateCalls++
	return m.UpdateFn(ctx, id, title, content)
}
func (m *mockPostsRepo) Delete(ctx context.Context, id int) error {
	m.deleteCalls++
	return m.DeleteFn(ctx, id)
}

// collectingFeed satisfies Feed for create tests.
type collectingFeed struct {
	published []models.Post
}

func (f *collectingFeed) Subscribe() (<-chan models.Post, func()) {
	ch := make(chan models.Post)
	return ch, func() {}
}
func (f *collectingFeed) Publish(p models.Post) { f.published = append(f.published, p) }

func newTestPostService(posts *mockPostsRepo) (*PostService, *mockActivityRepo, *collectingFeed) {
	activity := &mockActivityRepo{}
	feed := &collectingFeed{}
	return NewPostService(posts, NewActivityService(activity), feed), activity, feed
}

func strPtr(s string) *string { return &s }

func TestPostService_GetPost_NotFound(t *testing.T) {
	posts := &mockPostsRepo{
		GetByIDFn: func(ctx context.Context, id int) (*models.Post, error) { return nil, nil },
	}
	svc, _, _ := newTestPostService(posts)

	_, err := svc.GetPost(context.Background(), 99)
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_CreatePost_RecordsAndPublishes(t *testing.T) {
	posts := &mockPostsRepo{
		CreateFn: func(ctx context.Context, p models.Post) (models.Post, error) {
			p.ID = 3
			return p, nil
		},
	}
	svc, activity, feed := newTestPostService(posts)

	created, err := svc.CreatePost(context.Background(), 7, "Hi", "Body")
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	if created.ID != 3 || created.AuthorID != 7 {
		t.Fatalf("unexpected post: %+v", created)
	}

	if len(activity.appended) != 1 || activity.appended[0].Type != models.EventPostCreated {
		t.Fatalf("expected POST_CREATED event, got %+v", activity.appended)
	}
	if activity.appended[0].ActorID != 7 {
		t.Fatalf("expected actor 7, got %d", activity.appended[0].ActorID)
	}
	if len(feed.published) != 1 || feed.published[0].ID != 3 {
		t.Fatalf("expected post published to feed, got %+v", feed.published)
	}
}

func TestPostService_CreatePost_ActivityFailureDoesNotFailCreate(t *testing.T) {
	posts := &mockPostsRepo{
		CreateFn: func(ctx context.Context, p models.Post) (models.Post, error) {
			p.ID = 3
			return p, nil
		},
	}
	activity := &mockActivityRepo{appendErr: errors.New("audit store down")}
	svc := NewPostService(posts, NewActivityService(activity), &collectingFeed{})

	if _, err := svc.CreatePost(context.Background(), 7, "Hi", "Body"); err != nil {
		t.Fatalf("create must not fail on audit errors, got %v", err)
	}
}

func TestPostService_UpdatePost_OwnershipAndExistence(t *testing.T) {
	owned := &models.Post{ID: 3, Title: "Hi", Content: "Body", AuthorID: 7}

	t.Run("wrong owner", func(t *testing.T) {
		posts := &mockPostsRepo{
			GetByIDFn: func(ctx context.Context, id int) (*models.Post, error) { return owned, nil },
			UpdateFn: func(ctx context.Context, id int, title, content *string) error {
				t.Fatal("Update should not run for a non-owner")
				return nil
			},
		}
		svc, _, _ := newTestPostService(posts)

		_, err := svc.UpdatePost(context.Background(), 3, 8, PostPatch{Title: strPtr("X")})
		if !errors.Is(err, ErrNotPostAuthor) {
			t.Fatalf("expected ErrNotPostAuthor, got %v", err)
		}
	})

	t.Run("missing post wins over ownership", func(t *testing.T) {
		posts := &mockPostsRepo{
			GetByIDFn: func(ctx context.Context, id int) (*models.Post, error) { return nil, nil },
		}
		svc, _, _ := newTestPostService(posts)

		_, err := svc.UpdatePost(context.Background(), 99, 8, PostPatch{Title: strPtr("X")})
		if !errors.Is(err, ErrPostNotFound) {
			t.Fatalf("expected ErrPostNotFound, got %v", err)
		}
	})

	t.Run("owner patch forwards pointers as-is", func(t *testing.T) {
		var gotTitle, gotContent *string
		updated := &models.Post{ID: 3, Title: "New", Content: "Body", AuthorID: 7}
		reads := 0
		posts := &mockPostsRepo{
			GetByIDFn: func(ctx context.Context, id int) (*models.Post, error) {
				reads++
				if reads == 1 {
					return owned, nil
				}
				return updated, nil
			},
			UpdateFn: func(ctx context.Context, id int, title, content *string) error {
				gotTitle, gotContent = title, content
				return nil
			},
		}
		svc, activity, _ := newTestPostService(posts)

		out, err := svc.UpdatePost(context.Background(), 3, 7, PostPatch{Title: strPtr("New")})
		if err != nil {
			t.Fatalf("UpdatePost returned error: %v", err)
		}
		if out.Title != "New" || out.Content != "Body" {
			t.Fatalf("unexpected result: %+v", out)
		}
		if gotTitle == nil || *gotTitle != "New" {
			t.Fatalf("title pointer not forwarded: %+v", gotTitle)
		}
		if gotContent != nil {
			t.Fatalf("content was absent, expected nil, got %q", *gotContent)
		}
		if len(activity.appended) != 1 || activity.appended[0].Type != models.EventPostUpdated {
			t.Fatalf("expected POST_UPDATED event, got %+v", activity.appended)
		}
	})
}

func TestPostService_DeletePost(t *testing.T) {
	owned := &models.Post{ID: 3, AuthorID: 7}

	t.Run("wrong owner", func(t *testing.T) {
		posts := &mockPostsRepo{
			GetByIDFn: func(ctx context.Context, id int) (*models.Post, error) { return owned, nil },
			DeleteFn: func(ctx context.Context, id int) error {
				t.Fatal("Delete should not run for a non-owner")
				return nil
			},
		}
		svc, _, _ := newTestPostService(posts)

		if err := svc.DeletePost(context.Background(), 3, 8); !errors.Is(err, ErrNotPostAuthor) {
			t.Fatalf("expected ErrNotPostAuthor, got %v", err)
		}
	})

	t.Run("missing post", func(t *testing.T) {
		posts := &mockPostsRepo{
			GetByIDFn: func(ctx context.Context, id int) (*models.Post, error) { return nil, nil },
		}
		svc, _, _ := newTestPostService(posts)

		if err := svc.DeletePost(context.Background(), 99, 7); !errors.Is(err, ErrPostNotFound) {
			t.Fatalf("expected ErrPostNotFound, got %v", err)
		}
	})

	t.Run("owner", func(t *testing.T) {
		posts := &mockPostsRepo{
			GetByIDFn: func(ctx context.Context, id int) (*models.Post, error) { return owned, nil },
			DeleteFn:  func(ctx context.Context, id int) error { return nil },
		}
		svc, activity, _ := newTestPostService(posts)

		if err := svc.DeletePost(context.Background(), 3, 7); err != nil {
			t.Fatalf("DeletePost returned error: %v", err)
		}
		if posts.deleteCalls != 1 {
			t.Fatalf("expected 1 Delete call, got %d", posts.deleteCalls)
		}
		if len(activity.appended) != 1 || activity.appended[0].Type != models.EventPostDeleted {
			t.Fatalf("expected POST_DELETED event, got %+v", activity.appended)
		}
	})
}
