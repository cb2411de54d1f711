package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"blogapi/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockPostRepo(t *testing.T) (*PostSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewPostSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

var postColumns = []string{"id", "title", "content", "author_id", "created_at", "name"}

func TestPostSQLite_List(t *testing.T) {
	repo, mock, cleanup := newMockPostRepo(t)
	defer cleanup()

	createdAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(postColumns).
		AddRow(1, "Hi", "Body", 7, createdAt, "Alice").
		AddRow(2, "Orphaned", "Body", 9, createdAt, nil) // author row gone

	mock.ExpectQuery(regexp.QuoteMeta(selectPostsSQL)).WillReturnRows(rows)

	posts, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].AuthorName != "Alice" {
		t.Fatalf("expected joined author name, got %q", posts[0].AuthorName)
	}
	if posts[1].AuthorName != "" {
		t.Fatalf("expected empty author name for NULL join, got %q", posts[1].AuthorName)
	}
}

func TestPostSQLite_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := newMockPostRepo(t)
		defer cleanup()

		createdAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
		mock.ExpectQuery(regexp.QuoteMeta(selectPostByIDSQL)).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows(postColumns).AddRow(5, "Hi", "Body", 7, createdAt, "Alice"))

		p, err := repo.GetByID(context.Background(), 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p == nil || p.ID != 5 || p.AuthorName != "Alice" {
			t.Fatalf("unexpected post: %+v", p)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := newMockPostRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectPostByIDSQL)).
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows(postColumns))

		p, err := repo.GetByID(context.Background(), 99)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p != nil {
			t.Fatalf("expected nil post, got %+v", p)
		}
	})
}

func TestPostSQLite_Create(t *testing.T) {
	t.Run("success sets id and timestamp", func(t *testing.T) {
		repo, mock, cleanup := newMockPostRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertPostSQL)).
			WithArgs("Hi", "Body", 7, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(3, 1))

		p, err := repo.Create(context.Background(), models.Post{Title: "Hi", Content: "Body", AuthorID: 7})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID != 3 {
			t.Fatalf("expected id=3, got %d", p.ID)
		}
		if p.CreatedAt.IsZero() {
			t.Fatal("expected CreatedAt to be set")
		}
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock, cleanup := newMockPostRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertPostSQL)).
			WithArgs("Hi", "Body", 7, sqlmock.AnyArg()).
			WillReturnError(errors.New("db exec failed"))

		_, err := repo.Create(context.Background(), models.Post{Title: "Hi", Content: "Body", AuthorID: 7})
		if err == nil || !contains(err.Error(), "insert post") {
			t.Fatalf("expected insert error, got %v", err)
		}
	})
}

func TestPostSQLite_Update(t *testing.T) {
	title := "New title"
	content := "New content"

	t.Run("title only", func(t *testing.T) {
		repo, mock, cleanup := newMockPostRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE posts SET title = ? WHERE id = ?")).
			WithArgs(title, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Update(context.Background(), 3, &title, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("both fields", func(t *testing.T) {
		repo, mock, cleanup := newMockPostRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE posts SET title = ?, content = ? WHERE id = ?")).
			WithArgs(title, content, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Update(context.Background(), 3, &title, &content); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("empty string is still a write", func(t *testing.T) {
		repo, mock, cleanup := newMockPostRepo(t)
		defer cleanup()

		empty := ""
		mock.ExpectExec(regexp.QuoteMeta("UPDATE posts SET title = ? WHERE id = ?")).
			WithArgs(empty, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Update(context.Background(), 3, &empty, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("no fields is a no-op", func(t *testing.T) {
		repo, _, cleanup := newMockPostRepo(t)
		defer cleanup()

		// no ExpectExec: the repo must not touch the database
		if err := repo.Update(context.Background(), 3, nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestPostSQLite_Delete(t *testing.T) {
	repo, mock, cleanup := newMockPostRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(deletePostSQL)).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
