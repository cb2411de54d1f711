package repository

import (
	"blogapi/internal/models"
	"context"
	"database/sql"
	"time"
)

type Users interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type Posts interface {
	List(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id int) (*models.Post, error)
	Create(ctx context.Context, p models.Post) (models.Post, error)
	Update(ctx context.Context, id int, title, content *string) error
	Delete(ctx context.Context, id int) error
}

type Activity interface {
	Append(ctx context.Context, e models.ActivityEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ActivityEvent, error)
}

type Repository struct {
	Users    Users
	Posts    Posts
	Activity Activity
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserSQLite(db),
		Posts:    NewPostSQLite(db),
		Activity: NewActivitySQLite(db),
	}
}
