package service

import (
	"context"
	"time"

	"blogapi/internal/models"
	"blogapi/internal/repository"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// TokenClaims is the identity decoded from a bearer token.
type TokenClaims struct {
	UserID   int
	Username string
	Name     string
}

// PostPatch describes a partial update. A nil field means "leave untouched";
// a non-nil pointer writes the value, including an empty string.
type PostPatch struct {
	Title   *string
	Content *string
}

// ActivityFilter supports history filtering by time range and type.
type ActivityFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", or one of the models.Event* constants
}

// AuthConfig is built in main from configuration; auth components never read
// ambient environment themselves.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration // zero falls back to 24h
}

type Authorization interface {
	Register(ctx context.Context, in RegisterInput) (models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (*TokenClaims, error)
}

// Blog exposes post reads and owner-guarded mutations.
type Blog interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id int) (models.Post, error)
	CreatePost(ctx context.Context, authorID int, title, content string) (models.Post, error)
	UpdatePost(ctx context.Context, id, callerID int, patch PostPatch) (models.Post, error)
	DeletePost(ctx context.Context, id, callerID int) error
}

// ActivityLog exposes the append-only audit trail with filtering access.
type ActivityLog interface {
	List(ctx context.Context, f ActivityFilter) ([]models.ActivityEvent, error)
}

// Feed fans newly created posts out to live subscribers.
type Feed interface {
	Subscribe() (<-chan models.Post, func())
	Publish(p models.Post)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Blog
	ActivityLog
	Feed
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, auth AuthConfig) *Service {
	activity := NewActivityService(repos.Activity)
	feed := NewFeedService()
	return &Service{
		Authorization: NewAuthService(repos.Users, activity, auth),
		Blog:          NewPostService(repos.Posts, activity, feed),
		ActivityLog:   activity,
		Feed:          feed,
	}
}
