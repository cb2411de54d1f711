package service

import (
	"context"
	"errors"
	"fmt"

	"blogapi/internal/models"
	"blogapi/internal/repository"
)

// Domain errors for post flows. Not-found and wrong-owner stay distinct so the
// HTTP layer can answer 404 vs 403.
var (
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostAuthor = errors.New("post belongs to another user")
)

// PostService implements Blog on top of the posts repository, recording
// audit events and publishing created posts to the live feed.
type PostService struct {
	posts    repository.Posts
	activity *ActivityService
	feed     Feed
}

func NewPostService(posts repository.Posts, activity *ActivityService, feed Feed) *PostService {
	return &PostService{posts: posts, activity: activity, feed: feed}
}

func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id int) (models.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if p == nil {
		return models.Post{}, ErrPostNotFound
	}
	return *p, nil
}

// CreatePost inserts a post owned by authorID.
func (s *PostService) CreatePost(ctx context.Context, authorID int, title, content string) (models.Post, error) {
	created, err := s.posts.Create(ctx, models.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	})
	if err != nil {
		return models.Post{}, err
	}

	_ = s.activity.Record(ctx, models.ActivityEvent{
		Type:        models.EventPostCreated,
		ActorID:     authorID,
		Description: fmt.Sprintf("post %d created", created.ID),
		Metadata:    map[string]any{"post_id": created.ID, "title": created.Title},
	})
	if s.feed != nil {
		s.feed.Publish(created)
	}

	return created, nil
}

// UpdatePost applies a partial patch after the ownership check. The existence
// check runs first, so an unknown id yields not-found even for non-owners.
func (s *PostService) UpdatePost(ctx context.Context, id, callerID int, patch PostPatch) (models.Post, error) {
	existing, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if existing == nil {
		return models.Post{}, ErrPostNotFound
	}
	if existing.AuthorID != callerID {
		return models.Post{}, ErrNotPostAuthor
	}

	if err := s.posts.Update(ctx, id, patch.Title, patch.Content); err != nil {
		return models.Post{}, err
	}

	updated, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if updated == nil {
		// deleted between the write and the re-read
		return models.Post{}, ErrPostNotFound
	}

	_ = s.activity.Record(ctx, models.ActivityEvent{
		Type:        models.EventPostUpdated,
		ActorID:     callerID,
		Description: fmt.Sprintf("post %d updated", id),
	})

	return *updated, nil
}

// DeletePost removes a post after the ownership check.
func (s *PostService) DeletePost(ctx context.Context, id, callerID int) error {
	existing, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrPostNotFound
	}
	if existing.AuthorID != callerID {
		return ErrNotPostAuthor
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.activity.Record(ctx, models.ActivityEvent{
		Type:        models.EventPostDeleted,
		ActorID:     callerID,
		Description: fmt.Sprintf("post %d deleted", id),
	})

	return nil
}
