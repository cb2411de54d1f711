package repository

import (
	"blogapi/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

type PostSQLite struct {
	db *sql.DB
}

func NewPostSQLite(db *sql.DB) *PostSQLite {
	return &PostSQLite{db: db}
}

var _ Posts = (*PostSQLite)(nil)

const (
	// Author name comes via LEFT JOIN so a post never disappears from reads
	// even if its author row is gone.
	selectPostsSQL = `
		SELECT p.id, p.title, p.content, p.author_id, p.created_at, u.name
		FROM posts p
		LEFT JOIN users u ON u.id = p.author_id
		ORDER BY p.id ASC`

	selectPostByIDSQL = `
		SELECT p.id, p.title, p.content, p.author_id, p.created_at, u.name
		FROM posts p
		LEFT JOIN users u ON u.id = p.author_id
		WHERE p.id = ?`

	insertPostSQL = `INSERT INTO posts (title, content, author_id, created_at) VALUES (?, ?, ?, ?)`
	deletePostSQL = `DELETE FROM posts WHERE id = ?`
)

// sqliteTimestampLayout matches the TIMESTAMP format SQLite stores.
const sqliteTimestampLayout = "2006-01-02 15:04:05"

// List returns all posts joined with the author name, oldest first.
func (r *PostSQLite) List(ctx context.Context) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, selectPostsSQL)
	if err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}
	defer rows.Close()

	out := make([]models.Post, 0, 32)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return out, nil
}

// GetByID fetches a single post joined with the author name.
// Returns (nil, nil) if not found.
func (r *PostSQLite) GetByID(ctx context.Context, id int) (*models.Post, error) {
	row := r.db.QueryRowContext(ctx, selectPostByIDSQL, id)
	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select post %d: %w", id, err)
	}
	return &p, nil
}

// Create inserts a new post and returns it with ID and CreatedAt set.
func (r *PostSQLite) Create(ctx context.Context, p models.Post) (models.Post, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	} else {
		p.CreatedAt = p.CreatedAt.UTC()
	}

	res, err := r.db.ExecContext(ctx, insertPostSQL,
		p.Title,
		p.Content,
		p.AuthorID,
		p.CreatedAt.Format(sqliteTimestampLayout),
	)
	if err != nil {
		return models.Post{}, fmt.Errorf("insert post: %w", err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return models.Post{}, fmt.Errorf("get last insert id for post: %w", err)
	}
	p.ID = int(lastID)
	return p, nil
}

// Update changes only the columns whose pointers are non-nil. A nil pointer
// means "not supplied"; a pointer to an empty string is an intentional write.
func (r *PostSQLite) Update(ctx context.Context, id int, title, content *string) error {
	var (
		sets []string
		args []any
	)
	if title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *title)
	}
	if content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *content)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	q := "UPDATE posts SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("update post %d: %w", id, err)
	}
	return nil
}

// Delete removes a post by ID.
func (r *PostSQLite) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deletePostSQL, id); err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (models.Post, error) {
	var (
		p          models.Post
		authorName sql.NullString
	)
	if err := s.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt, &authorName); err != nil {
		return models.Post{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	if authorName.Valid {
		p.AuthorName = authorName.String
	}
	return p, nil
}
