package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"newspaper/internal/domain/models"
	"newspaper/internal/storage"
)

const selectComment = `
	SELECT c.id, c.body, c.publish_date, c.article_id, c.author_id, u.name
	FROM comments c
	JOIN users u ON u.id = c.author_id`

func (s *Storage) SaveComment(ctx context.Context, articleID, authorID int64, body string, publishDate time.Time) (int64, error) {
	const op = "storage.sqlite.SaveComment"

	id, err := insertComment(ctx, s.db, articleID, authorID, body, publishDate)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) CommentsByArticle(ctx context.Context, articleID int64) ([]models.Comment, error) {
	const op = "storage.sqlite.CommentsByArticle"

	comments, err := s.queryComments(ctx, selectComment+` WHERE c.article_id = ? ORDER BY c.id`, articleID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return comments, nil
}

func (s *Storage) Comments(ctx context.Context) ([]models.Comment, error) {
	const op = "storage.sqlite.Comments"

	comments, err := s.queryComments(ctx, selectComment+` ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return comments, nil
}

func (s *Storage) Comment(ctx context.Context, id int64) (models.Comment, error) {
	const op = "storage.sqlite.Comment"

	var c models.Comment
	err := s.db.QueryRowContext(ctx, selectComment+` WHERE c.id = ?`, id).
		Scan(&c.ID, &c.Body, &c.PublishDate, &c.ArticleID, &c.AuthorID, &c.Author)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Comment{}, fmt.Errorf("%s: %w", op, storage.ErrCommentNotFound)
	}
	if err != nil {
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (s *Storage) UpdateComment(ctx context.Context, id, articleID, authorID int64, body string) error {
	const op = "storage.sqlite.UpdateComment"

	if err := updateComment(ctx, s.db, id, articleID, authorID, body); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) RemoveComment(ctx context.Context, id int64) error {
	const op = "storage.sqlite.RemoveComment"

	if err := deleteComment(ctx, s.db, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func insertComment(ctx context.Context, ex execer, articleID, authorID int64, body string, publishDate time.Time) (int64, error) {
	res, err := ex.ExecContext(ctx,
		`INSERT INTO comments (body, publish_date, article_id, author_id) VALUES (?, ?, ?, ?)`,
		body, publishDate, articleID, authorID,
	)
	if err != nil {
		if isConstraint(err, sqlite3.ErrConstraintForeignKey) {
			return 0, storage.ErrInvalidReference
		}
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return id, nil
}

func updateComment(ctx context.Context, ex execer, id, articleID, authorID int64, body string) error {
	res, err := ex.ExecContext(ctx,
		`UPDATE comments SET body = ?, article_id = ?, author_id = ? WHERE id = ?`,
		body, articleID, authorID, id,
	)
	if err != nil {
		if isConstraint(err, sqlite3.ErrConstraintForeignKey) {
			return storage.ErrInvalidReference
		}
		return err
	}

	return affectedOne(res, storage.ErrCommentNotFound)
}

func deleteComment(ctx context.Context, ex execer, id int64) error {
	res, err := ex.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return err
	}

	return affectedOne(res, storage.ErrCommentNotFound)
}

func (s *Storage) queryComments(ctx context.Context, query string, args ...any) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Body, &c.PublishDate, &c.ArticleID, &c.AuthorID, &c.Author); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}
