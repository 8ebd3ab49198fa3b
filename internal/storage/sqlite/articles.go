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

const selectArticle = `
	SELECT a.id, a.title, a.body, a.publish_date, a.author_id, u.name
	FROM articles a
	JOIN users u ON u.id = a.author_id`

func (s *Storage) SaveArticle(ctx context.Context, authorID int64, title, body string, publishDate time.Time) (int64, error) {
	const op = "storage.sqlite.SaveArticle"

	stmt, err := s.db.PrepareContext(ctx, `INSERT INTO articles (title, body, publish_date, author_id) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, title, body, publishDate, authorID)
	if err != nil {
		if isConstraint(err, sqlite3.ErrConstraintForeignKey) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrInvalidReference)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get last insert id: %w", op, err)
	}

	return id, nil
}

// Articles returns every article in insertion order.
func (s *Storage) Articles(ctx context.Context) ([]models.Article, error) {
	const op = "storage.sqlite.Articles"

	rows, err := s.db.QueryContext(ctx, selectArticle+` ORDER BY a.id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var arts []models.Article
	for rows.Next() {
		var art models.Article
		if err := rows.Scan(&art.ID, &art.Title, &art.Body, &art.PublishDate, &art.AuthorID, &art.Author); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		arts = append(arts, art)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return arts, nil
}

func (s *Storage) Article(ctx context.Context, id int64) (models.Article, error) {
	const op = "storage.sqlite.Article"

	var art models.Article
	err := s.db.QueryRowContext(ctx, selectArticle+` WHERE a.id = ?`, id).
		Scan(&art.ID, &art.Title, &art.Body, &art.PublishDate, &art.AuthorID, &art.Author)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Article{}, fmt.Errorf("%s: %w", op, storage.ErrArticleNotFound)
	}
	if err != nil {
		return models.Article{}, fmt.Errorf("%s: %w", op, err)
	}

	return art, nil
}

func (s *Storage) UpdateArticle(ctx context.Context, id int64, title, body string, authorID int64) error {
	const op = "storage.sqlite.UpdateArticle"

	if err := updateArticle(ctx, s.db, id, title, body, authorID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ChangeArticle updates the article and applies the comment changes in one
// transaction. Nothing is written if any step fails.
func (s *Storage) ChangeArticle(ctx context.Context, id int64, title, body string, authorID int64, changes []storage.CommentChange) (err error) {
	const op = "storage.sqlite.ChangeArticle"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = updateArticle(ctx, tx, id, title, body, authorID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, c := range changes {
		switch {
		case c.ID == 0:
			_, err = insertComment(ctx, tx, id, c.AuthorID, c.Body, c.PublishDate)
		case c.Delete:
			err = deleteComment(ctx, tx, c.ID)
		default:
			err = updateComment(ctx, tx, c.ID, id, c.AuthorID, c.Body)
		}
		if err != nil {
			return fmt.Errorf("%s: comment %d: %w", op, c.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func updateArticle(ctx context.Context, ex execer, id int64, title, body string, authorID int64) error {
	res, err := ex.ExecContext(ctx, `UPDATE articles SET title = ?, body = ?, author_id = ? WHERE id = ?`, title, body, authorID, id)
	if err != nil {
		if isConstraint(err, sqlite3.ErrConstraintForeignKey) {
			return storage.ErrInvalidReference
		}
		return err
	}

	return affectedOne(res, storage.ErrArticleNotFound)
}

// RemoveArticle deletes the article; its comments go with it.
func (s *Storage) RemoveArticle(ctx context.Context, id int64) error {
	const op = "storage.sqlite.RemoveArticle"

	res, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := affectedOne(res, storage.ErrArticleNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
