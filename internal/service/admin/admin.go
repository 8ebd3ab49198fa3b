package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"newspaper/internal/domain/models"
	"newspaper/internal/lib/logger/sl"
	"newspaper/internal/storage"
)

var (
	ErrNotFound         = errors.New("object not found")
	ErrInvalidReference = errors.New("referenced object does not exist")
)

type Storage interface {
	Users(ctx context.Context) ([]models.User, error)

	SaveArticle(ctx context.Context, authorID int64, title, body string, publishDate time.Time) (int64, error)
	Articles(ctx context.Context) ([]models.Article, error)
	Article(ctx context.Context, id int64) (models.Article, error)
	ChangeArticle(ctx context.Context, id int64, title, body string, authorID int64, changes []storage.CommentChange) error
	RemoveArticle(ctx context.Context, id int64) error

	SaveComment(ctx context.Context, articleID, authorID int64, body string, publishDate time.Time) (int64, error)
	Comments(ctx context.Context) ([]models.Comment, error)
	CommentsByArticle(ctx context.Context, articleID int64) ([]models.Comment, error)
	Comment(ctx context.Context, id int64) (models.Comment, error)
	UpdateComment(ctx context.Context, id, articleID, authorID int64, body string) error
	RemoveComment(ctx context.Context, id int64) error
}

// InlineComment is one edited comment row on the article change page.
type InlineComment struct {
	ID     int64
	Body   string
	Delete bool
}

// Service gives staff unrestricted access to articles and comments.
// Unlike the article service it lets the author be chosen freely.
type Service struct {
	log     *slog.Logger
	storage Storage
	now     func() time.Time
}

func New(log *slog.Logger, storage Storage) *Service {
	return &Service{
		log:     log,
		storage: storage,
		now:     time.Now,
	}
}

func (s *Service) Users(ctx context.Context) ([]models.User, error) {
	const op = "service.admin.Users"

	users, err := s.storage.Users(ctx)
	if err != nil {
		s.log.Error("failed to get users", slog.String("op", op), sl.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

func (s *Service) Articles(ctx context.Context) ([]models.Article, error) {
	const op = "service.admin.Articles"

	arts, err := s.storage.Articles(ctx)
	if err != nil {
		s.log.Error("failed to get articles", slog.String("op", op), sl.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return arts, nil
}

// Article returns the article together with its comments for the inline rows.
func (s *Service) Article(ctx context.Context, id int64) (models.Article, error) {
	const op = "service.admin.Article"

	art, err := s.storage.Article(ctx, id)
	if err != nil {
		return models.Article{}, fmt.Errorf("%s: %w", op, s.translate(op, err))
	}

	art.Comments, err = s.storage.CommentsByArticle(ctx, id)
	if err != nil {
		return models.Article{}, fmt.Errorf("%s: %w", op, s.translate(op, err))
	}

	return art, nil
}

func (s *Service) CreateArticle(ctx context.Context, authorID int64, title, body string) (int64, error) {
	const op = "service.admin.CreateArticle"

	id, err := s.storage.SaveArticle(ctx, authorID, title, body, s.now())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, s.translate(op, err))
	}

	s.log.Info("article added", slog.String("op", op), slog.Int64("article_id", id))

	return id, nil
}

// UpdateArticle saves the article fields and applies the inline comment rows.
// Rows without an id are new comments written by editorID. Rows naming a
// comment of another article are ignored.
func (s *Service) UpdateArticle(ctx context.Context, id, authorID int64, title, body string, inlines []InlineComment, editorID int64) error {
	const op = "service.admin.UpdateArticle"

	log := s.log.With(slog.String("op", op), slog.Int64("article_id", id))

	existing, err := s.storage.CommentsByArticle(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, s.translate(op, err))
	}

	byID := make(map[int64]models.Comment, len(existing))
	for _, c := range existing {
		byID[c.ID] = c
	}

	var changes []storage.CommentChange
	for _, in := range inlines {
		if in.ID == 0 {
			if in.Delete || in.Body == "" {
				continue
			}
			changes = append(changes, storage.CommentChange{AuthorID: editorID, Body: in.Body, PublishDate: s.now()})
			continue
		}

		c, ok := byID[in.ID]
		if !ok {
			log.Warn("inline comment does not belong to article", slog.Int64("comment_id", in.ID))
			continue
		}

		switch {
		case in.Delete:
			changes = append(changes, storage.CommentChange{ID: c.ID, Delete: true})
		case in.Body != c.Body:
			changes = append(changes, storage.CommentChange{ID: c.ID, AuthorID: c.AuthorID, Body: in.Body})
		}
	}

	// Send to storage layer
	if err := s.storage.ChangeArticle(ctx, id, title, body, authorID, changes); err != nil {
		return fmt.Errorf("%s: %w", op, s.translate(op, err))
	}

	log.Info("article changed", slog.Int("comment_changes", len(changes)))

	return nil
}

func (s *Service) RemoveArticle(ctx context.Context, id int64) error {
	const op = "service.admin.RemoveArticle"

	if err := s.storage.RemoveArticle(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, s.translate(op, err))
	}

	s.log.Info("article deleted", slog.String("op", op), slog.Int64("article_id", id))

	return nil
}

func (s *Service) Comments(ctx context.Context) ([]models.Comment, error) {
	const op = "service.admin.Comments"

	comments, err := s.storage.Comments(ctx)
	if err != nil {
		s.log.Error("failed to get comments", slog.String("op", op), sl.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return comments, nil
}

func (s *Service) Comment(ctx context.Context, id int64) (models.Comment, error) {
	const op = "service.admin.Comment"

	c, err := s.storage.Comment(ctx, id)
	if err != nil {
		return models.Comment{}, fmt.Errorf("%s: %w", op, s.translate(op, err))
	}

	return c, nil
}

func (s *Service) CreateComment(ctx context.Context, articleID, authorID int64, body string) (int64, error) {
	const op = "service.admin.CreateComment"

	id, err := s.storage.SaveComment(ctx, articleID, authorID, body, s.now())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, s.translate(op, err))
	}

	s.log.Info("comment added", slog.String("op", op), slog.Int64("comment_id", id))

	return id, nil
}

func (s *Service) UpdateComment(ctx context.Context, id, articleID, authorID int64, body string) error {
	const op = "service.admin.UpdateComment"

	if err := s.storage.UpdateComment(ctx, id, articleID, authorID, body); err != nil {
		return fmt.Errorf("%s: %w", op, s.translate(op, err))
	}

	s.log.Info("comment changed", slog.String("op", op), slog.Int64("comment_id", id))

	return nil
}

func (s *Service) RemoveComment(ctx context.Context, id int64) error {
	const op = "service.admin.RemoveComment"

	if err := s.storage.RemoveComment(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, s.translate(op, err))
	}

	s.log.Info("comment deleted", slog.String("op", op), slog.Int64("comment_id", id))

	return nil
}

// translate maps storage errors onto the admin sentinels and logs anything unexpected.
func (s *Service) translate(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrArticleNotFound), errors.Is(err, storage.ErrCommentNotFound):
		return ErrNotFound
	case errors.Is(err, storage.ErrInvalidReference):
		return ErrInvalidReference
	default:
		s.log.Error("storage failure", slog.String("op", op), sl.Error(err))
		return err
	}
}
