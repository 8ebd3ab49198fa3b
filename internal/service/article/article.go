package article

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
	ErrArticleNotFound  = errors.New("article not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnknownAuthor    = errors.New("author does not exist")
)

type Storage interface {
	SaveArticle(ctx context.Context, authorID int64, title, body string, publishDate time.Time) (int64, error)
	Articles(ctx context.Context) ([]models.Article, error)
	Article(ctx context.Context, id int64) (models.Article, error)
	UpdateArticle(ctx context.Context, id int64, title, body string, authorID int64) error
	RemoveArticle(ctx context.Context, id int64) error

	SaveComment(ctx context.Context, articleID, authorID int64, body string, publishDate time.Time) (int64, error)
	CommentsByArticle(ctx context.Context, articleID int64) ([]models.Comment, error)
	Comments(ctx context.Context) ([]models.Comment, error)
}

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

// List returns all articles in default order, each with its comments.
func (s *Service) List(ctx context.Context) ([]models.Article, error) {
	const op = "service.article.List"

	log := s.log.With(slog.String("op", op))

	// Send to storage layer
	arts, err := s.storage.Articles(ctx)
	if err != nil {
		log.Error("failed to get all articles", sl.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	comments, err := s.storage.Comments(ctx)
	if err != nil {
		log.Error("failed to get comments", sl.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byArticle := make(map[int64][]models.Comment, len(arts))
	for _, c := range comments {
		byArticle[c.ArticleID] = append(byArticle[c.ArticleID], c)
	}
	for i := range arts {
		arts[i].Comments = byArticle[arts[i].ID]
	}

	return arts, nil
}

// Get returns one article with its comments.
func (s *Service) Get(ctx context.Context, id int64) (models.Article, error) {
	const op = "service.article.Get"

	log := s.log.With(slog.String("op", op), slog.Int64("article_id", id))

	art, err := s.article(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrArticleNotFound) {
			log.Error("failed to get article", sl.Error(err))
		}
		return models.Article{}, fmt.Errorf("%s: %w", op, err)
	}

	art.Comments, err = s.storage.CommentsByArticle(ctx, id)
	if err != nil {
		log.Error("failed to get comments", sl.Error(err))
		return models.Article{}, fmt.Errorf("%s: %w", op, err)
	}

	return art, nil
}

// Create stores a new article owned by authorID.
func (s *Service) Create(ctx context.Context, authorID int64, title, body string) (models.Article, error) {
	const op = "service.article.Create"

	log := s.log.With(slog.String("op", op), slog.Int64("author_id", authorID))

	// Send to storage layer
	id, err := s.storage.SaveArticle(ctx, authorID, title, body, s.now())
	if err != nil {
		if errors.Is(err, storage.ErrInvalidReference) {
			log.Warn("author does not exist")
			return models.Article{}, fmt.Errorf("%s: %w", op, ErrUnknownAuthor)
		}
		log.Error("failed to save article", sl.Error(err))
		return models.Article{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("article created", slog.Int64("article_id", id))

	return s.Get(ctx, id)
}

// Update changes title and body. Only the author may do so.
func (s *Service) Update(ctx context.Context, userID, id int64, title, body string) error {
	const op = "service.article.Update"

	log := s.log.With(slog.String("op", op), slog.Int64("article_id", id), slog.Int64("user_id", userID))

	art, err := s.owned(ctx, userID, id)
	if err != nil {
		log.Info("update rejected", sl.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	// Send to storage layer
	if err := s.storage.UpdateArticle(ctx, id, title, body, art.AuthorID); err != nil {
		if errors.Is(err, storage.ErrArticleNotFound) {
			return fmt.Errorf("%s: %w", op, ErrArticleNotFound)
		}
		log.Error("failed to update article", sl.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("article updated")

	return nil
}

// Remove deletes the article and its comments. Only the author may do so.
func (s *Service) Remove(ctx context.Context, userID, id int64) error {
	const op = "service.article.Remove"

	log := s.log.With(slog.String("op", op), slog.Int64("article_id", id), slog.Int64("user_id", userID))

	if _, err := s.owned(ctx, userID, id); err != nil {
		log.Info("remove rejected", sl.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	// Send to storage layer
	if err := s.storage.RemoveArticle(ctx, id); err != nil {
		if errors.Is(err, storage.ErrArticleNotFound) {
			return fmt.Errorf("%s: %w", op, ErrArticleNotFound)
		}
		log.Error("failed to remove article", sl.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("article removed")

	return nil
}

// AddComment attaches a comment by userID to the article.
func (s *Service) AddComment(ctx context.Context, userID, articleID int64, body string) (models.Comment, error) {
	const op = "service.article.AddComment"

	log := s.log.With(slog.String("op", op), slog.Int64("article_id", articleID), slog.Int64("user_id", userID))

	if _, err := s.article(ctx, articleID); err != nil {
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()

	id, err := s.storage.SaveComment(ctx, articleID, userID, body, now)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidReference) {
			// Either the article vanished after the check or the author does not exist.
			if _, aerr := s.article(ctx, articleID); errors.Is(aerr, ErrArticleNotFound) {
				return models.Comment{}, fmt.Errorf("%s: %w", op, ErrArticleNotFound)
			}
			log.Warn("author does not exist")
			return models.Comment{}, fmt.Errorf("%s: %w", op, ErrUnknownAuthor)
		}
		log.Error("failed to save comment", sl.Error(err))
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("comment added", slog.Int64("comment_id", id))

	return models.Comment{
		ID:          id,
		Body:        body,
		PublishDate: now,
		ArticleID:   articleID,
		AuthorID:    userID,
	}, nil
}

// owned loads the article and checks that userID is its author.
func (s *Service) owned(ctx context.Context, userID, id int64) (models.Article, error) {
	art, err := s.article(ctx, id)
	if err != nil {
		return models.Article{}, err
	}

	if !art.OwnedBy(userID) {
		return models.Article{}, ErrPermissionDenied
	}

	return art, nil
}

func (s *Service) article(ctx context.Context, id int64) (models.Article, error) {
	art, err := s.storage.Article(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrArticleNotFound) {
			return models.Article{}, ErrArticleNotFound
		}
		return models.Article{}, err
	}

	return art, nil
}
