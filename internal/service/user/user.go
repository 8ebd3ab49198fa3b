package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"newspaper/internal/domain/models"
	"newspaper/internal/lib/jwt"
	"newspaper/internal/lib/logger/sl"
	"newspaper/internal/storage"
)

var (
	ErrUserExists         = errors.New("user name already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid user name or password")
	ErrEmptyPassword      = errors.New("password is empty")
	ErrPasswordTooLong    = errors.New("password is longer than 72 bytes")
)

type Storage interface {
	SaveUser(ctx context.Context, username string, passHash []byte, isStaff bool) (int64, error)
	User(ctx context.Context, username string) (models.User, error)
	UserByID(ctx context.Context, id int64) (models.User, error)
}

type Service struct {
	log      *slog.Logger
	storage  Storage
	tokenTTL time.Duration
	secret   string
}

func New(log *slog.Logger, storage Storage, ttl time.Duration, secret string) *Service {
	return &Service{
		log:      log,
		storage:  storage,
		tokenTTL: ttl,
		secret:   secret,
	}
}

func (s *Service) Register(ctx context.Context, userName, password string) (int64, error) {
	return s.register(ctx, "service.user.Register", userName, password, false)
}

// CreateSuperuser registers a user with access to the admin site.
func (s *Service) CreateSuperuser(ctx context.Context, userName, password string) (int64, error) {
	return s.register(ctx, "service.user.CreateSuperuser", userName, password, true)
}

func (s *Service) register(ctx context.Context, op, userName, password string, isStaff bool) (int64, error) {
	log := s.log.With(slog.String("op", op), slog.String("user_name", userName))

	if password == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	// Hashing password
	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		log.Info("password too long")
		return 0, fmt.Errorf("%s: %w", op, ErrPasswordTooLong)
	}
	if err != nil {
		log.Error("failed to generate hash from password", sl.Error(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	// Send to data layer
	id, err := s.storage.SaveUser(ctx, userName, passHash, isStaff)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exists")
			return 0, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		log.Error("failed to register user", sl.Error(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.Int64("id", id), slog.Bool("is_staff", isStaff))

	return id, nil
}

// Authenticate checks the credentials and returns the matching user.
func (s *Service) Authenticate(ctx context.Context, userName, password string) (models.User, error) {
	const op = "service.user.Authenticate"

	log := s.log.With(slog.String("op", op), slog.String("user_name", userName))

	user, err := s.storage.User(ctx, userName)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Info("unknown user")
			return models.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get user by name", sl.Error(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	// Checking if password correct
	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("incorrect password")
		return models.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return user, nil
}

// Login authenticates the user and issues an API token.
func (s *Service) Login(ctx context.Context, userName, password string) (token string, err error) {
	const op = "service.user.Login"

	log := s.log.With(slog.String("op", op))

	user, err := s.Authenticate(ctx, userName, password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	// Generating token
	token, err = jwt.NewToken(user, s.tokenTTL, s.secret)
	if err != nil {
		log.Error("failed to create new token", sl.Error(err))
		return "", fmt.Errorf("%s: failed to create new token: %w", op, err)
	}

	return token, nil
}

func (s *Service) UserByID(ctx context.Context, id int64) (models.User, error) {
	const op = "service.user.UserByID"

	log := s.log.With(slog.String("op", op))

	// Send to data layer
	user, err := s.storage.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		log.Error("failed get user", sl.Error(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
