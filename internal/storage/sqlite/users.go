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

func (s *Storage) SaveUser(ctx context.Context, username string, passHash []byte, isStaff bool) (int64, error) {
	const op = "storage.sqlite.SaveUser"

	stmt, err := s.db.PrepareContext(ctx, `INSERT INTO users (name, pass_hash, is_staff, registration_date) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, username, passHash, isStaff, time.Now().UTC())
	if err != nil {
		if isConstraint(err, sqlite3.ErrConstraintUnique) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get last insert id: %w", op, err)
	}

	return id, nil
}

func (s *Storage) User(ctx context.Context, username string) (models.User, error) {
	const op = "storage.sqlite.User"

	row := s.db.QueryRowContext(ctx, `SELECT id, name, pass_hash, is_staff, registration_date FROM users WHERE name = ?`, username)

	user, err := scanUser(row)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) UserByID(ctx context.Context, id int64) (models.User, error) {
	const op = "storage.sqlite.UserByID"

	row := s.db.QueryRowContext(ctx, `SELECT id, name, pass_hash, is_staff, registration_date FROM users WHERE id = ?`, id)

	user, err := scanUser(row)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) Users(ctx context.Context) ([]models.User, error) {
	const op = "storage.sqlite.Users"

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, pass_hash, is_staff, registration_date FROM users ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PassHash, &user.IsStaff, &user.RegistrationDate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, storage.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}
