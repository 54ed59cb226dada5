package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/railway_reservation/internal/core/domain"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

const userColumns = `id, username, password_hash, role, email, phone_number, created_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func hasCode(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
	INSERT INTO users (` + userColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.Role,
		user.Email, user.PhoneNumber, user.CreatedAt,
	)
	if err != nil {
		if hasCode(err, pqUniqueViolation) {
			return domain.ErrDuplicateUsername
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepository) get(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
		&u.Email,
		&u.PhoneNumber,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	u.SavedPassengers, err = r.passengers(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) passengers(ctx context.Context, userID uuid.UUID) ([]domain.Passenger, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT uid, name, age, berth_preference
	FROM saved_passengers
	WHERE user_id = $1
	ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Passenger
	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(&p.UID, &p.Name, &p.Age, &p.BerthPreference); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	result, err := r.db.ExecContext(ctx, `
	UPDATE users
	SET username = $1, email = $2, phone_number = $3
	WHERE id = $4
	`, user.Username, user.Email, user.PhoneNumber, user.ID)
	if err != nil {
		if hasCode(err, pqUniqueViolation) {
			return domain.ErrDuplicateUsername
		}
		return err
	}
	return expectOne(result)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return err
	}
	return expectOne(result)
}

func (r *UserRepository) AddPassenger(ctx context.Context, userID uuid.UUID, p domain.Passenger) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO saved_passengers (user_id, uid, name, age, berth_preference)
	VALUES ($1, $2, $3, $4, $5)
	`, userID, p.UID, p.Name, p.Age, p.BerthPreference)
	if err != nil {
		if hasCode(err, pqForeignKeyViolation) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to insert passenger: %w", err)
	}
	return nil
}

func (r *UserRepository) DeletePassenger(ctx context.Context, userID uuid.UUID, uid string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saved_passengers WHERE user_id = $1 AND uid = $2`, userID, uid)
	if err != nil {
		return err
	}
	return expectOne(result)
}

// Delete removes the user; saved passengers go with it via ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	return expectOne(result)
}

func expectOne(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
