package user

import (
	"context"
	"errors"
	"fmt"

	"justfood/pkg/logger"
	"justfood/pkg/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicatePhone = errors.New("phone number already registered")
)

type Repo struct {
	pool  *pgxpool.Pool
	mylog *logger.Logger
}

func NewRepo(pool *pgxpool.Pool, mylog *logger.Logger) *Repo {
	return &Repo{
		pool:  pool,
		mylog: mylog,
	}
}

func (r *Repo) Create(ctx context.Context, name, phone string, email *string, passwordHash string) (*models.User, error) {
	u := models.User{
		Name:  name,
		Phone: phone,
		Email: email,
		Role:  models.RoleCustomer,
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, phone, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, name, phone, email, passwordHash, u.Role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicatePhone
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *Repo) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, phone, email, password_hash, role, created_at
		FROM users
		WHERE phone = $1
	`, phone).Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to read user: %w", err)
	}
	return &u, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, phone, email, password_hash, role, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to read user: %w", err)
	}
	return &u, nil
}
