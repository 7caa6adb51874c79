package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sushihentaime/inkwell/internal/common"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrNotFound          = errors.New("user not found")
)

func NewDBModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

func (m *DBModel) Insert(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (fullname, email, username, password, profile_img)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, joined_at`

	args := []any{
		u.PersonalInfo.Fullname,
		u.PersonalInfo.Email,
		u.PersonalInfo.Username,
		u.PersonalInfo.Password.hash,
		u.PersonalInfo.ProfileImg,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.JoinedAt)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "users_email_key"):
			return ErrDuplicateEmail
		case common.UniqueViolation(err, "users_username_key"):
			return ErrDuplicateUsername
		default:
			return err
		}
	}

	return nil
}

func (m *DBModel) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, fullname, email, username, password, profile_img, total_posts, total_reads, blogs, joined_at
		FROM users
		WHERE email = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID,
		&u.PersonalInfo.Fullname,
		&u.PersonalInfo.Email,
		&u.PersonalInfo.Username,
		&u.PersonalInfo.Password.hash,
		&u.PersonalInfo.ProfileImg,
		&u.AccountInfo.TotalPosts,
		&u.AccountInfo.TotalReads,
		pq.Array(&u.Blogs),
		&u.JoinedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *DBModel) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	err := m.db.QueryRowContext(ctx, query, username).Scan(&exists)
	return exists, err
}

func (m *DBModel) AddOwnedBlog(ctx context.Context, userID, blogID string, postDelta int) error {
	if uuid.Validate(userID) != nil {
		return ErrNotFound
	}

	query := `
		UPDATE users
		SET total_posts = total_posts + $1, blogs = array_append(blogs, $2::uuid), updated_at = now()
		WHERE id = $3`

	res, err := m.db.ExecContext(ctx, query, postDelta, blogID, userID)
	if err != nil {
		return err
	}

	return expectOneRow(res)
}

func (m *DBModel) RemoveOwnedBlog(ctx context.Context, userID, blogID string, postDelta int) error {
	if uuid.Validate(userID) != nil {
		return ErrNotFound
	}

	query := `
		UPDATE users
		SET total_posts = GREATEST(total_posts + $1, 0), blogs = array_remove(blogs, $2::uuid), updated_at = now()
		WHERE id = $3`

	res, err := m.db.ExecContext(ctx, query, postDelta, blogID, userID)
	if err != nil {
		return err
	}

	return expectOneRow(res)
}

func (m *DBModel) AdjustTotalPosts(ctx context.Context, userID string, postDelta int) error {
	if uuid.Validate(userID) != nil {
		return ErrNotFound
	}

	query := `
		UPDATE users
		SET total_posts = total_posts + $1, updated_at = now()
		WHERE id = $2`

	res, err := m.db.ExecContext(ctx, query, postDelta, userID)
	if err != nil {
		return err
	}

	return expectOneRow(res)
}

func (m *DBModel) IncrementReadCount(ctx context.Context, username string, delta int) error {
	query := `
		UPDATE users
		SET total_reads = total_reads + $1
		WHERE username = $2`

	res, err := m.db.ExecContext(ctx, query, delta, username)
	if err != nil {
		return err
	}

	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrNotFound
		default:
			return errors.New("too many rows affected")
		}
	}

	return nil
}
