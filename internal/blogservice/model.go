package blogservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sushihentaime/inkwell/internal/common"
)

var (
	ErrRecordNotFound         = errors.New("record not found")
	ErrNotFoundOrUnauthorized = errors.New("blog not found or you are not authorized to modify it")
	ErrUserForeignKey         = errors.New("author does not exist")
	ErrDuplicateBlogID        = errors.New("duplicate blog id")
)

var emptyContent = json.RawMessage("[]")

func NewDBModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

func (m *DBModel) ListLatestPublished(ctx context.Context, limit int) ([]Blog, error) {
	query := `
		SELECT b.blog_id, b.title, b.des, b.banner, b.tags, b.total_reads, b.published_at,
			u.fullname, u.username, u.profile_img
		FROM blogs b
		JOIN users u ON u.id = b.author
		WHERE b.draft = false
		ORDER BY b.published_at DESC
		LIMIT $1`

	rows, err := m.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var b Blog
		err := rows.Scan(
			&b.BlogID,
			&b.Title,
			&b.Des,
			&b.Banner,
			pq.Array(&b.Tags),
			&b.Activity.TotalReads,
			&b.PublishedAt,
			&b.Author.PersonalInfo.Fullname,
			&b.Author.PersonalInfo.Username,
			&b.Author.PersonalInfo.ProfileImg,
		)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *DBModel) Insert(ctx context.Context, b *Blog) error {
	if uuid.Validate(b.AuthorID) != nil {
		return ErrUserForeignKey
	}

	if len(b.Content) == 0 {
		b.Content = emptyContent
	}

	query := `
		INSERT INTO blogs (blog_id, title, des, banner, content, tags, author, draft)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, published_at`

	args := []any{b.BlogID, b.Title, b.Des, b.Banner, string(b.Content), pq.Array(b.Tags), b.AuthorID, b.Draft}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.PublishedAt)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "blogs_author_fkey"):
			return ErrUserForeignKey
		case common.UniqueViolation(err, "blogs_blog_id_key"):
			return ErrDuplicateBlogID
		default:
			return err
		}
	}

	return nil
}

// UpdateOwned reports whether the blog was a draft before the update.
func (m *DBModel) UpdateOwned(ctx context.Context, b *Blog) (bool, error) {
	if uuid.Validate(b.AuthorID) != nil {
		return false, ErrNotFoundOrUnauthorized
	}

	if len(b.Content) == 0 {
		b.Content = emptyContent
	}

	query := `
		WITH prev AS (
			SELECT id, draft FROM blogs
			WHERE blog_id = $7 AND author = $8
			FOR UPDATE
		)
		UPDATE blogs
		SET title = $1, des = $2, banner = $3, content = $4, tags = $5, draft = $6, updated_at = now()
		FROM prev
		WHERE blogs.id = prev.id
		RETURNING blogs.id, blogs.published_at, prev.draft`

	args := []any{b.Title, b.Des, b.Banner, string(b.Content), pq.Array(b.Tags), b.Draft, b.BlogID, b.AuthorID}

	var wasDraft bool
	err := m.db.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.PublishedAt, &wasDraft)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return false, ErrNotFoundOrUnauthorized
		default:
			return false, err
		}
	}

	return wasDraft, nil
}

func (m *DBModel) IncrementReads(ctx context.Context, blogID string, delta int) (*Blog, error) {
	query := `
		WITH b AS (
			UPDATE blogs
			SET total_reads = total_reads + $1
			WHERE blog_id = $2
			RETURNING id, blog_id, title, des, banner, content, tags, author, total_reads, draft, published_at
		)
		SELECT b.id, b.blog_id, b.title, b.des, b.banner, b.content, b.tags, b.author, b.total_reads, b.draft, b.published_at,
			u.fullname, u.username, u.profile_img
		FROM b
		JOIN users u ON u.id = b.author`

	var (
		b       Blog
		content []byte
	)

	err := m.db.QueryRowContext(ctx, query, delta, blogID).Scan(
		&b.ID,
		&b.BlogID,
		&b.Title,
		&b.Des,
		&b.Banner,
		&content,
		pq.Array(&b.Tags),
		&b.AuthorID,
		&b.Activity.TotalReads,
		&b.Draft,
		&b.PublishedAt,
		&b.Author.PersonalInfo.Fullname,
		&b.Author.PersonalInfo.Username,
		&b.Author.PersonalInfo.ProfileImg,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	b.Content = content
	if b.Tags == nil {
		b.Tags = []string{}
	}

	return &b, nil
}

func (m *DBModel) GetOwned(ctx context.Context, blogID, authorID string) (*Blog, error) {
	if uuid.Validate(authorID) != nil {
		return nil, ErrNotFoundOrUnauthorized
	}

	query := `
		SELECT id, blog_id, author, draft
		FROM blogs
		WHERE blog_id = $1 AND author = $2`

	var b Blog

	err := m.db.QueryRowContext(ctx, query, blogID, authorID).Scan(&b.ID, &b.BlogID, &b.AuthorID, &b.Draft)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFoundOrUnauthorized
		default:
			return nil, err
		}
	}

	return &b, nil
}

func (m *DBModel) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}
