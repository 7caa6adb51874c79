package blogservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sushihentaime/inkwell/internal/common"
)

// LatestBlogsLimit caps the public latest-blogs listing.
const LatestBlogsLimit = 5

type Blog struct {
	// ID is the storage identifier and is never exposed.
	ID       string `json:"-"`
	AuthorID string `json:"-"`

	BlogID      string          `json:"blog_id"`
	Title       string          `json:"title"`
	Des         string          `json:"des"`
	Banner      string          `json:"banner"`
	Content     json.RawMessage `json:"content,omitempty"`
	Tags        []string        `json:"tags"`
	Author      Author          `json:"author"`
	Activity    Activity        `json:"activity"`
	Draft       bool            `json:"draft"`
	PublishedAt time.Time       `json:"publishedAt"`
}

// Author carries the public profile fields of a blog's author.
type Author struct {
	PersonalInfo AuthorInfo `json:"personal_info"`
}

type AuthorInfo struct {
	Fullname   string `json:"fullname"`
	Username   string `json:"username"`
	ProfileImg string `json:"profile_img"`
}

type Activity struct {
	TotalReads int `json:"total_reads"`
}

// Store is the persistence contract for blogs.
type Store interface {
	ListLatestPublished(ctx context.Context, limit int) ([]Blog, error)
	Insert(ctx context.Context, b *Blog) error
	// UpdateOwned rewrites the editable fields of the blog matching b.BlogID and b.AuthorID
	// and returns the draft flag it had before.
	UpdateOwned(ctx context.Context, b *Blog) (wasDraft bool, err error)
	// IncrementReads adds delta to the read counter and returns the updated blog with its
	// author populated.
	IncrementReads(ctx context.Context, blogID string, delta int) (*Blog, error)
	GetOwned(ctx context.Context, blogID, authorID string) (*Blog, error)
	Delete(ctx context.Context, id string) error
}

// Authors maintains the author side of blog ownership.
type Authors interface {
	LinkBlog(ctx context.Context, userID, blogID string, postDelta int) error
	UnlinkBlog(ctx context.Context, userID, blogID string, postDelta int) error
	AdjustPosts(ctx context.Context, userID string, postDelta int) error
}

// ReadRecorder credits a read to an author.
type ReadRecorder interface {
	RecordRead(ctx context.Context, username string) error
}

type BlogService struct {
	m       Store
	authors Authors
	reads   ReadRecorder
	c       *common.Cache
	logger  *slog.Logger
}

type DBModel struct {
	db *sql.DB
}

type MongoModel struct {
	blogs *mongo.Collection
	users *mongo.Collection
}

type UpsertBlogRequest struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Des     string          `json:"des"`
	Banner  string          `json:"banner"`
	Tags    []string        `json:"tags"`
	Content json.RawMessage `json:"content"`
	Draft   bool            `json:"draft"`
}

type GetBlogRequest struct {
	BlogID string `json:"blog_id"`
	Draft  bool   `json:"draft"`
	Mode   string `json:"mode"`
}

type DeleteBlogRequest struct {
	BlogID string `json:"blog_id"`
}
