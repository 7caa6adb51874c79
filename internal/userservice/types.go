package userservice

import (
	"context"
	"database/sql"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	// AccessTokenTime is the default access token lifetime.
	AccessTokenTime time.Duration = 7 * 24 * time.Hour

	avatarURL = "https://api.dicebear.com/6.x/notionists-neutral/svg?seed="
)

// Store is the persistence contract for user records.
type Store interface {
	Insert(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	// AddOwnedBlog increments total_posts by postDelta and adds blogID to the
	// membership set in a single atomic update.
	AddOwnedBlog(ctx context.Context, userID, blogID string, postDelta int) error
	RemoveOwnedBlog(ctx context.Context, userID, blogID string, postDelta int) error
	AdjustTotalPosts(ctx context.Context, userID string, postDelta int) error
	IncrementReadCount(ctx context.Context, username string, delta int) error
}

type UserService struct {
	m      Store
	tokens *TokenIssuer
}

type DBModel struct {
	db *sql.DB
}

type MongoModel struct {
	users *mongo.Collection
}

type User struct {
	ID           string       `json:"id"`
	PersonalInfo PersonalInfo `json:"personal_info"`
	AccountInfo  AccountInfo  `json:"account_info"`
	Blogs        []string     `json:"blogs"`
	JoinedAt     time.Time    `json:"joinedAt"`
}

type PersonalInfo struct {
	Fullname   string   `json:"fullname"`
	Email      string   `json:"email"`
	Username   string   `json:"username"`
	Password   Password `json:"-"`
	ProfileImg string   `json:"profile_img"`
}

type AccountInfo struct {
	TotalPosts int `json:"total_posts"`
	TotalReads int `json:"total_reads"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// AuthResponse is returned by signup and signin.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	ProfileImg  string `json:"profile_img"`
	Username    string `json:"username"`
	Fullname    string `json:"fullname"`
}
