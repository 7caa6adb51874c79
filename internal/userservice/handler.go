package userservice

import (
	"context"
	"errors"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/sushihentaime/inkwell/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("incorrect password")
)

const usernameSuffixLen = 5

func NewUserService(m Store, tokens *TokenIssuer) *UserService {
	return &UserService{
		m:      m,
		tokens: tokens,
	}
}

// SignUp creates a new account and returns a token for it.
func (s *UserService) SignUp(ctx context.Context, fullname, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	v := common.NewValidator()
	validateFullname(v, fullname)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	username, err := s.generateUniqueUsername(ctx, email)
	if err != nil {
		return nil, err
	}

	u := User{
		PersonalInfo: PersonalInfo{
			Fullname:   fullname,
			Email:      email,
			Username:   username,
			Password:   Password{Plain: password},
			ProfileImg: avatarURL + username,
		},
	}

	err = u.PersonalInfo.Password.set(u.PersonalInfo.Password.Plain)
	if err != nil {
		return nil, err
	}

	err = s.m.Insert(ctx, &u)
	if err != nil {
		return nil, err
	}

	return s.authResponse(&u)
}

// SignIn checks the credentials and returns a fresh token.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	v := common.NewValidator()
	validateCredentials(v, email, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u, err := s.m.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !u.PersonalInfo.Password.matches(password) {
		return nil, ErrAuthenticationFailure
	}

	return s.authResponse(u)
}

// VerifyToken resolves a bearer token to the user id it was issued for.
func (s *UserService) VerifyToken(token string) (string, error) {
	return s.tokens.VerifyToken(token)
}

// LinkBlog records blogID as owned by userID and adds postDelta to the post count.
func (s *UserService) LinkBlog(ctx context.Context, userID, blogID string, postDelta int) error {
	return s.m.AddOwnedBlog(ctx, userID, blogID, postDelta)
}

func (s *UserService) UnlinkBlog(ctx context.Context, userID, blogID string, postDelta int) error {
	return s.m.RemoveOwnedBlog(ctx, userID, blogID, postDelta)
}

// AdjustPosts moves the post count when a blog is published or unpublished by edit.
func (s *UserService) AdjustPosts(ctx context.Context, userID string, postDelta int) error {
	return s.m.AdjustTotalPosts(ctx, userID, postDelta)
}

// RecordRead credits one read to the author with the given username.
func (s *UserService) RecordRead(ctx context.Context, username string) error {
	return s.m.IncrementReadCount(ctx, username, 1)
}

func (s *UserService) authResponse(u *User) (*AuthResponse, error) {
	token, err := s.tokens.IssueToken(u.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken: token,
		ProfileImg:  u.PersonalInfo.ProfileImg,
		Username:    u.PersonalInfo.Username,
		Fullname:    u.PersonalInfo.Fullname,
	}, nil
}

// generateUniqueUsername derives a username from the local part of email and appends a
// random suffix when it is already taken.
func (s *UserService) generateUniqueUsername(ctx context.Context, email string) (string, error) {
	username, _, _ := strings.Cut(email, "@")

	taken, err := s.m.UsernameExists(ctx, username)
	if err != nil {
		return "", err
	}

	if !taken {
		return username, nil
	}

	suffix, err := gonanoid.New(usernameSuffixLen)
	if err != nil {
		return "", err
	}

	return username + suffix, nil
}
