package blogservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sushihentaime/inkwell/internal/common"
)

var (
	ErrDraftAccess = errors.New("you can not access draft blogs")
	ErrOwnerLink   = errors.New("failed to update total posts number")
)

const editMode = "edit"

func NewBlogService(m Store, authors Authors, reads ReadRecorder, c *common.Cache, logger *slog.Logger) *BlogService {
	return &BlogService{
		m:       m,
		authors: authors,
		reads:   reads,
		c:       c,
		logger:  logger,
	}
}

// ListLatestPublished returns the newest published blogs. Results are cached until the
// next blog write.
func (s *BlogService) ListLatestPublished(ctx context.Context) ([]Blog, error) {
	key := common.CacheKeyLatestBlogs(LatestBlogsLimit)

	if cached, found := s.c.Get(key); found {
		return cached.([]Blog), nil
	}

	blogs, err := s.m.ListLatestPublished(ctx, LatestBlogsLimit)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, blogs)

	return blogs, nil
}

// UpsertBlog creates a blog, or edits the caller's blog when req.ID is set, and returns
// its blog id.
func (s *BlogService) UpsertBlog(ctx context.Context, authorID string, req *UpsertBlogRequest) (string, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Des = sanitizeText(strings.TrimSpace(req.Des))
	req.Tags = normalizeTags(req.Tags)

	v := common.NewValidator()
	validateTitle(v, req.Title)
	if v.Valid() && !req.Draft {
		validatePublishable(v, req)
	}
	if !v.Valid() {
		return "", v.ValidationError()
	}

	b := Blog{
		BlogID:   req.ID,
		AuthorID: authorID,
		Title:    req.Title,
		Des:      req.Des,
		Banner:   req.Banner,
		Content:  req.Content,
		Tags:     req.Tags,
		Draft:    req.Draft,
	}

	if req.ID != "" {
		wasDraft, err := s.m.UpdateOwned(ctx, &b)
		if err != nil {
			return "", err
		}

		s.invalidate()

		// publishing or unpublishing moves the author's post count
		if delta := postDelta(b.Draft) - postDelta(wasDraft); delta != 0 {
			err = s.authors.AdjustPosts(ctx, authorID, delta)
			if err != nil {
				return "", fmt.Errorf("%w: %w", ErrOwnerLink, err)
			}
		}

		return b.BlogID, nil
	}

	slug, err := slugify(req.Title)
	if err != nil {
		return "", err
	}
	b.BlogID = slug

	err = s.m.Insert(ctx, &b)
	if err != nil {
		return "", err
	}

	s.invalidate()

	err = s.authors.LinkBlog(ctx, authorID, b.ID, postDelta(b.Draft))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrOwnerLink, err)
	}

	return b.BlogID, nil
}

// FetchForRead counts a read and returns the blog. The counter is bumped before the draft
// check, so a denied draft read is still counted.
func (s *BlogService) FetchForRead(ctx context.Context, req *GetBlogRequest) (*Blog, error) {
	if req.BlogID == "" {
		return nil, ErrRecordNotFound
	}

	delta := 1
	if req.Mode == editMode {
		delta = 0
	}

	b, err := s.m.IncrementReads(ctx, req.BlogID, delta)
	if err != nil {
		return nil, err
	}

	if b.Draft && !req.Draft {
		return nil, ErrDraftAccess
	}

	if delta > 0 && s.reads != nil {
		err := s.reads.RecordRead(ctx, b.Author.PersonalInfo.Username)
		if err != nil {
			s.logger.Error("could not record author read", slog.String("username", b.Author.PersonalInfo.Username), slog.String("error", err.Error()))
		}
	}

	return b, nil
}

// DeleteOwnedBlog removes the caller's blog and its ownership link.
func (s *BlogService) DeleteOwnedBlog(ctx context.Context, blogID, authorID string) error {
	if blogID == "" {
		return ErrNotFoundOrUnauthorized
	}

	b, err := s.m.GetOwned(ctx, blogID, authorID)
	if err != nil {
		return err
	}

	err = s.m.Delete(ctx, b.ID)
	if err != nil {
		return err
	}

	s.invalidate()

	return s.authors.UnlinkBlog(ctx, authorID, b.ID, -postDelta(b.Draft))
}

func (s *BlogService) invalidate() {
	s.c.DeletePrefix(common.CachePrefixLatestBlogs)
}

func postDelta(draft bool) int {
	if draft {
		return 0
	}
	return 1
}
