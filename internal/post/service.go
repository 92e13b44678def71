package post

import (
	"context"
	"strings"
	"time"

	"blog-service/configs"
	"blog-service/internal/shared/apperr"
	"blog-service/internal/shared/page"
	"blog-service/internal/tag"
	"blog-service/pkg/slug"
)

// MediaRemover deletes stored media objects; satisfied by media.Store.
type MediaRemover interface {
	Remove(ctx context.Context, key string) error
}

type Service interface {
	ListPublished(pageNum int, tagSlug string) (*ListResult, error)
	Detail(year, month, day int, slug string) (*DetailResult, error)
	Search(query string, pageNum int) (*SearchResult, error)
	Manage(pageNum int) (*ManageResult, error)

	Create(authorID uint, authorName string, in CreateRequest) (*Post, error)
	Update(requesterID uint, slug string, in UpdateRequest) (*Post, error)
	Delete(ctx context.Context, requesterID uint, slug string) error
}

type service struct {
	repo       Repository
	tags       tag.Service
	media      MediaRemover
	listSize   int
	manageSize int
	minRank    float64
}

func NewService(repo Repository, tags tag.Service, media MediaRemover, cfg *configs.Config) Service {
	return &service{
		repo:       repo,
		tags:       tags,
		media:      media,
		listSize:   cfg.ListPageSize,
		manageSize: cfg.ManagePageSize,
		minRank:    cfg.SearchMinRank,
	}
}

func (s *service) ListPublished(pageNum int, tagSlug string) (*ListResult, error) {
	var active *tag.Tag
	var tagID uint
	if tagSlug != "" {
		t, err := s.tags.GetBySlug(tagSlug)
		if err != nil {
			return nil, err
		}
		active, tagID = t, t.ID
	}
	total, err := s.repo.CountPublished(tagID)
	if err != nil {
		return nil, err
	}
	num, pages, offset := page.Clamp(pageNum, total, s.listSize)
	items, err := s.repo.ListPublished(tagID, s.listSize, offset)
	if err != nil {
		return nil, err
	}
	return &ListResult{Window: page.Build(items, num, pages, total), Tag: active}, nil
}

func (s *service) Detail(year, month, day int, slug string) (*DetailResult, error) {
	p, err := s.repo.FindPublishedByLocator(year, month, day, slug)
	if err != nil {
		return nil, err
	}
	prev, err := s.repo.PrevPublished(p)
	if err != nil {
		return nil, err
	}
	next, err := s.repo.NextPublished(p)
	if err != nil {
		return nil, err
	}
	return &DetailResult{Post: p, Prev: prev, Next: next}, nil
}

func (s *service) Search(query string, pageNum int) (*SearchResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		// no query at all is a distinct outcome from zero matches
		return &SearchResult{
			Window:  page.Build([]Post{}, 1, 1, 0),
			NoQuery: true,
		}, nil
	}
	total, err := s.repo.CountSearch(q, s.minRank)
	if err != nil {
		return nil, err
	}
	num, pages, offset := page.Clamp(pageNum, total, s.listSize)
	items, err := s.repo.Search(q, s.minRank, s.listSize, offset)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Window: page.Build(items, num, pages, total), Query: q}, nil
}

func (s *service) Manage(pageNum int) (*ManageResult, error) {
	total, err := s.repo.CountAll()
	if err != nil {
		return nil, err
	}
	published, err := s.repo.CountByStatus(StatusPublished)
	if err != nil {
		return nil, err
	}
	drafts, err := s.repo.CountByStatus(StatusDraft)
	if err != nil {
		return nil, err
	}
	num, pages, offset := page.Clamp(pageNum, total, s.manageSize)
	items, err := s.repo.ListAll(s.manageSize, offset)
	if err != nil {
		return nil, err
	}
	return &ManageResult{
		Window:         page.Build(items, num, pages, total),
		TotalPosts:     total,
		PublishedPosts: published,
		DraftPosts:     drafts,
	}, nil
}

func (s *service) Create(authorID uint, authorName string, in CreateRequest) (*Post, error) {
	now := time.Now().UTC()
	publish := now
	if in.Publish != nil {
		publish = in.Publish.UTC()
	}
	status := in.Status
	if status == "" {
		status = StatusDraft
	}

	sl := slug.Make(in.Title)
	if sl == "" {
		return nil, &apperr.Validation{Field: "title", Msg: "title must contain letters or digits"}
	}
	dup, err := s.repo.TitleExistsForAuthor(in.Title, authorID, 0)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, &apperr.Validation{Field: "title", Msg: "you already have a post with this title"}
	}
	taken, err := s.repo.SlugExistsForDate(sl, publish, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &apperr.Validation{Field: "slug", Msg: "a post with this slug already exists for this publish date"}
	}

	tags, err := s.tags.Ensure(in.Tags)
	if err != nil {
		return nil, err
	}

	p := &Post{
		Title:          in.Title,
		Slug:           sl,
		AuthorID:       authorID,
		OriginalAuthor: &authorName,
		Preview:        in.Preview,
		Body:           in.Body,
		Image:          in.Image,
		ImagePreview:   in.ImagePreview,
		Publish:        publish,
		Created:        now,
		Updated:        now,
		Status:         status,
		Tags:           tags,
	}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(requesterID uint, postSlug string, in UpdateRequest) (*Post, error) {
	p, err := s.repo.FindBySlug(postSlug)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != requesterID {
		return nil, &apperr.Forbidden{
			Msg:      "you do not have permission to edit this post",
			Redirect: "/manage",
		}
	}

	changed := false
	if in.Title != nil && *in.Title != p.Title {
		dup, err := s.repo.TitleExistsForAuthor(*in.Title, requesterID, p.ID)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, &apperr.Validation{Field: "title", Msg: "you already have a post with this title"}
		}
		sl := slug.Make(*in.Title)
		if sl == "" {
			return nil, &apperr.Validation{Field: "title", Msg: "title must contain letters or digits"}
		}
		p.Title = *in.Title
		p.Slug = sl
		changed = true
	}
	if in.Preview != nil && *in.Preview != p.Preview {
		p.Preview = *in.Preview
		changed = true
	}
	if in.Body != nil && *in.Body != p.Body {
		p.Body = *in.Body
		changed = true
	}
	if in.Image != nil && !sameRef(in.Image, p.Image) {
		p.Image = nilIfEmpty(*in.Image)
		changed = true
	}
	if in.ImagePreview != nil && !sameRef(in.ImagePreview, p.ImagePreview) {
		p.ImagePreview = nilIfEmpty(*in.ImagePreview)
		changed = true
	}
	if in.Status != nil && *in.Status != p.Status {
		p.Status = *in.Status
		changed = true
	}
	if in.Publish != nil && !in.Publish.UTC().Equal(p.Publish) {
		p.Publish = in.Publish.UTC()
		changed = true
	}

	if changed {
		taken, err := s.repo.SlugExistsForDate(p.Slug, p.Publish, p.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &apperr.Validation{Field: "slug", Msg: "a post with this slug already exists for this publish date"}
		}
	}

	var newTags *[]tag.Tag
	if in.Tags != nil {
		tags, err := s.tags.Ensure(*in.Tags)
		if err != nil {
			return nil, err
		}
		newTags = &tags
		changed = true
	}

	if !changed {
		return p, nil
	}
	p.Updated = time.Now().UTC()
	if err := s.repo.SaveWithTags(p, newTags); err != nil {
		return nil, err
	}
	if newTags != nil {
		p.Tags = *newTags
	}
	return p, nil
}

// Delete removes owned media objects before the record so a post never
// leaves orphaned files behind; a media-store failure aborts the whole
// deletion with the record intact.
func (s *service) Delete(ctx context.Context, requesterID uint, postSlug string) error {
	p, err := s.repo.FindBySlug(postSlug)
	if err != nil {
		return err
	}
	if p.AuthorID != requesterID {
		return &apperr.Forbidden{
			Msg:      "you do not have permission to delete this post",
			Redirect: "/manage",
		}
	}
	for _, key := range []*string{p.Image, p.ImagePreview} {
		if key == nil || *key == "" {
			continue
		}
		if err := s.media.Remove(ctx, *key); err != nil {
			return err
		}
	}
	return s.repo.Delete(p)
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
