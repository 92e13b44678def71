package post

import (
	"time"

	"blog-service/internal/shared/page"
	"blog-service/internal/tag"
)

type CreateRequest struct {
	Title        string     `json:"title" validate:"required,max=250"`
	Preview      string     `json:"preview"`
	Body         string     `json:"body" validate:"required"`
	Image        *string    `json:"image"`
	ImagePreview *string    `json:"image_preview"`
	Status       string     `json:"status" validate:"omitempty,oneof=draft published"`
	Publish      *time.Time `json:"publish"`
	Tags         []string   `json:"tags"`
}

// UpdateRequest carries only the fields the client wants changed; nil
// pointers leave the stored value untouched.
type UpdateRequest struct {
	Title        *string     `json:"title" validate:"omitempty,min=1,max=250"`
	Preview      *string     `json:"preview"`
	Body         *string     `json:"body" validate:"omitempty,min=1"`
	Image        *string     `json:"image"`
	ImagePreview *string     `json:"image_preview"`
	Status       *string     `json:"status" validate:"omitempty,oneof=draft published"`
	Publish      *time.Time  `json:"publish"`
	Tags         *[]string  `json:"tags"`
}

type ListResult struct {
	page.Window[Post]
	Tag *tag.Tag `json:"tag,omitempty"`
}

type SearchResult struct {
	page.Window[Post]
	Query   string `json:"query"`
	NoQuery bool   `json:"no_query"`
}

type DetailResult struct {
	Post *Post `json:"post"`
	Prev *Post `json:"prev_post"`
	Next *Post `json:"next_post"`
}

type ManageResult struct {
	page.Window[Post]
	TotalPosts     int64 `json:"total_posts"`
	PublishedPosts int64 `json:"published_posts"`
	DraftPosts     int64 `json:"draft_posts"`
}
