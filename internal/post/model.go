package post

import (
	"fmt"
	"time"

	"blog-service/internal/tag"
	"blog-service/internal/user"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Post is the central entity. Created is assigned once at construction;
// Updated is refreshed explicitly on every accepted mutation. Slug is
// unique among posts sharing the same publish date, not globally.
type Post struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Title          string     `gorm:"size:250" json:"title"`
	Slug           string     `gorm:"size:250;index" json:"slug"`
	AuthorID       uint       `gorm:"index" json:"author_id"`
	Author         user.User  `gorm:"constraint:OnDelete:CASCADE" json:"author"`
	OriginalAuthor *string    `gorm:"size:250" json:"original_author,omitempty"`
	Preview        string     `gorm:"type:text" json:"preview,omitempty"`
	Body           string     `gorm:"type:text" json:"body"`
	Image          *string    `gorm:"size:255" json:"image,omitempty"`
	ImagePreview   *string    `gorm:"size:255" json:"image_preview,omitempty"`
	Publish        time.Time  `gorm:"index" json:"publish"`
	Created        time.Time  `json:"created"`
	Updated        time.Time  `json:"updated"`
	Status         string     `gorm:"size:10;index;default:draft" json:"status"`
	Tags           []tag.Tag  `gorm:"many2many:post_tags" json:"tags"`
}

// Locator is the canonical year/month/day/slug path of a post.
func (p *Post) Locator() string {
	return fmt.Sprintf("/posts/%d/%02d/%02d/%s",
		p.Publish.Year(), p.Publish.Month(), p.Publish.Day(), p.Slug)
}
