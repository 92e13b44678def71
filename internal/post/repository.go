package post

import (
	"errors"
	"time"

	"blog-service/internal/shared/apperr"
	"blog-service/internal/tag"

	"gorm.io/gorm"
)

// searchVector is the Postgres text-search document built over title,
// preview and body; plainto_tsquery keeps the query free-text safe.
const (
	searchVector = "to_tsvector('english', title || ' ' || coalesce(preview, '') || ' ' || body)"
	searchRank   = "ts_rank(" + searchVector + ", plainto_tsquery('english', ?))"
	searchMatch  = searchVector + " @@ plainto_tsquery('english', ?)"
)

type Repository interface {
	Create(p *Post) error
	SaveWithTags(p *Post, tags *[]tag.Tag) error
	Delete(p *Post) error

	FindBySlug(slug string) (*Post, error)
	FindPublishedByLocator(year, month, day int, slug string) (*Post, error)

	ListPublished(tagID uint, limit, offset int) ([]Post, error)
	CountPublished(tagID uint) (int64, error)
	ListAll(limit, offset int) ([]Post, error)
	CountAll() (int64, error)
	CountByStatus(status string) (int64, error)

	PrevPublished(p *Post) (*Post, error)
	NextPublished(p *Post) (*Post, error)

	Search(query string, minRank float64, limit, offset int) ([]Post, error)
	CountSearch(query string, minRank float64) (int64, error)

	TitleExistsForAuthor(title string, authorID, excludeID uint) (bool, error)
	SlugExistsForDate(slug string, publish time.Time, excludeID uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// eager joins author and tags up front so rendering never goes back to
// the store per row
func (r *repository) eager() *gorm.DB {
	return r.db.Joins("Author").Preload("Tags")
}

func (r *repository) Create(p *Post) error {
	return r.db.Omit("Author").Create(p).Error
}

// SaveWithTags persists field changes and, when tags is non-nil, swaps
// the tag set in the same transaction so a failed write leaves nothing
// half-applied.
func (r *repository) SaveWithTags(p *Post, tags *[]tag.Tag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author", "Tags").Save(p).Error; err != nil {
			return err
		}
		if tags != nil {
			if err := tx.Model(p).Association("Tags").Replace(*tags); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) Delete(p *Post) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(p).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(p).Error
	})
}

func (r *repository) FindBySlug(slug string) (*Post, error) {
	var p Post
	err := r.eager().Where("posts.slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindPublishedByLocator(year, month, day int, slug string) (*Post, error) {
	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	var p Post
	err := r.eager().
		Where("posts.slug = ? AND posts.status = ?", slug, StatusPublished).
		Where("posts.publish >= ? AND posts.publish < ?", start, end).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) publishedScope(tagID uint) *gorm.DB {
	q := r.db.Model(&Post{}).Where("posts.status = ?", StatusPublished)
	if tagID != 0 {
		q = q.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id = ?", tagID)
	}
	return q
}

func (r *repository) ListPublished(tagID uint, limit, offset int) ([]Post, error) {
	var posts []Post
	err := r.publishedScope(tagID).
		Joins("Author").Preload("Tags").
		Order("posts.publish DESC, posts.id DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *repository) CountPublished(tagID uint) (int64, error) {
	var n int64
	err := r.publishedScope(tagID).Count(&n).Error
	return n, err
}

func (r *repository) ListAll(limit, offset int) ([]Post, error) {
	var posts []Post
	err := r.eager().
		Order("posts.created DESC, posts.id DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *repository) CountAll() (int64, error) {
	var n int64
	err := r.db.Model(&Post{}).Count(&n).Error
	return n, err
}

func (r *repository) CountByStatus(status string) (int64, error) {
	var n int64
	err := r.db.Model(&Post{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// PrevPublished returns the published post chronologically before p,
// breaking publish-time ties by id. A nil result means no neighbor.
func (r *repository) PrevPublished(p *Post) (*Post, error) {
	var prev Post
	err := r.eager().
		Where("posts.status = ?", StatusPublished).
		Where("posts.publish < ? OR (posts.publish = ? AND posts.id < ?)", p.Publish, p.Publish, p.ID).
		Order("posts.publish DESC, posts.id DESC").
		First(&prev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prev, nil
}

func (r *repository) NextPublished(p *Post) (*Post, error) {
	var next Post
	err := r.eager().
		Where("posts.status = ?", StatusPublished).
		Where("posts.publish > ? OR (posts.publish = ? AND posts.id > ?)", p.Publish, p.Publish, p.ID).
		Order("posts.publish ASC, posts.id ASC").
		First(&next).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &next, nil
}

func (r *repository) searchScope(query string, minRank float64) *gorm.DB {
	return r.db.Model(&Post{}).
		Where("posts.status = ?", StatusPublished).
		Where(searchMatch, query).
		Where(searchRank+" >= ?", query, minRank)
}

func (r *repository) Search(query string, minRank float64, limit, offset int) ([]Post, error) {
	var posts []Post
	err := r.searchScope(query, minRank).
		Select("posts.*, "+searchRank+" AS rank", query).
		Joins("Author").Preload("Tags").
		Order("rank DESC, posts.publish DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *repository) CountSearch(query string, minRank float64) (int64, error) {
	var n int64
	err := r.searchScope(query, minRank).Count(&n).Error
	return n, err
}

func (r *repository) TitleExistsForAuthor(title string, authorID, excludeID uint) (bool, error) {
	var n int64
	q := r.db.Model(&Post{}).Where("title = ? AND author_id = ?", title, authorID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repository) SlugExistsForDate(slug string, publish time.Time, excludeID uint) (bool, error) {
	day := publish.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	var n int64
	q := r.db.Model(&Post{}).
		Where("slug = ?", slug).
		Where("publish >= ? AND publish < ?", start, end)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
