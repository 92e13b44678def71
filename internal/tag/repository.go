package tag

import (
	"errors"

	"blog-service/internal/shared/apperr"
	"blog-service/pkg/slug"

	"gorm.io/gorm"
)

type Repository interface {
	FirstOrCreateByName(name string) (*Tag, error)
	FindBySlug(s string) (*Tag, error)
}

type repo struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository { return &repo{db: db} }

func (r *repo) FirstOrCreateByName(name string) (*Tag, error) {
	t := &Tag{Name: name, Slug: slug.Make(name)}
	if err := r.db.Where("name = ?", name).FirstOrCreate(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repo) FindBySlug(s string) (*Tag, error) {
	var t Tag
	if err := r.db.Where("slug = ?", s).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
