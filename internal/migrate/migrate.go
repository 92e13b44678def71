package migrate

import (
	"blog-service/internal/post"
	"blog-service/internal/tag"
	"blog-service/internal/user"

	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&tag.Tag{},
		&post.Post{},
	)
}
