package di

import (
	"gorm.io/gorm"

	"blog-service/configs"
	"blog-service/internal/media"
	"blog-service/internal/post"
	"blog-service/internal/tag"
	"blog-service/internal/user"
	"blog-service/pkg/db"
)

type Container struct {
	DB          *gorm.DB
	Media       *media.Store
	TagService  tag.Service
	PostService post.Service
	UserService user.Service
}

func BuildContainer(cfg *configs.Config) (*Container, error) {
	dbConn := db.NewDb(cfg)

	store, err := media.New(media.Config{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		Bucket:    cfg.S3Bucket,
	})
	if err != nil {
		return nil, err
	}

	tagRepo := tag.NewRepository(dbConn.DB)
	tagService := tag.NewService(tagRepo)

	postRepo := post.NewRepository(dbConn.DB)
	postService := post.NewService(postRepo, tagService, store, cfg)

	userRepo := user.NewRepository(dbConn.DB)
	userService := user.NewService(userRepo)

	return &Container{
		DB:          dbConn.DB,
		Media:       store,
		TagService:  tagService,
		PostService: postService,
		UserService: userService,
	}, nil
}
