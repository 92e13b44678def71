package post

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"blog-service/internal/shared/apperr"
	"blog-service/internal/tag"
	"blog-service/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Full-text search runs on Postgres only and is not exercised here.

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &tag.Tag{}, &Post{}))
	require.NoError(t, db.Create(&user.User{Email: "author@example.com", Name: "Ansel"}).Error)
	return db
}

func seedPost(t *testing.T, repo Repository, title, status string, publish time.Time, tags ...tag.Tag) *Post {
	t.Helper()
	p := &Post{
		Title:    title,
		Slug:     strings.ToLower(strings.ReplaceAll(title, " ", "-")),
		AuthorID: 1,
		Body:     "Body text",
		Publish:  publish,
		Created:  publish,
		Updated:  publish,
		Status:   status,
		Tags:     tags,
	}
	require.NoError(t, repo.Create(p))
	return p
}

func TestListPublishedPartitionSQL(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	seedPost(t, repo, "Pub One", StatusPublished, base)
	seedPost(t, repo, "Draft One", StatusDraft, base.AddDate(0, 0, 1))
	seedPost(t, repo, "Pub Two", StatusPublished, base.AddDate(0, 0, 2))

	posts, err := repo.ListPublished(0, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Pub Two", posts[0].Title, "newest publish first")
	assert.Equal(t, "Pub One", posts[1].Title)
	for _, p := range posts {
		assert.Equal(t, StatusPublished, p.Status)
		assert.Equal(t, "Ansel", p.Author.Name, "author joined eagerly")
	}

	n, err := repo.CountPublished(0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestListPublishedByTagSQL(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	tagRepo := tag.NewRepository(db)

	film, err := tagRepo.FirstOrCreateByName("Film")
	require.NoError(t, err)
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	seedPost(t, repo, "Tagged Pub", StatusPublished, base, *film)
	seedPost(t, repo, "Tagged Draft", StatusDraft, base.AddDate(0, 0, 1), *film)
	seedPost(t, repo, "Untagged Pub", StatusPublished, base.AddDate(0, 0, 2))

	posts, err := repo.ListPublished(film.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Tagged Pub", posts[0].Title)
	require.Len(t, posts[0].Tags, 1)
	assert.Equal(t, "film", posts[0].Tags[0].Slug)
}

func TestAdjacencySQL(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	base := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	p1 := seedPost(t, repo, "Chrono One", StatusPublished, base)
	seedPost(t, repo, "Hidden Draft", StatusDraft, base.AddDate(0, 0, 1))
	p2 := seedPost(t, repo, "Chrono Two", StatusPublished, base.AddDate(0, 0, 2))
	p3 := seedPost(t, repo, "Chrono Three", StatusPublished, base.AddDate(0, 0, 4))

	next, err := repo.NextPublished(p1)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, p2.ID, next.ID, "drafts are skipped")

	prev, err := repo.PrevPublished(p2)
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, p1.ID, prev.ID)

	prev, err = repo.PrevPublished(p1)
	require.NoError(t, err)
	assert.Nil(t, prev, "no neighbor is a normal outcome")

	next, err = repo.NextPublished(p3)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestAdjacencyTieBreakSQL(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	pub := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	a := seedPost(t, repo, "Tie A", StatusPublished, pub)
	b := seedPost(t, repo, "Tie B", StatusPublished, pub)

	next, err := repo.NextPublished(a)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, b.ID, next.ID)

	prev, err := repo.PrevPublished(b)
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, a.ID, prev.ID)
}

func TestFindPublishedByLocatorSQL(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	pub := time.Date(2025, 4, 15, 18, 30, 0, 0, time.UTC)

	seedPost(t, repo, "Locator Post", StatusPublished, pub)
	seedPost(t, repo, "Draft Post", StatusDraft, pub)

	p, err := repo.FindPublishedByLocator(2025, 4, 15, "locator-post")
	require.NoError(t, err)
	assert.Equal(t, "Locator Post", p.Title)

	_, err = repo.FindPublishedByLocator(2025, 4, 16, "locator-post")
	assert.ErrorIs(t, err, apperr.ErrNotFound, "wrong date misses")

	_, err = repo.FindPublishedByLocator(2025, 4, 15, "draft-post")
	assert.ErrorIs(t, err, apperr.ErrNotFound, "drafts are invisible by locator")
}

func TestTitleAndSlugExistenceSQL(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	pub := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	p := seedPost(t, repo, "Existing Title", StatusPublished, pub)

	exists, err := repo.TitleExistsForAuthor("Existing Title", 1, 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.TitleExistsForAuthor("Existing Title", 1, p.ID)
	require.NoError(t, err)
	assert.False(t, exists, "excluding the post itself for edits")

	exists, err = repo.TitleExistsForAuthor("Existing Title", 2, 0)
	require.NoError(t, err)
	assert.False(t, exists, "another author may reuse the title")

	exists, err = repo.SlugExistsForDate("existing-title", pub.Add(5*time.Hour), 0)
	require.NoError(t, err)
	assert.True(t, exists, "same slug on the same publish date collides")

	exists, err = repo.SlugExistsForDate("existing-title", pub.AddDate(0, 0, 1), 0)
	require.NoError(t, err)
	assert.False(t, exists, "another date is free")
}

func TestSaveWithTagsAndDeleteSQL(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	tagRepo := tag.NewRepository(db)

	film, err := tagRepo.FirstOrCreateByName("Film")
	require.NoError(t, err)
	dark, err := tagRepo.FirstOrCreateByName("Darkroom")
	require.NoError(t, err)

	pub := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	p := seedPost(t, repo, "Retag Me", StatusDraft, pub, *film)

	p.Status = StatusPublished
	newTags := []tag.Tag{*dark}
	require.NoError(t, repo.SaveWithTags(p, &newTags))

	got, err := repo.FindBySlug("retag-me")
	require.NoError(t, err)
	assert.Equal(t, StatusPublished, got.Status)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "Darkroom", got.Tags[0].Name)

	require.NoError(t, repo.Delete(got))
	_, err = repo.FindBySlug("retag-me")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// the tag itself survives post deletion
	kept, err := tagRepo.FindBySlug("darkroom")
	require.NoError(t, err)
	assert.Equal(t, "Darkroom", kept.Name)
}

func TestManageCountsSQL(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		seedPost(t, repo, fmt.Sprintf("Pub %d", i), StatusPublished, base.AddDate(0, 0, i))
	}
	for i := 0; i < 3; i++ {
		seedPost(t, repo, fmt.Sprintf("Draft %d", i), StatusDraft, base.AddDate(0, 1, i))
	}

	total, err := repo.CountAll()
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)

	pub, err := repo.CountByStatus(StatusPublished)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pub)

	drafts, err := repo.CountByStatus(StatusDraft)
	require.NoError(t, err)
	assert.Equal(t, int64(3), drafts)

	all, err := repo.ListAll(10, 0)
	require.NoError(t, err)
	require.Len(t, all, 7)
	assert.Equal(t, "Draft 2", all[0].Title, "manage view orders by creation, newest first")
}
