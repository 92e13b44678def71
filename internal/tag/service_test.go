package tag

import (
	"testing"

	"blog-service/internal/shared/apperr"
	"blog-service/pkg/slug"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	tags   map[string]*Tag
	nextID uint
}

func newFakeRepo() *fakeRepo { return &fakeRepo{tags: map[string]*Tag{}, nextID: 1} }

func (f *fakeRepo) FirstOrCreateByName(name string) (*Tag, error) {
	if t, ok := f.tags[name]; ok {
		return t, nil
	}
	t := &Tag{ID: f.nextID, Name: name, Slug: slug.Make(name)}
	f.nextID++
	f.tags[name] = t
	return t, nil
}

func (f *fakeRepo) FindBySlug(s string) (*Tag, error) {
	for _, t := range f.tags {
		if t.Slug == s {
			return t, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func TestEnsureCreatesOnFirstUse(t *testing.T) {
	svc := NewService(newFakeRepo())
	out, err := svc.Ensure([]string{"Film", "Darkroom"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "film", out[0].Slug)
	assert.Equal(t, "darkroom", out[1].Slug)
}

func TestEnsureSkipsBlankAndDuplicateLabels(t *testing.T) {
	svc := NewService(newFakeRepo())
	out, err := svc.Ensure([]string{"Film", "", "  ", "film", "Film"})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestEnsureReusesExistingTags(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	first, err := svc.Ensure([]string{"Film"})
	require.NoError(t, err)
	second, err := svc.Ensure([]string{"Film"})
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestGetBySlugUnknownIsNotFound(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.GetBySlug("no-such-tag")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
