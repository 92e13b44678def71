package tag

import "strings"

type Service interface {
	Ensure(names []string) ([]Tag, error)
	GetBySlug(slug string) (*Tag, error)
}

type service struct{ repo Repository }

func NewService(r Repository) Service { return &service{repo: r} }

// Ensure resolves each label to a tag, creating missing ones. Blank and
// duplicate labels are dropped.
func (s *service) Ensure(names []string) ([]Tag, error) {
	out := make([]Tag, 0, len(names))
	seen := map[string]struct{}{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		t, err := s.repo.FirstOrCreateByName(n)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *service) GetBySlug(slug string) (*Tag, error) {
	return s.repo.FindBySlug(slug)
}
