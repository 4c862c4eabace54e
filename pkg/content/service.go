package content

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/folio/pkg/extension"
)

// CategoryService answers structural questions about the category graph
type CategoryService struct {
	client extension.Client[*Category]
	log    logrus.FieldLogger
}

// NewCategoryService creates a CategoryService reading from client
func NewCategoryService(client extension.Client[*Category], log logrus.FieldLogger) *CategoryService {
	if log == nil {
		log = logrus.New()
	}
	return &CategoryService{client: client, log: log}
}

// GetParentByName returns the category listing name among its children. When
// several categories claim the child, the first in DefaultSort order wins, the
// same parent the category tree links it under.
func (s *CategoryService) GetParentByName(ctx context.Context, name string) (*Category, error) {
	if name == "" {
		return nil, extension.NotFound(KindCategory, name)
	}

	parents, err := s.client.ListAll(ctx,
		extension.ListOptions{FieldSelector: extension.Equal(FieldChildren, name)},
		DefaultSort(),
	)
	if err != nil {
		return nil, err
	}
	if len(parents) == 0 {
		return nil, extension.NotFound(KindCategory, "parent of "+name)
	}
	if len(parents) > 1 {
		s.log.WithField("category", name).Warnf("Category has %d parents, using %s",
			len(parents), parents[0].Metadata.Name)
	}
	return parents[0], nil
}

// ListChildren returns the named category followed by all of its descendants,
// breadth-first. Children that do not exist are skipped; each category is
// visited at most once.
func (s *CategoryService) ListChildren(ctx context.Context, name string) ([]*Category, error) {
	root, err := s.client.Fetch(ctx, name)
	if err != nil {
		if errors.Is(err, extension.ErrNotFound) {
			return []*Category{}, nil
		}
		return nil, err
	}

	result := []*Category{root}
	visited := map[string]bool{name: true}
	queue := []*Category{root}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, childName := range current.Spec.Children {
			if visited[childName] {
				continue
			}
			visited[childName] = true

			child, err := s.client.Fetch(ctx, childName)
			if errors.Is(err, extension.ErrNotFound) {
				s.log.WithField("category", current.Metadata.Name).Debugf("Skipping missing child %s", childName)
				continue
			}
			if err != nil {
				return nil, err
			}
			result = append(result, child)
			queue = append(queue, child)
		}
	}
	return result, nil
}
