package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"iws/internal/infra/paths"
)

var ErrNotFound = errors.New("project not found")

type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// List loads every parsable project definition, sorted by id. Files that fail
// to parse are skipped and reported as warnings so that one bad file never
// breaks browsing.
func (s *Store) List() ([]Project, []error, error) {
	dir := paths.ProjectsDir(s.root)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read projects dir: %w", err)
	}

	var projects []Project
	var warnings []error
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".yaml")
		p, err := s.Get(id)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("project %q: %w", id, err))
			continue
		}
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects, warnings, nil
}

func (s *Store) Get(id string) (Project, error) {
	if strings.TrimSpace(id) == "" {
		return Project{}, fmt.Errorf("project id is required")
	}
	data, err := os.ReadFile(s.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return Project{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return Project{}, fmt.Errorf("read project %q: %w", id, err)
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Project{}, fmt.Errorf("parse project %q: %w", id, err)
	}
	p.ID = id
	p.Normalize()
	return p, nil
}

func (s *Store) Save(p Project) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(paths.ProjectsDir(s.root), 0o755); err != nil {
		return fmt.Errorf("create projects dir: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal project %q: %w", p.ID, err)
	}
	if err := os.WriteFile(s.filePath(p.ID), data, 0o644); err != nil {
		return fmt.Errorf("write project %q: %w", p.ID, err)
	}
	return nil
}

func (s *Store) Delete(id string) error {
	if err := os.Remove(s.filePath(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("delete project %q: %w", id, err)
	}
	return nil
}

func (s *Store) filePath(id string) string {
	return filepath.Join(paths.ProjectsDir(s.root), id+".yaml")
}
