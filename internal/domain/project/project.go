// Package project defines project records and their file-backed store. One
// YAML file per project lives under {root}/projects; the filename stem is the
// project id.
package project

import (
	"fmt"
	"strings"
)

const (
	DefaultBranch         = "main"
	DefaultRemote         = "origin"
	DefaultBranchNaming   = "feature/{issue_id}"
	issueIDToken          = "{issue_id}"
	DefaultTokenSeparator = "-"
)

type Project struct {
	// ID is the filename stem, not stored inside the file.
	ID           string       `yaml:"-"`
	Name         string       `yaml:"name"`
	Description  string       `yaml:"description,omitempty"`
	Repos        []Repository `yaml:"repositories"`
	BranchNaming string       `yaml:"branch_naming,omitempty"`
}

type Repository struct {
	Name          string `yaml:"name"`
	Path          string `yaml:"path"`
	DefaultBranch string `yaml:"default_branch,omitempty"`
	Remote        string `yaml:"remote,omitempty"`
}

// Normalize fills repository defaults in place.
func (p *Project) Normalize() {
	for i := range p.Repos {
		if p.Repos[i].DefaultBranch == "" {
			p.Repos[i].DefaultBranch = DefaultBranch
		}
		if p.Repos[i].Remote == "" {
			p.Repos[i].Remote = DefaultRemote
		}
	}
}

func (p *Project) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("project id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	seen := map[string]struct{}{}
	for _, repo := range p.Repos {
		if strings.TrimSpace(repo.Name) == "" {
			return fmt.Errorf("repository name is required")
		}
		if strings.TrimSpace(repo.Path) == "" {
			return fmt.Errorf("repository %q: path is required", repo.Name)
		}
		if _, dup := seen[repo.Name]; dup {
			return fmt.Errorf("repository %q: duplicate name", repo.Name)
		}
		seen[repo.Name] = struct{}{}
	}
	if p.BranchNaming != "" && !strings.Contains(p.BranchNaming, issueIDToken) {
		return fmt.Errorf("branch_naming must contain %s", issueIDToken)
	}
	return nil
}

// Repo returns the repository with the given name, if any.
func (p *Project) Repo(name string) (Repository, bool) {
	for _, repo := range p.Repos {
		if repo.Name == name {
			return repo, true
		}
	}
	return Repository{}, false
}

// BranchName computes the feature branch for an issue id, using the project's
// naming pattern or the global default. Whitespace inside the id is replaced
// with the separator before substitution.
func (p *Project) BranchName(issueID, separator string) string {
	pattern := p.BranchNaming
	if pattern == "" {
		pattern = DefaultBranchNaming
	}
	if separator == "" {
		separator = DefaultTokenSeparator
	}
	id := strings.Join(strings.Fields(strings.TrimSpace(issueID)), separator)
	return strings.ReplaceAll(pattern, issueIDToken, id)
}
