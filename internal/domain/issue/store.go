package issue

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"iws/internal/infra/paths"
)

var ErrNotFound = errors.New("issue not found")

func nowUTC() time.Time { return time.Now().UTC() }

// Store persists each project's issues to a single JSON file with
// load-merge-rewrite semantics. A per-project mutex serializes writers within
// this process; concurrent writers in other processes still race (documented
// limitation).
type Store struct {
	root string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(root string) *Store {
	return &Store{root: root, locks: map[string]*sync.Mutex{}}
}

type stateFile struct {
	Issues []rawRecord `json:"issues"`
}

// Load reads a project's issue records. A missing file means zero issues; an
// unparsable file degrades to zero issues with a warning instead of an error
// so read paths never break on one corrupt file. Records lacking an id are
// dropped with a warning.
func (s *Store) Load(projectID string) ([]Issue, []error, error) {
	data, err := os.ReadFile(paths.IssuesFile(s.root, projectID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read issue state: %w", err)
	}

	var file stateFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, []error{fmt.Errorf("issue state for %q is corrupt, treating as empty: %w", projectID, err)}, nil
	}

	var issues []Issue
	var warnings []error
	for _, raw := range file.Issues {
		normalized, ok := raw.normalize()
		if !ok {
			warnings = append(warnings, fmt.Errorf("dropping issue record without id in project %q", projectID))
			continue
		}
		issues = append(issues, normalized)
	}
	return issues, warnings, nil
}

// Save merges the issue into the project's record list, replacing any prior
// record with the same id, and rewrites the whole file sorted by creation
// time, newest first. UpdatedAt is refreshed.
func (s *Store) Save(projectID string, issue Issue) error {
	lock := s.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	issues, _, err := s.Load(projectID)
	if err != nil {
		return err
	}

	issue.UpdatedAt = nowUTC()
	replaced := false
	for i := range issues {
		if issues[i].ID == issue.ID {
			issues[i] = issue
			replaced = true
			break
		}
	}
	if !replaced {
		issues = append(issues, issue)
	}

	return s.write(projectID, issues)
}

// Delete removes the record with the given id. Deleting an unknown id is a
// no-op.
func (s *Store) Delete(projectID, issueID string) error {
	lock := s.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	issues, _, err := s.Load(projectID)
	if err != nil {
		return err
	}
	kept := issues[:0]
	for _, issue := range issues {
		if issue.ID != issueID {
			kept = append(kept, issue)
		}
	}
	// Nothing removed, nothing to rewrite. Keeps the no-op from creating
	// state files for projects that never had one.
	if len(kept) == len(issues) {
		return nil
	}
	return s.write(projectID, kept)
}

func (s *Store) Get(projectID, issueID string) (Issue, error) {
	issues, _, err := s.Load(projectID)
	if err != nil {
		return Issue{}, err
	}
	for _, issue := range issues {
		if issue.ID == issueID {
			return issue, nil
		}
	}
	return Issue{}, fmt.Errorf("%w: %s/%s", ErrNotFound, projectID, issueID)
}

// UpdateStatus records a lifecycle transition. Transitions are recorded, not
// validated.
func (s *Store) UpdateStatus(projectID, issueID string, status Status) (Issue, error) {
	issue, err := s.Get(projectID, issueID)
	if err != nil {
		return Issue{}, err
	}
	issue.Status = status
	if err := s.Save(projectID, issue); err != nil {
		return Issue{}, err
	}
	return s.Get(projectID, issueID)
}

func (s *Store) write(projectID string, issues []Issue) error {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].CreatedAt.After(issues[j].CreatedAt)
	})

	file := stateFile{Issues: make([]rawRecord, 0, len(issues))}
	for _, issue := range issues {
		file.Issues = append(file.Issues, rawRecord{
			ID:           issue.ID,
			ProjectID:    issue.ProjectID,
			Title:        issue.Title,
			Description:  issue.Description,
			Status:       issue.Status,
			WorkspaceDir: issue.WorkspaceDir,
			Repos:        issue.Repos,
			CreatedAt:    issue.CreatedAt,
			UpdatedAt:    issue.UpdatedAt,
		})
	}

	if err := os.MkdirAll(paths.StateDir(s.root, projectID), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal issue state: %w", err)
	}
	if err := os.WriteFile(paths.IssuesFile(s.root, projectID), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write issue state: %w", err)
	}
	return nil
}

func (s *Store) projectLock(projectID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[projectID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[projectID] = lock
	}
	return lock
}
