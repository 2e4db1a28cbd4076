package issue

import "time"

// rawRecord accepts both the canonical issue shape and the legacy variants
// older versions wrote: snake_case project id, a nested workspace object, and
// "repositories" instead of "repos". Canonical fields win when both are set.
type rawRecord struct {
	ID           string      `json:"id"`
	ProjectID    string      `json:"projectId"`
	Title        string      `json:"title,omitempty"`
	Description  string      `json:"description,omitempty"`
	Status       Status      `json:"status"`
	WorkspaceDir string      `json:"workspaceDir"`
	Repos        []RepoState `json:"repos"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`

	LegacyProjectID string           `json:"project_id,omitempty"`
	LegacyWorkspace *legacyWorkspace `json:"workspace,omitempty"`
	LegacyRepos     []RepoState      `json:"repositories,omitempty"`
}

type legacyWorkspace struct {
	Path string `json:"path"`
}

// normalize maps a raw record onto the canonical shape. Records without an
// id are unusable and reported via ok=false.
func (r rawRecord) normalize() (Issue, bool) {
	if r.ID == "" {
		return Issue{}, false
	}
	out := Issue{
		ID:           r.ID,
		ProjectID:    r.ProjectID,
		Title:        r.Title,
		Description:  r.Description,
		Status:       r.Status,
		WorkspaceDir: r.WorkspaceDir,
		Repos:        r.Repos,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if out.ProjectID == "" {
		out.ProjectID = r.LegacyProjectID
	}
	if out.WorkspaceDir == "" && r.LegacyWorkspace != nil {
		out.WorkspaceDir = r.LegacyWorkspace.Path
	}
	if out.Repos == nil {
		out.Repos = r.LegacyRepos
	}
	if out.Status == "" {
		out.Status = StatusActive
	}
	return out, true
}
