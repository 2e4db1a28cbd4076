// Package issue holds the issue records, their per-project state store, and
// the orchestrator that turns an issue into worktrees, branches, and
// workspace artifacts across every repository of a project.
package issue

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusPRCreated Status = "pr_created"
	StatusMerged    Status = "merged"
	StatusClosed    Status = "closed"
)

// Issue is one unit of cross-repository work. The repos list is frozen at
// creation time in the project's declared order.
type Issue struct {
	ID           string      `json:"id"`
	ProjectID    string      `json:"projectId"`
	Title        string      `json:"title,omitempty"`
	Description  string      `json:"description,omitempty"`
	Status       Status      `json:"status"`
	WorkspaceDir string      `json:"workspaceDir"`
	Repos        []RepoState `json:"repos"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// RepoState records what was set up in one repository. The two flags are
// point-in-time observations refreshed by explicit status queries.
type RepoState struct {
	Name          string `json:"name"`
	Branch        string `json:"branch"`
	WorktreePath  string `json:"worktreePath"`
	BranchCreated bool   `json:"branchCreated"`
	BranchPushed  bool   `json:"branchPushed"`
}
