package paths

import "path/filepath"

// ProjectsDir returns the directory holding project definition files.
func ProjectsDir(rootDir string) string {
	return filepath.Join(rootDir, "projects")
}

// StateDir returns the per-project issue state directory.
func StateDir(rootDir, projectID string) string {
	return filepath.Join(rootDir, "state", projectID)
}

// IssuesFile returns the path of a project's issue state file.
func IssuesFile(rootDir, projectID string) string {
	return filepath.Join(StateDir(rootDir, projectID), "issues.json")
}

// WorkspacesRoot returns the root directory for issue workspaces.
func WorkspacesRoot(rootDir string) string {
	return filepath.Join(rootDir, "workspaces")
}

// ProjectWorkspaceDir returns the directory holding one project's issue
// workspaces.
func ProjectWorkspaceDir(rootDir, projectID string) string {
	return filepath.Join(WorkspacesRoot(rootDir), projectID)
}

// IssueDir returns the deterministic workspace directory of one issue.
func IssueDir(rootDir, projectID, issueID string) string {
	return filepath.Join(ProjectWorkspaceDir(rootDir, projectID), issueID)
}

// LogsDir returns the debug log directory.
func LogsDir(rootDir string) string {
	return filepath.Join(rootDir, "logs")
}
