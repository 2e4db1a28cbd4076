// Package workspace creates and removes the on-disk artifacts of an issue
// workspace: the directory itself, the multi-folder descriptor the editor
// opens, and a short context note.
package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"iws/internal/infra/paths"
)

const (
	descriptorSuffix = ".code-workspace"
	contextNoteName  = "CONTEXT.md"
	rootFolderName   = "workspace root"
)

// Folder is one entry of the workspace descriptor.
type Folder struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// RepoFolder describes one repository to include in the descriptor. Org may
// be empty when the remote organization could not be resolved.
type RepoFolder struct {
	Name string
	Org  string
}

type descriptor struct {
	Folders  []Folder       `json:"folders"`
	Settings map[string]any `json:"settings"`
}

// EnsureIssueDir creates the deterministic issue directory (and parents) and
// returns its path. Already existing is fine.
func EnsureIssueDir(root, projectID, issueID string) (string, error) {
	dir := paths.IssueDir(root, projectID, issueID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create issue dir: %w", err)
	}
	return dir, nil
}

// WriteDescriptor writes the issue's workspace descriptor file, overwriting
// any previous one. The first folder is always the workspace root itself,
// followed by one folder per repository at ./{org}/{name} (or ./{name} when
// no organization is known).
func WriteDescriptor(issueDir, issueID string, repos []RepoFolder) (string, error) {
	doc := descriptor{
		Folders: []Folder{
			{Path: ".", Name: fmt.Sprintf("%s (%s)", issueID, rootFolderName)},
		},
		Settings: map[string]any{},
	}
	for _, repo := range repos {
		rel := repo.Name
		if repo.Org != "" {
			rel = repo.Org + "/" + repo.Name
		}
		doc.Folders = append(doc.Folders, Folder{Path: "./" + rel, Name: rel})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal workspace descriptor: %w", err)
	}
	path := DescriptorPath(issueDir, issueID)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write workspace descriptor: %w", err)
	}
	return path, nil
}

// WriteContextNote writes the free-text note summarizing the issue,
// overwriting any previous one.
func WriteContextNote(issueDir, issueID, title, description string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", issueID)
	if strings.TrimSpace(title) != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(title))
	}
	if strings.TrimSpace(description) != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(description))
	}
	b.WriteString("See the workspace folders for the repositories involved in this issue.\n")

	path := filepath.Join(issueDir, contextNoteName)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write context note: %w", err)
	}
	return path, nil
}

// RemoveIssueDir deletes the issue directory and everything under it. Absent
// is a no-op.
func RemoveIssueDir(issueDir string) error {
	if err := os.RemoveAll(issueDir); err != nil {
		return fmt.Errorf("remove issue dir: %w", err)
	}
	return nil
}

func DescriptorPath(issueDir, issueID string) string {
	return filepath.Join(issueDir, issueID+descriptorSuffix)
}
