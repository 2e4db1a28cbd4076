// Package worktree wraps git worktree and branch primitives for a single
// repository. All mutations run the real git binary through gitcmd; queries
// degrade to false/empty instead of propagating failures.
package worktree

import (
	"context"
	"fmt"
	"strings"

	"iws/internal/infra/gitcmd"
	"iws/internal/infra/paths"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// BranchStatus is a point-in-time observation, not a guarantee.
type BranchStatus struct {
	Created bool
	Pushed  bool
}

type Worktree struct {
	Path   string
	Branch string
}

// ValidateRepo verifies the path points at an initialized git repository.
func (m *Manager) ValidateRepo(ctx context.Context, repoPath string) error {
	ok, err := paths.DirExists(repoPath)
	if err != nil || !ok {
		if err == nil {
			err = fmt.Errorf("directory does not exist")
		}
		return &InvalidRepositoryError{Path: repoPath, Err: err}
	}
	if _, err := gitcmd.RevParseGitDir(ctx, repoPath); err != nil {
		return &InvalidRepositoryError{Path: repoPath, Err: err}
	}
	return nil
}

// Create fetches the remote and adds a worktree at worktreePath, creating
// branch from remote/baseBranch.
func (m *Manager) Create(ctx context.Context, repoPath, worktreePath, branch, remote, baseBranch string) error {
	if err := gitcmd.FetchRemote(ctx, repoPath, remote); err != nil {
		return &GitError{Op: "fetch", RepoPath: repoPath, Err: err}
	}
	baseRef := remote + "/" + baseBranch
	if err := gitcmd.WorktreeAddNewBranch(ctx, repoPath, branch, worktreePath, baseRef); err != nil {
		return &GitError{Op: "worktree add", RepoPath: repoPath, Err: err}
	}
	return nil
}

// Remove force-removes a worktree. A worktree whose directory was already
// deleted externally is pruned instead of failing.
func (m *Manager) Remove(ctx context.Context, repoPath, worktreePath string) error {
	err := gitcmd.WorktreeRemove(ctx, repoPath, worktreePath, true)
	if err == nil {
		return nil
	}
	if ok, statErr := paths.DirExists(worktreePath); statErr == nil && !ok {
		if pruneErr := gitcmd.WorktreePrune(ctx, repoPath); pruneErr == nil {
			return nil
		}
	}
	return &GitError{Op: "worktree remove", RepoPath: repoPath, Err: err}
}

// DeleteBranch deletes a local branch. Without force, a branch with unmerged
// commits yields ErrBranchNotMerged so the caller can decide whether to
// escalate.
func (m *Manager) DeleteBranch(ctx context.Context, repoPath, branch string, force bool) error {
	res, err := gitcmd.BranchDelete(ctx, repoPath, branch, force)
	if err == nil {
		return nil
	}
	if !force && strings.Contains(res.Stderr, "not fully merged") {
		return fmt.Errorf("%w: %s", ErrBranchNotMerged, branch)
	}
	return &GitError{Op: "branch delete", RepoPath: repoPath, Err: err}
}

// BranchExists reports whether the local branch exists. False on any failure.
func (m *Manager) BranchExists(ctx context.Context, repoPath, branch string) bool {
	_, ok, err := gitcmd.ShowRef(ctx, repoPath, "refs/heads/"+branch)
	if err != nil {
		return false
	}
	return ok
}

// WorktreeExists reports whether a worktree is registered at the given path.
// False on any failure.
func (m *Manager) WorktreeExists(ctx context.Context, repoPath, worktreePath string) bool {
	worktrees, err := m.ListWorktrees(ctx, repoPath)
	if err != nil {
		return false
	}
	for _, wt := range worktrees {
		if wt.Path == worktreePath {
			return true
		}
	}
	return false
}

// ListWorktrees parses `git worktree list --porcelain` output.
func (m *Manager) ListWorktrees(ctx context.Context, repoPath string) ([]Worktree, error) {
	out, err := gitcmd.WorktreeListPorcelain(ctx, repoPath)
	if err != nil {
		return nil, &GitError{Op: "worktree list", RepoPath: repoPath, Err: err}
	}
	return parseWorktreeList(out), nil
}

// BranchStatus checks local branch existence and whether a same-named ref
// exists on the remote. Remote-query failures mean "unknown, assume not
// pushed", never an error.
func (m *Manager) BranchStatus(ctx context.Context, repoPath, branch, remote string) BranchStatus {
	status := BranchStatus{
		Created: m.BranchExists(ctx, repoPath, branch),
	}
	pushed, err := gitcmd.LsRemoteHeads(ctx, repoPath, remote, branch)
	if err == nil {
		status.Pushed = pushed
	}
	return status
}

// OrgFromRemote resolves the remote URL and extracts its organization
// segment.
func (m *Manager) OrgFromRemote(ctx context.Context, repoPath, remote string) (string, error) {
	url, err := gitcmd.RemoteGetURL(ctx, repoPath, remote)
	if err != nil {
		return "", &GitError{Op: "remote get-url", RepoPath: repoPath, Err: err}
	}
	return OrgFromRemoteURL(url)
}

func parseWorktreeList(out string) []Worktree {
	var worktrees []Worktree
	var current Worktree
	flush := func() {
		if current.Path != "" {
			worktrees = append(worktrees, current)
		}
		current = Worktree{}
	}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "worktree "):
			flush()
			current.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "branch "):
			ref := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(ref, "refs/heads/")
		}
	}
	flush()
	return worktrees
}
