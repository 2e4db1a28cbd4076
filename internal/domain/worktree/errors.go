package worktree

import (
	"errors"
	"fmt"
)

// ErrBranchNotMerged is returned by DeleteBranch without force when the
// branch still has unmerged commits.
var ErrBranchNotMerged = errors.New("branch has unmerged commits")

// GitError wraps a failed git worktree/branch command.
type GitError struct {
	Op       string
	RepoPath string
	Err      error
}

func (e *GitError) Error() string {
	return fmt.Sprintf("git %s in %s: %v", e.Op, e.RepoPath, e.Err)
}

func (e *GitError) Unwrap() error { return e.Err }

// InvalidRepositoryError marks a configured path that is not a usable git
// repository.
type InvalidRepositoryError struct {
	Path string
	Err  error
}

func (e *InvalidRepositoryError) Error() string {
	return fmt.Sprintf("not a usable git repository: %s: %v", e.Path, e.Err)
}

func (e *InvalidRepositoryError) Unwrap() error { return e.Err }

// RemoteParseError marks a remote URL matching none of the supported forms.
type RemoteParseError struct {
	URL string
}

func (e *RemoteParseError) Error() string {
	return fmt.Sprintf("cannot parse organization from remote url: %q", e.URL)
}
