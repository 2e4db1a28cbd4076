package gitcmd

import (
	"context"
	"fmt"
	"strings"
)

// WorktreeAddNewBranch adds a worktree at path, creating branch from baseRef.
func WorktreeAddNewBranch(ctx context.Context, dir, branch, path, baseRef string) error {
	res, err := Run(ctx, []string{"worktree", "add", "-b", branch, path, baseRef}, Options{Dir: dir, ShowOutput: true})
	if err != nil {
		return wrapGit("git worktree add", res, err)
	}
	return nil
}

// WorktreeRemove removes a worktree registration and its checkout.
func WorktreeRemove(ctx context.Context, dir, path string, force bool) error {
	args := []string{"worktree", "remove", path}
	if force {
		args = []string{"worktree", "remove", "--force", path}
	}
	res, err := Run(ctx, args, Options{Dir: dir})
	if err != nil {
		return wrapGit("git worktree remove", res, err)
	}
	return nil
}

// WorktreePrune cleans up stale worktree metadata.
func WorktreePrune(ctx context.Context, dir string) error {
	res, err := Run(ctx, []string{"worktree", "prune"}, Options{Dir: dir})
	if err != nil {
		return wrapGit("git worktree prune", res, err)
	}
	return nil
}

// WorktreeListPorcelain lists worktrees in porcelain format.
func WorktreeListPorcelain(ctx context.Context, dir string) (string, error) {
	res, err := Run(ctx, []string{"worktree", "list", "--porcelain"}, Options{Dir: dir})
	if err != nil {
		return "", wrapGit("git worktree list", res, err)
	}
	return res.Stdout, nil
}

func wrapGit(op string, res Result, err error) error {
	if stderr := strings.TrimSpace(res.Stderr); stderr != "" {
		return fmt.Errorf("%s failed: %w: %s", op, err, stderr)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}
