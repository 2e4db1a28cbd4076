package gitcmd

import (
	"context"
)

// BranchDelete deletes a local branch. With force=false git refuses to delete
// a branch with unmerged commits; the caller inspects stderr for that case.
func BranchDelete(ctx context.Context, dir, branch string, force bool) (Result, error) {
	flag := "-d"
	if force {
		flag = "-D"
	}
	res, err := Run(ctx, []string{"branch", flag, branch}, Options{Dir: dir})
	if err != nil {
		return res, wrapGit("git branch "+flag, res, err)
	}
	return res, nil
}
