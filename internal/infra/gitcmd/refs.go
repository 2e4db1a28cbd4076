package gitcmd

import (
	"context"
	"strings"
)

// ShowRef verifies a ref and returns its hash when present.
func ShowRef(ctx context.Context, dir, ref string) (string, bool, error) {
	res, err := Run(ctx, []string{"show-ref", "--verify", ref}, Options{Dir: dir})
	if err == nil {
		fields := strings.Fields(strings.TrimSpace(res.Stdout))
		if len(fields) >= 1 {
			return fields[0], true, nil
		}
		return "", true, nil
	}
	if res.ExitCode == 1 || (res.ExitCode == 128 && strings.Contains(res.Stderr, "not a valid ref")) {
		return "", false, nil
	}
	return "", false, wrapGit("git show-ref", res, err)
}

// LsRemoteHeads reports whether the remote has a branch with the given name.
func LsRemoteHeads(ctx context.Context, dir, remote, branch string) (bool, error) {
	res, err := Run(ctx, []string{"ls-remote", "--heads", remote, branch}, Options{Dir: dir})
	if err != nil {
		return false, wrapGit("git ls-remote", res, err)
	}
	return strings.TrimSpace(res.Stdout) != "", nil
}

// FetchRemote fetches refs from the named remote.
func FetchRemote(ctx context.Context, dir, remote string) error {
	res, err := Run(ctx, []string{"fetch", remote}, Options{Dir: dir})
	if err != nil {
		return wrapGit("git fetch", res, err)
	}
	return nil
}

// RevParseGitDir resolves the repository's git directory, verifying the path
// is a usable repository.
func RevParseGitDir(ctx context.Context, dir string) (string, error) {
	res, err := Run(ctx, []string{"rev-parse", "--git-dir"}, Options{Dir: dir})
	if err != nil {
		return "", wrapGit("git rev-parse", res, err)
	}
	return strings.TrimSpace(res.Stdout), nil
}
