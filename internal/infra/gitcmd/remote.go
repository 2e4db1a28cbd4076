package gitcmd

import (
	"context"
	"strings"
)

// RemoteGetURL returns the remote URL for the given name.
func RemoteGetURL(ctx context.Context, dir, name string) (string, error) {
	res, err := Run(ctx, []string{"remote", "get-url", name}, Options{Dir: dir})
	if err != nil {
		return "", wrapGit("git remote get-url "+name, res, err)
	}
	return strings.TrimSpace(res.Stdout), nil
}
