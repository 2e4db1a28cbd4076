package worktree

import (
	"regexp"
)

// The three remote URL forms we understand. Each captures the first path
// segment after the host, which is the organization/namespace.
var remoteURLPatterns = []*regexp.Regexp{
	// ssh://git@github.com/acme/frontend.git
	regexp.MustCompile(`^ssh://(?:[^@/]+@)?[^/]+/([^/]+)/[^/]+?(?:\.git)?/?$`),
	// git@github.com:acme/frontend.git
	regexp.MustCompile(`^[^@/]+@[^:/]+:([^/]+)/[^/]+?(?:\.git)?/?$`),
	// https://github.com/acme/frontend.git
	regexp.MustCompile(`^https?://[^/]+/([^/]+)/[^/]+?(?:\.git)?/?$`),
}

// OrgFromRemoteURL extracts the organization segment from a remote URL in
// SSH, SCP-like, or HTTPS form.
func OrgFromRemoteURL(url string) (string, error) {
	for _, pattern := range remoteURLPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], nil
		}
	}
	return "", &RemoteParseError{URL: url}
}
