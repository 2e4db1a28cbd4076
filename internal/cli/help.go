package cli

import (
	"fmt"
	"io"
)

func printGlobalHelp(w io.Writer) {
	fmt.Fprint(w, `iws - issue workspaces across multiple repositories

Usage:
  iws [flags] <command> [args]

Commands:
  init      create the iws root directory layout
  project   manage project definitions (add, ls, rm)
  new       create an issue workspace (worktree + branch per repository)
  rm        remove an issue workspace
  ls        list issues of a project, newest first
  status    refresh and show per-repository branch status of an issue
  orphans   list or clean workspace directories with no issue record
  help      show this help or per-command help

Flags:
  --root DIR    override the iws root (default: $IWS_ROOT or ~/issue-workspaces)
  --no-prompt   disable interactive prompts
  --verbose     show detailed logs
  --debug       write a git trace log under the root
`)
}

var commandHelp = map[string]string{
	"init": `Usage: iws init

Creates the projects and workspaces directories under the iws root.
`,
	"project": `Usage:
  iws project add <id> --name NAME --repo name=path[,branch=NAME][,remote=NAME] [--repo ...]
                       [--description TEXT] [--branch-naming PATTERN]
  iws project ls
  iws project rm <id>

Each --repo path must point at an already-cloned git repository. The branch
naming pattern must contain {issue_id}, e.g. feature/{issue_id}.
`,
	"new": `Usage: iws new [-p PROJECT] [ISSUE_ID] [--title TEXT] [--desc TEXT]

Creates a worktree and feature branch in every repository of the project,
writes the workspace descriptor and context note, and records the issue.
If any repository fails, everything created by this call is rolled back.
`,
	"rm": `Usage: iws rm [-p PROJECT] [ISSUE_ID] [--delete-branches] [--yes]

Removes the issue's worktrees (and, with --delete-branches, its feature
branches), then its workspace directory and state record. Per-repository
failures are reported but never stop the cleanup.
`,
	"ls": `Usage: iws ls [-p PROJECT]

Lists the project's issues, newest first.
`,
	"status": `Usage: iws status [-p PROJECT] [ISSUE_ID]

Re-checks branch existence and push state in every repository of the issue
and stores the refreshed flags.
`,
	"orphans": `Usage: iws orphans [-p PROJECT] [--clean]

Lists workspace directories that no issue record claims. With --clean they
are removed wholesale; no git cleanup is attempted because orphans have no
known repository mapping.
`,
}

func printCommandHelp(name string, w io.Writer) bool {
	text, ok := commandHelp[name]
	if !ok {
		return false
	}
	fmt.Fprint(w, text)
	return true
}
