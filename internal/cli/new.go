package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"iws/internal/domain/issue"
	"iws/internal/ui"
)

func runNew(ctx context.Context, e *env, args []string) error {
	if len(args) == 1 && isHelpArg(args[0]) {
		printCommandHelp("new", os.Stdout)
		return nil
	}

	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	var projectFlag, title, description string
	fs.StringVar(&projectFlag, "p", "", "project id")
	fs.StringVar(&projectFlag, "project", "", "project id")
	fs.StringVar(&title, "title", "", "issue title")
	fs.StringVar(&description, "desc", "", "issue description")
	fs.SetOutput(os.Stdout)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("usage: iws new [-p PROJECT] [ISSUE_ID]")
	}

	projectID, err := resolveProjectID(e, projectFlag)
	if err != nil {
		return err
	}

	issueID := fs.Arg(0)
	if issueID == "" {
		if !e.canPrompt() {
			return fmt.Errorf("issue id is required")
		}
		issueID, err = ui.PromptInput("iws new", "issue id", e.theme, e.color)
		if err != nil {
			return err
		}
	}

	r := e.renderer()
	r.Header(fmt.Sprintf("iws new %s in %s", issueID, projectID))
	r.Blank()
	r.Section("Steps")

	record, err := e.orch.Create(ctx, projectID, issueID, issue.CreateOptions{
		Title:       title,
		Description: description,
	})
	if err != nil {
		return err
	}

	r.Blank()
	r.Section("Result")
	r.BulletSuccess(fmt.Sprintf("workspace ready at %s", record.WorkspaceDir))
	for _, rs := range record.Repos {
		r.BulletWithDescription(rs.Name, rs.Branch, branchFlags(rs))
	}
	return nil
}

func branchFlags(rs issue.RepoState) string {
	switch {
	case rs.BranchCreated && rs.BranchPushed:
		return "(created, pushed)"
	case rs.BranchCreated:
		return "(created)"
	default:
		return "(missing)"
	}
}
