package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func runStatus(ctx context.Context, e *env, args []string) error {
	if len(args) == 1 && isHelpArg(args[0]) {
		printCommandHelp("status", os.Stdout)
		return nil
	}

	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	var projectFlag string
	fs.StringVar(&projectFlag, "p", "", "project id")
	fs.StringVar(&projectFlag, "project", "", "project id")
	fs.SetOutput(os.Stdout)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("usage: iws status [-p PROJECT] [ISSUE_ID]")
	}

	projectID, err := resolveProjectID(e, projectFlag)
	if err != nil {
		return err
	}
	issueID, err := resolveIssueID(e, projectID, fs.Arg(0))
	if err != nil {
		return err
	}

	record, err := e.orch.RefreshStatus(ctx, projectID, issueID)
	if err != nil {
		return err
	}

	r := e.renderer()
	r.Section(fmt.Sprintf("Status of %s", record.ID))
	r.BulletWithDescription(record.ID, record.Title, fmt.Sprintf("[%s]", record.Status))
	for _, rs := range record.Repos {
		r.BulletWithDescription(rs.Name, rs.Branch, branchFlags(rs))
	}
	return nil
}
