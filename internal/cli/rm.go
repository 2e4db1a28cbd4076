package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"iws/internal/domain/issue"
	"iws/internal/ui"
)

func runRemove(ctx context.Context, e *env, args []string) error {
	if len(args) == 1 && isHelpArg(args[0]) {
		printCommandHelp("rm", os.Stdout)
		return nil
	}

	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	var projectFlag string
	var deleteBranches, yes bool
	fs.StringVar(&projectFlag, "p", "", "project id")
	fs.StringVar(&projectFlag, "project", "", "project id")
	fs.BoolVar(&deleteBranches, "delete-branches", false, "also force-delete the feature branches")
	fs.BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	fs.SetOutput(os.Stdout)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("usage: iws rm [-p PROJECT] [ISSUE_ID]")
	}

	projectID, err := resolveProjectID(e, projectFlag)
	if err != nil {
		return err
	}
	issueID, err := resolveIssueID(e, projectID, fs.Arg(0))
	if err != nil {
		return err
	}

	if !yes && e.canPrompt() {
		ok, err := ui.PromptConfirm(fmt.Sprintf("remove issue %s and its worktrees?", issueID), e.theme, e.color)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	r := e.renderer()
	r.Header(fmt.Sprintf("iws rm %s in %s", issueID, projectID))
	r.Blank()
	r.Section("Steps")

	results, err := e.orch.Delete(ctx, projectID, issueID, issue.DeleteOptions{DeleteBranches: deleteBranches})
	if err != nil {
		return err
	}

	r.Blank()
	r.Section("Result")
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			r.BulletError(fmt.Sprintf("%s: %s: %v", res.Repo, res.Op, res.Err))
		}
	}
	if failed == 0 {
		r.BulletSuccess(fmt.Sprintf("removed issue %s", issueID))
	} else {
		r.BulletSuccess(fmt.Sprintf("removed issue %s (%d cleanup failures above)", issueID, failed))
	}
	return nil
}
