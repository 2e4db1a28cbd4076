package cli

import (
	"flag"
	"fmt"
	"os"
)

func runOrphans(e *env, args []string) error {
	if len(args) == 1 && isHelpArg(args[0]) {
		printCommandHelp("orphans", os.Stdout)
		return nil
	}

	fs := flag.NewFlagSet("orphans", flag.ContinueOnError)
	var projectFlag string
	var clean bool
	fs.StringVar(&projectFlag, "p", "", "project id")
	fs.StringVar(&projectFlag, "project", "", "project id")
	fs.BoolVar(&clean, "clean", false, "remove the orphaned directories")
	fs.SetOutput(os.Stdout)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("usage: iws orphans [-p PROJECT] [--clean]")
	}

	projectID, err := resolveProjectID(e, projectFlag)
	if err != nil {
		return err
	}

	r := e.renderer()
	if clean {
		removed, err := e.orch.CleanupOrphans(projectID)
		if err != nil {
			return err
		}
		r.Section("Result")
		r.BulletSuccess(fmt.Sprintf("removed %d orphaned directories", removed))
		return nil
	}

	orphans, err := e.orch.FindOrphans(projectID)
	if err != nil {
		return err
	}
	r.Section(fmt.Sprintf("Orphans in %s", projectID))
	if len(orphans) == 0 {
		r.Bullet("none")
		return nil
	}
	for _, name := range orphans {
		r.Bullet(name)
	}
	return nil
}
