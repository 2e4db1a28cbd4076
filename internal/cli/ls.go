package cli

import (
	"flag"
	"fmt"
	"os"
)

func runList(e *env, args []string) error {
	if len(args) == 1 && isHelpArg(args[0]) {
		printCommandHelp("ls", os.Stdout)
		return nil
	}

	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	var projectFlag string
	fs.StringVar(&projectFlag, "p", "", "project id")
	fs.StringVar(&projectFlag, "project", "", "project id")
	fs.SetOutput(os.Stdout)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("usage: iws ls [-p PROJECT]")
	}

	projectID, err := resolveProjectID(e, projectFlag)
	if err != nil {
		return err
	}

	issues, warnings, err := e.issues.Load(projectID)
	if err != nil {
		return err
	}
	warnAll(e, warnings)

	r := e.renderer()
	r.Section(fmt.Sprintf("Issues in %s", projectID))
	if len(issues) == 0 {
		r.Bullet("none")
		return nil
	}
	for _, record := range issues {
		r.BulletWithDescription(record.ID, record.Title, fmt.Sprintf("[%s]", record.Status))
	}
	return nil
}
