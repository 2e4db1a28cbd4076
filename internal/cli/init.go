package cli

import (
	"fmt"
	"os"

	"iws/internal/infra/paths"
)

func runInit(e *env, args []string) error {
	if len(args) == 1 && isHelpArg(args[0]) {
		printCommandHelp("init", os.Stdout)
		return nil
	}
	if len(args) != 0 {
		return fmt.Errorf("usage: iws init")
	}

	dirs := []string{
		paths.ProjectsDir(e.root),
		paths.WorkspacesRoot(e.root),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	r := e.renderer()
	r.Section("Result")
	r.BulletSuccess(fmt.Sprintf("initialized iws root at %s", e.root))
	return nil
}
