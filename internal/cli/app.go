// Package cli wires the iws commands: flag parsing, dispatch, prompting for
// missing arguments, and rendering results.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"iws/internal/domain/issue"
	"iws/internal/domain/project"
	"iws/internal/domain/worktree"
	"iws/internal/infra/debuglog"
	"iws/internal/infra/output"
	"iws/internal/infra/paths"
	"iws/internal/ui"
)

type env struct {
	root     string
	noPrompt bool
	theme    ui.Theme
	color    bool

	projects *project.Store
	issues   *issue.Store
	orch     *issue.Orchestrator
}

func Run() error {
	fs := flag.NewFlagSet("iws", flag.ContinueOnError)
	var rootFlag string
	var noPrompt bool
	var debugFlag bool
	verboseFlag := envBool("IWS_VERBOSE")
	var helpFlag bool
	fs.StringVar(&rootFlag, "root", "", "override iws root")
	fs.BoolVar(&noPrompt, "no-prompt", false, "disable interactive prompts")
	fs.BoolVar(&debugFlag, "debug", false, "write a git trace log under the root")
	fs.BoolVar(&verboseFlag, "verbose", verboseFlag, "show detailed logs")
	fs.BoolVar(&verboseFlag, "v", verboseFlag, "show detailed logs")
	fs.BoolVar(&helpFlag, "help", false, "show help")
	fs.BoolVar(&helpFlag, "h", false, "show help")
	fs.SetOutput(os.Stdout)
	fs.Usage = func() {
		printGlobalHelp(os.Stdout)
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	output.SetVerbose(verboseFlag)

	args := fs.Args()
	if helpFlag {
		if len(args) > 0 && printCommandHelp(args[0], os.Stdout) {
			return nil
		}
		printGlobalHelp(os.Stdout)
		return nil
	}
	if len(args) == 0 {
		printGlobalHelp(os.Stdout)
		return nil
	}
	if args[0] == "help" {
		if len(args) > 1 && printCommandHelp(args[1], os.Stdout) {
			return nil
		}
		printGlobalHelp(os.Stdout)
		return nil
	}

	root, err := paths.ResolveRoot(rootFlag)
	if err != nil {
		return err
	}
	if debugFlag {
		if err := debuglog.Enable(paths.LogsDir(root)); err != nil {
			return err
		}
		defer func() { _ = debuglog.Close() }()
	}

	e := newEnv(root, noPrompt)
	if e.color {
		output.SetStepLogger(ui.NewRenderer(os.Stdout, e.theme, true))
	}

	ctx := context.Background()
	switch args[0] {
	case "init":
		return runInit(e, args[1:])
	case "project":
		return runProject(ctx, e, args[1:])
	case "new":
		return runNew(ctx, e, args[1:])
	case "rm":
		return runRemove(ctx, e, args[1:])
	case "ls":
		return runList(e, args[1:])
	case "status":
		return runStatus(ctx, e, args[1:])
	case "orphans":
		return runOrphans(e, args[1:])
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func newEnv(root string, noPrompt bool) *env {
	projects := project.NewStore(root)
	issues := issue.NewStore(root)
	manager := worktree.NewManager()
	return &env{
		root:     root,
		noPrompt: noPrompt,
		theme:    ui.DefaultTheme(),
		color:    isatty.IsTerminal(os.Stdout.Fd()),
		projects: projects,
		issues:   issues,
		orch:     issue.NewOrchestrator(root, projects, issues, manager, issue.Options{}),
	}
}

func envBool(name string) bool {
	switch os.Getenv(name) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func (e *env) renderer() *ui.Renderer {
	return ui.NewRenderer(os.Stdout, e.theme, e.color)
}

func (e *env) canPrompt() bool {
	return !e.noPrompt && isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

func isHelpArg(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
