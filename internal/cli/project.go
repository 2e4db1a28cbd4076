package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"iws/internal/domain/project"
	"iws/internal/domain/worktree"
)

func runProject(ctx context.Context, e *env, args []string) error {
	if len(args) == 0 || isHelpArg(args[0]) {
		printCommandHelp("project", os.Stdout)
		return nil
	}
	switch args[0] {
	case "add":
		return runProjectAdd(ctx, e, args[1:])
	case "ls":
		return runProjectList(e, args[1:])
	case "rm":
		return runProjectRemove(e, args[1:])
	default:
		return fmt.Errorf("unknown project subcommand: %s", args[0])
	}
}

// repoFlags collects repeated --repo values of the form
// name=path[,branch=NAME][,remote=NAME].
type repoFlags []project.Repository

func (r *repoFlags) String() string { return fmt.Sprintf("%d repos", len(*r)) }

func (r *repoFlags) Set(value string) error {
	parts := strings.Split(value, ",")
	head := strings.SplitN(parts[0], "=", 2)
	if len(head) != 2 || strings.TrimSpace(head[0]) == "" || strings.TrimSpace(head[1]) == "" {
		return fmt.Errorf("repo must be name=path[,branch=NAME][,remote=NAME]: %q", value)
	}
	repo := project.Repository{Name: strings.TrimSpace(head[0]), Path: strings.TrimSpace(head[1])}
	for _, part := range parts[1:] {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return fmt.Errorf("invalid repo option %q", part)
		}
		switch strings.TrimSpace(kv[0]) {
		case "branch":
			repo.DefaultBranch = strings.TrimSpace(kv[1])
		case "remote":
			repo.Remote = strings.TrimSpace(kv[1])
		default:
			return fmt.Errorf("unknown repo option %q", kv[0])
		}
	}
	*r = append(*r, repo)
	return nil
}

func runProjectAdd(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("project add", flag.ContinueOnError)
	var name, description, branchNaming string
	var repos repoFlags
	fs.StringVar(&name, "name", "", "display name")
	fs.StringVar(&description, "description", "", "description")
	fs.StringVar(&branchNaming, "branch-naming", "", "branch naming pattern, must contain {issue_id}")
	fs.Var(&repos, "repo", "repository as name=path[,branch=NAME][,remote=NAME] (repeatable)")
	fs.SetOutput(os.Stdout)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: iws project add <id> --name NAME --repo name=path [--repo ...]")
	}
	id := fs.Arg(0)
	if name == "" {
		name = id
	}

	p := project.Project{
		ID:           id,
		Name:         name,
		Description:  description,
		Repos:        []project.Repository(repos),
		BranchNaming: branchNaming,
	}
	p.Normalize()

	manager := worktree.NewManager()
	for i := range p.Repos {
		abs, err := filepath.Abs(p.Repos[i].Path)
		if err != nil {
			return fmt.Errorf("repository %q: %w", p.Repos[i].Name, err)
		}
		p.Repos[i].Path = abs
		if err := manager.ValidateRepo(ctx, abs); err != nil {
			return err
		}
	}

	if err := e.projects.Save(p); err != nil {
		return err
	}

	r := e.renderer()
	r.Section("Result")
	r.BulletSuccess(fmt.Sprintf("saved project %s (%d repositories)", id, len(p.Repos)))
	return nil
}

func runProjectList(e *env, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: iws project ls")
	}
	projects, warnings, err := e.projects.List()
	if err != nil {
		return err
	}
	warnAll(e, warnings)

	r := e.renderer()
	r.Section("Projects")
	if len(projects) == 0 {
		r.Bullet("none")
		return nil
	}
	for _, p := range projects {
		r.BulletWithDescription(p.ID, p.Name, fmt.Sprintf("(%d repos)", len(p.Repos)))
	}
	return nil
}

func runProjectRemove(e *env, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: iws project rm <id>")
	}
	if err := e.projects.Delete(args[0]); err != nil {
		return err
	}
	r := e.renderer()
	r.Section("Result")
	r.BulletSuccess(fmt.Sprintf("removed project %s", args[0]))
	return nil
}
