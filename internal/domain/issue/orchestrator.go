package issue

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"iws/internal/domain/project"
	"iws/internal/domain/workspace"
	"iws/internal/domain/worktree"
	"iws/internal/infra/output"
	"iws/internal/infra/paths"
)

// Git is the slice of worktree.Manager the orchestrator needs. Tests inject
// fakes; production wires the real manager.
type Git interface {
	ValidateRepo(ctx context.Context, repoPath string) error
	Create(ctx context.Context, repoPath, worktreePath, branch, remote, baseBranch string) error
	Remove(ctx context.Context, repoPath, worktreePath string) error
	DeleteBranch(ctx context.Context, repoPath, branch string, force bool) error
	BranchExists(ctx context.Context, repoPath, branch string) bool
	WorktreeExists(ctx context.Context, repoPath, worktreePath string) bool
	BranchStatus(ctx context.Context, repoPath, branch, remote string) worktree.BranchStatus
	OrgFromRemote(ctx context.Context, repoPath, remote string) (string, error)
}

// Orchestrator composes the project store, issue store, git manager, and
// artifact writer into the create/delete/reconcile operations. Repositories
// are always processed strictly in the project's declared order, one at a
// time, so rollback bookkeeping stays exact.
type Orchestrator struct {
	root      string
	projects  *project.Store
	issues    *Store
	git       Git
	separator string
}

type Options struct {
	// TokenSeparator replaces whitespace in issue ids before branch-name
	// substitution. Defaults to "-".
	TokenSeparator string
}

func NewOrchestrator(root string, projects *project.Store, issues *Store, git Git, opts Options) *Orchestrator {
	sep := opts.TokenSeparator
	if sep == "" {
		sep = project.DefaultTokenSeparator
	}
	return &Orchestrator{
		root:      root,
		projects:  projects,
		issues:    issues,
		git:       git,
		separator: sep,
	}
}

type CreateOptions struct {
	Title       string
	Description string
}

type createdWorktree struct {
	repoPath     string
	worktreePath string
}

// Create sets up the issue workspace: one worktree plus feature branch per
// project repository, the workspace descriptor, the context note, and the
// persisted record. If any repository fails, everything created during this
// call is torn down again and no record is persisted.
//
// Create is idempotent at the orchestration level: an id already present in
// state is returned unchanged without re-verifying its worktrees, so a record
// whose worktrees were deleted externally stays stale until deletion or
// orphan cleanup.
func (o *Orchestrator) Create(ctx context.Context, projectID, issueID string, opts CreateOptions) (Issue, error) {
	proj, err := o.projects.Get(projectID)
	if err != nil {
		return Issue{}, err
	}

	if existing, err := o.issues.Get(projectID, issueID); err == nil {
		output.Logf("issue %s already exists, returning existing record", issueID)
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return Issue{}, err
	}

	issueDir, err := workspace.EnsureIssueDir(o.root, projectID, issueID)
	if err != nil {
		return Issue{}, err
	}

	branch := proj.BranchName(issueID, o.separator)

	var created []createdWorktree
	var repoStates []RepoState
	var folders []workspace.RepoFolder

	for _, repo := range proj.Repos {
		output.Stepf("setting up %s", repo.Name)

		org, orgErr := o.git.OrgFromRemote(ctx, repo.Path, repo.Remote)
		if orgErr != nil {
			output.Logf("cannot resolve organization for %s: %v", repo.Name, orgErr)
			org = ""
		}
		worktreePath := filepath.Join(issueDir, repo.Name)
		if org != "" {
			worktreePath = filepath.Join(issueDir, org, repo.Name)
		}

		if err := o.git.ValidateRepo(ctx, repo.Path); err != nil {
			return Issue{}, o.rollbackCreate(ctx, issueDir, created, err)
		}

		if o.git.WorktreeExists(ctx, repo.Path, worktreePath) && o.git.BranchExists(ctx, repo.Path, branch) {
			output.Logf("worktree and branch already present for %s", repo.Name)
		} else {
			if err := o.git.Create(ctx, repo.Path, worktreePath, branch, repo.Remote, repo.DefaultBranch); err != nil {
				return Issue{}, o.rollbackCreate(ctx, issueDir, created, err)
			}
			created = append(created, createdWorktree{repoPath: repo.Path, worktreePath: worktreePath})
		}

		status := o.git.BranchStatus(ctx, repo.Path, branch, repo.Remote)
		repoStates = append(repoStates, RepoState{
			Name:          repo.Name,
			Branch:        branch,
			WorktreePath:  worktreePath,
			BranchCreated: status.Created,
			BranchPushed:  status.Pushed,
		})
		folders = append(folders, workspace.RepoFolder{Name: repo.Name, Org: org})
	}

	if _, err := workspace.WriteDescriptor(issueDir, issueID, folders); err != nil {
		return Issue{}, o.rollbackCreate(ctx, issueDir, created, err)
	}
	if _, err := workspace.WriteContextNote(issueDir, issueID, opts.Title, opts.Description); err != nil {
		return Issue{}, o.rollbackCreate(ctx, issueDir, created, err)
	}

	now := nowUTC()
	record := Issue{
		ID:           issueID,
		ProjectID:    projectID,
		Title:        opts.Title,
		Description:  opts.Description,
		Status:       StatusActive,
		WorkspaceDir: issueDir,
		Repos:        repoStates,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := o.issues.Save(projectID, record); err != nil {
		return Issue{}, o.rollbackCreate(ctx, issueDir, created, err)
	}
	return record, nil
}

// rollbackCreate tears down every worktree created during this invocation
// and removes the issue directory, then hands back the original error.
// Rollback failures are logged and never mask it.
func (o *Orchestrator) rollbackCreate(ctx context.Context, issueDir string, created []createdWorktree, cause error) error {
	output.Stepf("rolling back after failure: %v", cause)
	for _, wt := range created {
		if err := o.git.Remove(ctx, wt.repoPath, wt.worktreePath); err != nil {
			output.Logf("rollback: remove worktree %s: %v", wt.worktreePath, err)
		}
	}
	if err := workspace.RemoveIssueDir(issueDir); err != nil {
		output.Logf("rollback: %v", err)
	}
	return cause
}

type DeleteOptions struct {
	DeleteBranches bool
}

// CleanupResult reports the outcome of one best-effort cleanup action during
// deletion.
type CleanupResult struct {
	Repo string
	Op   string
	Err  error
}

// Delete tears an issue down. Per-repository cleanup is best-effort: each
// failure is recorded and the loop continues, and the workspace directory and
// state record are removed no matter what. Once deletion is requested, stale
// state is worse than stale worktrees.
func (o *Orchestrator) Delete(ctx context.Context, projectID, issueID string, opts DeleteOptions) ([]CleanupResult, error) {
	record, err := o.issues.Get(projectID, issueID)
	if err != nil {
		return nil, err
	}
	proj, err := o.projects.Get(projectID)
	if err != nil {
		return nil, err
	}

	var results []CleanupResult
	for _, rs := range record.Repos {
		repo, ok := proj.Repo(rs.Name)
		if !ok {
			output.Logf("repository %s no longer in project, skipping", rs.Name)
			continue
		}

		if o.git.WorktreeExists(ctx, repo.Path, rs.WorktreePath) {
			output.Stepf("removing worktree for %s", rs.Name)
			result := CleanupResult{Repo: rs.Name, Op: "remove worktree"}
			if err := o.git.Remove(ctx, repo.Path, rs.WorktreePath); err != nil {
				result.Err = err
				output.Logf("remove worktree %s: %v", rs.WorktreePath, err)
			}
			results = append(results, result)
		}

		if opts.DeleteBranches && o.git.BranchExists(ctx, repo.Path, rs.Branch) {
			output.Stepf("deleting branch %s in %s", rs.Branch, rs.Name)
			result := CleanupResult{Repo: rs.Name, Op: "delete branch"}
			if err := o.git.DeleteBranch(ctx, repo.Path, rs.Branch, true); err != nil {
				result.Err = err
				output.Logf("delete branch %s: %v", rs.Branch, err)
			}
			results = append(results, result)
		}
	}

	if err := workspace.RemoveIssueDir(record.WorkspaceDir); err != nil {
		results = append(results, CleanupResult{Op: "remove workspace dir", Err: err})
		output.Logf("%v", err)
	}
	if err := o.issues.Delete(projectID, issueID); err != nil {
		return results, err
	}
	return results, nil
}

// FindOrphans returns the names of directories under the project's workspace
// root that no issue record claims. Files are ignored. State warnings are
// logged before any directory is classified, since a corrupt state file makes
// every workspace look unclaimed.
func (o *Orchestrator) FindOrphans(projectID string) ([]string, error) {
	issues, warnings, err := o.issues.Load(projectID)
	if err != nil {
		return nil, err
	}
	for _, warn := range warnings {
		output.Logf("%v", warn)
	}
	known := make(map[string]struct{}, len(issues))
	for _, issue := range issues {
		known[issue.ID] = struct{}{}
	}

	entries, err := os.ReadDir(paths.ProjectWorkspaceDir(o.root, projectID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read workspace dir: %w", err)
	}

	var orphans []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, ok := known[entry.Name()]; !ok {
			orphans = append(orphans, entry.Name())
		}
	}
	return orphans, nil
}

// CleanupOrphans removes each orphaned directory wholesale and returns the
// count removed. Orphans have no repository mapping in state, so no git
// cleanup is attempted.
func (o *Orchestrator) CleanupOrphans(projectID string) (int, error) {
	orphans, err := o.FindOrphans(projectID)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, name := range orphans {
		dir := paths.IssueDir(o.root, projectID, name)
		if err := os.RemoveAll(dir); err != nil {
			return removed, fmt.Errorf("remove orphan %q: %w", name, err)
		}
		output.Stepf("removed orphan %s", name)
		removed++
	}
	return removed, nil
}

// RefreshStatus re-queries branch existence and push state for every
// repository of the issue and persists the refreshed flags.
func (o *Orchestrator) RefreshStatus(ctx context.Context, projectID, issueID string) (Issue, error) {
	record, err := o.issues.Get(projectID, issueID)
	if err != nil {
		return Issue{}, err
	}
	proj, err := o.projects.Get(projectID)
	if err != nil {
		return Issue{}, err
	}

	for i, rs := range record.Repos {
		repo, ok := proj.Repo(rs.Name)
		if !ok {
			continue
		}
		status := o.git.BranchStatus(ctx, repo.Path, rs.Branch, repo.Remote)
		record.Repos[i].BranchCreated = status.Created
		record.Repos[i].BranchPushed = status.Pushed
	}
	if err := o.issues.Save(projectID, record); err != nil {
		return Issue{}, err
	}
	return o.issues.Get(projectID, issueID)
}
