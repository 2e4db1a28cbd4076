package issue

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"iws/internal/infra/paths"
)

func writeStateFile(t *testing.T, root, projectID, content string) {
	t.Helper()
	if err := os.MkdirAll(paths.StateDir(root, projectID), 0o755); err != nil {
		t.Fatalf("create state dir: %v", err)
	}
	if err := os.WriteFile(paths.IssuesFile(root, projectID), []byte(content), 0o644); err != nil {
		t.Fatalf("write state file: %v", err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	in := Issue{
		ID:           "SHOP-456",
		ProjectID:    "web-app",
		Title:        "Fix checkout",
		Description:  "Cart totals are wrong.",
		Status:       StatusActive,
		WorkspaceDir: "/ws/web-app/SHOP-456",
		Repos: []RepoState{
			{Name: "frontend", Branch: "feature/SHOP-456", WorktreePath: "/ws/web-app/SHOP-456/acme/frontend", BranchCreated: true},
			{Name: "backend", Branch: "feature/SHOP-456", WorktreePath: "/ws/web-app/SHOP-456/acme/backend", BranchCreated: true, BranchPushed: true},
		},
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := store.Save("web-app", in); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get("web-app", "SHOP-456")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != in.Title || got.Description != in.Description || got.Status != in.Status {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.WorkspaceDir != in.WorkspaceDir || !got.CreatedAt.Equal(in.CreatedAt) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Repos) != 2 || got.Repos[0] != in.Repos[0] || got.Repos[1] != in.Repos[1] {
		t.Fatalf("repos mismatch: %+v", got.Repos)
	}
	if got.UpdatedAt.IsZero() {
		t.Fatalf("UpdatedAt not refreshed on save")
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	issues, warnings, err := store.Load("web-app")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(issues) != 0 || len(warnings) != 0 {
		t.Fatalf("expected empty state, got %d issues, %d warnings", len(issues), len(warnings))
	}
}

func TestLoadCorruptFileDegradesToEmpty(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeStateFile(t, root, "web-app", "{not json")

	store := NewStore(root)
	issues, warnings, err := store.Load("web-app")
	if err != nil {
		t.Fatalf("corrupt state must not error: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("issues = %d, want 0", len(issues))
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warnings))
	}
}

func TestLoadNormalizesLegacyShapes(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeStateFile(t, root, "web-app", `{
  "issues": [
    {
      "id": "OLD-1",
      "project_id": "web-app",
      "workspace": {"path": "/ws/web-app/OLD-1"},
      "repositories": [
        {"name": "frontend", "branch": "feature/OLD-1", "worktreePath": "/ws/web-app/OLD-1/acme/frontend"}
      ],
      "createdAt": "2026-01-05T10:00:00Z"
    },
    {
      "title": "record without id is dropped"
    },
    {
      "id": "NEW-2",
      "projectId": "web-app",
      "workspaceDir": "/ws/web-app/NEW-2",
      "status": "pr_created",
      "repos": [],
      "createdAt": "2026-02-05T10:00:00Z"
    }
  ]
}`)

	store := NewStore(root)
	issues, warnings, err := store.Load("web-app")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, want 1 for dropped record", len(warnings))
	}
	if len(issues) != 2 {
		t.Fatalf("issues = %d, want 2", len(issues))
	}

	byID := map[string]Issue{}
	for _, issue := range issues {
		byID[issue.ID] = issue
	}
	old := byID["OLD-1"]
	if old.ProjectID != "web-app" {
		t.Fatalf("legacy project_id not mapped: %+v", old)
	}
	if old.WorkspaceDir != "/ws/web-app/OLD-1" {
		t.Fatalf("legacy workspace.path not mapped: %+v", old)
	}
	if len(old.Repos) != 1 || old.Repos[0].Name != "frontend" {
		t.Fatalf("legacy repositories not mapped: %+v", old.Repos)
	}
	if old.Status != StatusActive {
		t.Fatalf("missing status should default to active, got %q", old.Status)
	}
	if byID["NEW-2"].Status != StatusPRCreated {
		t.Fatalf("canonical record altered: %+v", byID["NEW-2"])
	}
}

func TestSaveRewritesLegacyShapeCanonically(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeStateFile(t, root, "web-app", `{
  "issues": [
    {"id": "OLD-1", "project_id": "web-app", "workspace": {"path": "/ws/OLD-1"}, "repositories": []}
  ]
}`)

	store := NewStore(root)
	old, err := store.Get("web-app", "OLD-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := store.Save("web-app", old); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(paths.IssuesFile(root, "web-app"))
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	text := string(data)
	if strings.Contains(text, "project_id") || strings.Contains(text, "repositories") {
		t.Fatalf("legacy field names leaked into rewrite:\n%s", text)
	}
	if !strings.Contains(text, "workspaceDir") {
		t.Fatalf("canonical field missing:\n%s", text)
	}
}

func TestSaveReplacesByID(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"A-1", "A-2", "A-3"} {
		err := store.Save("p", Issue{ID: id, ProjectID: "p", Status: StatusActive, CreatedAt: base.Add(time.Duration(i) * time.Hour)})
		if err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	updated := Issue{ID: "A-2", ProjectID: "p", Status: StatusMerged, CreatedAt: base.Add(time.Hour)}
	if err := store.Save("p", updated); err != nil {
		t.Fatalf("save update: %v", err)
	}

	issues, _, err := store.Load("p")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(issues) != 3 {
		t.Fatalf("issues = %d, want 3 (replace, not append)", len(issues))
	}
	got, err := store.Get("p", "A-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusMerged {
		t.Fatalf("status = %q, want merged", got.Status)
	}
}

func TestWriteSortsNewestFirst(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"OLDEST", "MIDDLE", "NEWEST"} {
		err := store.Save("p", Issue{ID: id, ProjectID: "p", Status: StatusActive, CreatedAt: base.Add(time.Duration(i) * time.Hour)})
		if err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	data, err := os.ReadFile(paths.IssuesFile(root, "p"))
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	var file struct {
		Issues []struct {
			ID string `json:"id"`
		} `json:"issues"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		t.Fatalf("parse state: %v", err)
	}
	var order []string
	for _, rec := range file.Issues {
		order = append(order, rec.ID)
	}
	want := []string{"NEWEST", "MIDDLE", "OLDEST"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("persisted order = %v, want %v", order, want)
		}
	}
}

func TestDeleteFiltersOut(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	if err := store.Save("p", Issue{ID: "A-1", ProjectID: "p", Status: StatusActive}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save("p", Issue{ID: "A-2", ProjectID: "p", Status: StatusActive}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete("p", "A-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get("p", "A-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := store.Get("p", "A-2"); err != nil {
		t.Fatalf("unrelated issue lost: %v", err)
	}

	// Deleting an unknown id is a no-op.
	if err := store.Delete("p", "A-9"); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
}

func TestDeleteWithoutStateWritesNothing(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	if err := store.Delete("p", "A-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(paths.IssuesFile(root, "p")); !os.IsNotExist(err) {
		t.Fatalf("no-op delete must not create a state file, stat err = %v", err)
	}
}

func TestUpdateStatusRefreshesTimestamp(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	if err := store.Save("p", Issue{ID: "A-1", ProjectID: "p", Status: StatusActive}); err != nil {
		t.Fatalf("save: %v", err)
	}
	before, err := store.Get("p", "A-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	after, err := store.UpdateStatus("p", "A-1", StatusPRCreated)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if after.Status != StatusPRCreated {
		t.Fatalf("status = %q, want pr_created", after.Status)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("UpdatedAt not refreshed: %v -> %v", before.UpdatedAt, after.UpdatedAt)
	}
}
