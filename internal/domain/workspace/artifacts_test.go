package workspace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureIssueDirIsIdempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	first, err := EnsureIssueDir(root, "web-app", "SHOP-456")
	if err != nil {
		t.Fatalf("ensure issue dir: %v", err)
	}
	second, err := EnsureIssueDir(root, "web-app", "SHOP-456")
	if err != nil {
		t.Fatalf("ensure issue dir again: %v", err)
	}
	if first != second {
		t.Fatalf("paths differ: %q vs %q", first, second)
	}
	if info, err := os.Stat(first); err != nil || !info.IsDir() {
		t.Fatalf("issue dir missing: %v", err)
	}
}

func TestWriteDescriptor(t *testing.T) {
	t.Parallel()

	issueDir := t.TempDir()
	path, err := WriteDescriptor(issueDir, "SHOP-456", []RepoFolder{
		{Name: "frontend", Org: "acme"},
		{Name: "backend", Org: "acme"},
		{Name: "tools"},
	})
	if err != nil {
		t.Fatalf("write descriptor: %v", err)
	}
	if filepath.Base(path) != "SHOP-456.code-workspace" {
		t.Fatalf("descriptor file = %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read descriptor: %v", err)
	}
	var doc struct {
		Folders  []Folder       `json:"folders"`
		Settings map[string]any `json:"settings"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse descriptor: %v", err)
	}
	if doc.Settings == nil {
		t.Fatalf("settings object missing")
	}

	wantPaths := []string{".", "./acme/frontend", "./acme/backend", "./tools"}
	if len(doc.Folders) != len(wantPaths) {
		t.Fatalf("folders = %d, want %d", len(doc.Folders), len(wantPaths))
	}
	for i, want := range wantPaths {
		if doc.Folders[i].Path != want {
			t.Fatalf("folder[%d].path = %q, want %q", i, doc.Folders[i].Path, want)
		}
	}
	if !strings.Contains(doc.Folders[0].Name, "SHOP-456") {
		t.Fatalf("root folder name %q should mention the issue id", doc.Folders[0].Name)
	}
	if doc.Folders[1].Name != "acme/frontend" {
		t.Fatalf("folder name = %q, want relative path", doc.Folders[1].Name)
	}
}

func TestWriteDescriptorOverwrites(t *testing.T) {
	t.Parallel()

	issueDir := t.TempDir()
	if _, err := WriteDescriptor(issueDir, "SHOP-1", []RepoFolder{{Name: "a", Org: "x"}}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	path, err := WriteDescriptor(issueDir, "SHOP-1", []RepoFolder{{Name: "b", Org: "y"}})
	if err != nil {
		t.Fatalf("second write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read descriptor: %v", err)
	}
	if strings.Contains(string(data), "x/a") {
		t.Fatalf("descriptor was merged, not replaced: %s", data)
	}
}

func TestWriteContextNote(t *testing.T) {
	t.Parallel()

	issueDir := t.TempDir()
	path, err := WriteContextNote(issueDir, "SHOP-456", "Fix checkout", "Cart totals are wrong.")
	if err != nil {
		t.Fatalf("write context note: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read context note: %v", err)
	}
	text := string(data)
	for _, want := range []string{"SHOP-456", "Fix checkout", "Cart totals are wrong.", "workspace folders"} {
		if !strings.Contains(text, want) {
			t.Fatalf("context note missing %q:\n%s", want, text)
		}
	}

	// Optional fields omitted entirely.
	path, err = WriteContextNote(issueDir, "SHOP-457", "", "")
	if err != nil {
		t.Fatalf("write minimal note: %v", err)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("read minimal note: %v", err)
	}
	if !strings.Contains(string(data), "SHOP-457") {
		t.Fatalf("minimal note missing id:\n%s", data)
	}
}

func TestRemoveIssueDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir, err := EnsureIssueDir(root, "p", "I-1")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := RemoveIssueDir(dir); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("dir still present: %v", err)
	}
	if err := RemoveIssueDir(dir); err != nil {
		t.Fatalf("remove absent dir should be a no-op: %v", err)
	}
}
