package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/rolodex/internal/checksum"
)

func tempStore(t *testing.T) *FS {
	t.Helper()
	s, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return s
}

func TestWriteAndRead(t *testing.T) {
	s := tempStore(t)
	content := []byte("---\nid: a\n---\nremark\n")
	if err := s.Write("a.md", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("a.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestDelete(t *testing.T) {
	s := tempStore(t)
	_ = s.Write("del.md", []byte("bye"))
	if err := s.Delete("del.md"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("del.md"); err == nil {
		t.Error("expected error reading deleted file")
	}
	if err := s.Delete("del.md"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("second Delete = %v, want ErrNotExist", err)
	}
}

func TestList(t *testing.T) {
	s := tempStore(t)
	_ = s.Write("b.md", []byte("b"))
	_ = s.Write("a.md", []byte("a"))
	_ = s.Write("readme.txt", []byte("not md"))
	_ = os.WriteFile(filepath.Join(s.Root(), ".hidden.md"), []byte("x"), 0o644)
	_ = os.Mkdir(filepath.Join(s.Root(), "sub.md"), 0o755)

	items, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var names, sums []string
	for _, it := range items {
		names = append(names, it.Name)
		sums = append(sums, it.Checksum)
	}
	if diff := cmp.Diff([]string{"a.md", "b.md"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{checksum.Sum([]byte("a")), checksum.Sum([]byte("b"))}, sums); diff != "" {
		t.Errorf("checksums mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidNamesRejected(t *testing.T) {
	s := tempStore(t)
	for _, name := range []string{"", ".", "..", "../outside.md", "/etc/shadow", "sub/a.md", `sub\a.md`} {
		if _, err := s.Read(name); err == nil {
			t.Errorf("expected error reading %q", name)
		}
		if err := s.Write(name, []byte("x")); err == nil {
			t.Errorf("expected error writing %q", name)
		}
		if err := s.Delete(name); err == nil {
			t.Errorf("expected error deleting %q", name)
		}
	}
}

func TestAtomicWriteLeavesNoTempFiles(t *testing.T) {
	s := tempStore(t)
	_ = s.Write("atomic.md", []byte("original content"))

	updated := []byte("updated content")
	if err := s.Write("atomic.md", updated); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("atomic.md")
	if string(got) != string(updated) {
		t.Errorf("expected updated content, got %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.root, tmpPattern))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFS_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "contacts")
	s, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	if info, err := os.Stat(s.Root()); err != nil || !info.IsDir() {
		t.Errorf("root not created: %v", err)
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "rolodex-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	if _, err := NewFS(f.Name()); err == nil {
		t.Error("expected error when root is a file")
	}
}

func TestIsContactFile(t *testing.T) {
	tests := map[string]bool{
		"a.md":                true,
		"/x/y/a.md":           true,
		".rolodex-tmp-123":    false,
		".rolodex-tmp-123.md": false,
		"a.txt":               false,
	}
	for name, want := range tests {
		if got := IsContactFile(name); got != want {
			t.Errorf("IsContactFile(%q) = %v, want %v", name, got, want)
		}
	}
}
