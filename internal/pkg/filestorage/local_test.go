package filestorage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "courses.csv"), []byte("a;b\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	ls, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	ctx := context.Background()

	rc, err := ls.Open(ctx, "courses.csv")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	body, _ := io.ReadAll(rc)
	rc.Close()
	if string(body) != "a;b\n" {
		t.Errorf("body = %q", body)
	}

	for _, name := range []string{"missing.csv", "../courses.csv", "nested/x.csv", ""} {
		if _, err := ls.Open(ctx, name); !errors.Is(err, ErrFileNotFound) {
			t.Errorf("Open(%q) = %v, want ErrFileNotFound", name, err)
		}
	}

	files, err := ls.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 1 || files[0].Name != "courses.csv" || files[0].FileSize != 4 {
		t.Errorf("files = %+v", files)
	}
}

func TestNewLocalStorageRequiresDirectory(t *testing.T) {
	if _, err := NewLocalStorage(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}
