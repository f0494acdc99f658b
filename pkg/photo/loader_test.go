package photo

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/bredd/photodirectory/pkg/errors"
	"github.com/bredd/photodirectory/pkg/metadata"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestIsJPEG(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a.jpg", true},
		{"a.JPG", true},
		{"a.jpeg", true},
		{"a.png", false},
		{"jpg", false},
		{"a.jpg.txt", false},
	}
	for _, tt := range tests {
		if got := IsJPEG(tt.name); got != tt.want {
			t.Errorf("IsJPEG(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.jpg", "a.JPG", "notes.txt", "c.jpeg")
	if err := os.Mkdir(filepath.Join(dir, "nested.jpg"), 0o755); err != nil {
		t.Fatal(err)
	}

	l := &Loader{
		Reader: metadata.Static{
			"a.JPG":  {Title: " Ann ", Tags: []string{"Unit", "1"}},
			"b.jpg":  {Title: "Bob"},
			"c.jpeg": {Tags: []string{"Unit 2"}},
		},
		Logger: log.New(&bytes.Buffer{}),
	}

	photos, err := l.Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []Photo{
		{Filename: filepath.Join(dir, "a.JPG"), Title: "Ann", Tags: "Unit 1"},
		{Filename: filepath.Join(dir, "b.jpg"), Title: "Bob", Tags: ""},
		{Filename: filepath.Join(dir, "c.jpeg"), Title: "", Tags: "Unit 2"},
	}
	if len(photos) != len(want) {
		t.Fatalf("Load() returned %d photos, want %d: %v", len(photos), len(want), photos)
	}
	for i := range want {
		if photos[i] != want[i] {
			t.Errorf("photo %d = %+v, want %+v", i, photos[i], want[i])
		}
	}
}

func TestLoaderSymlinks(t *testing.T) {
	store := t.TempDir()
	dir := t.TempDir()
	touch(t, store, "ann.jpg")
	if err := os.Mkdir(filepath.Join(store, "album"), 0o755); err != nil {
		t.Fatal(err)
	}

	links := map[string]string{
		"ann.jpg":     filepath.Join(store, "ann.jpg"),
		"album.jpg":   filepath.Join(store, "album"),
		"missing.jpg": filepath.Join(store, "missing.jpg"),
	}
	for name, target := range links {
		if err := os.Symlink(target, filepath.Join(dir, name)); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}
	}

	l := &Loader{
		Reader: metadata.Static{"ann.jpg": {Title: "Ann"}},
		Logger: log.New(&bytes.Buffer{}),
	}
	photos, err := l.Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(photos) != 1 {
		t.Fatalf("Load() returned %d photos, want 1: %v", len(photos), photos)
	}
	if photos[0].Title != "Ann" || photos[0].Filename != filepath.Join(dir, "ann.jpg") {
		t.Errorf("photo = %+v, want Ann at the link path", photos[0])
	}
}

func TestLoaderMetadataFailure(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.jpg", "b.jpg")
	boom := stderrors.New("locked")
	reader := metadata.Static{"a.jpg": {Err: boom}, "b.jpg": {Title: "Bob"}}

	t.Run("fatal by default", func(t *testing.T) {
		l := &Loader{Reader: reader, Logger: log.New(&bytes.Buffer{})}
		_, err := l.Load(context.Background(), dir)
		if !errors.Is(err, errors.ErrCodeMetadata) {
			t.Fatalf("Load() error = %v, want %s", err, errors.ErrCodeMetadata)
		}
		if !stderrors.Is(err, boom) {
			t.Errorf("Load() error should wrap the reader error")
		}
	})

	t.Run("skip unreadable", func(t *testing.T) {
		var logs bytes.Buffer
		l := &Loader{Reader: reader, Logger: log.New(&logs), SkipUnreadable: true}
		photos, err := l.Load(context.Background(), dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(photos) != 1 || photos[0].Title != "Bob" {
			t.Errorf("Load() = %v, want only Bob", photos)
		}
		if !bytes.Contains(logs.Bytes(), []byte("skipping photo")) {
			t.Errorf("expected a warning, got %q", logs.String())
		}
	})
}

func TestLoaderMissingDir(t *testing.T) {
	l := &Loader{Reader: metadata.Static{}}
	_, err := l.Load(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeIO)
	}
}

func TestLoaderCancelled(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.jpg")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := &Loader{Reader: metadata.Static{}}
	if _, err := l.Load(ctx, dir); !stderrors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}
