package directory

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/bredd/photodirectory/pkg/errors"
	"github.com/bredd/photodirectory/pkg/metadata"
)

// fakeResizer copies the source file name into dst and records every call.
type fakeResizer struct {
	calls []string
}

func (f *fakeResizer) Resize(ctx context.Context, src, dst string) (bool, error) {
	f.calls = append(f.calls, filepath.Base(dst))
	return false, os.WriteFile(dst, []byte(filepath.Base(src)), 0o644)
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: log.ErrorLevel})
}

// sourceDir creates one empty JPEG per entry and returns the folder and a
// Static reader over the entries.
func sourceDir(t *testing.T, entries map[string]metadata.Entry) (string, metadata.Static) {
	t.Helper()
	dir := t.TempDir()
	for name := range entries {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir, metadata.Static(entries)
}

// tenUnits is ten photos titled A1..A10 sharing one tag.
func tenUnits() map[string]metadata.Entry {
	entries := make(map[string]metadata.Entry)
	for i := 1; i <= 10; i++ {
		entries[fmt.Sprintf("p%02d.jpg", i)] = metadata.Entry{
			Title: fmt.Sprintf("A%d", i),
			Tags:  []string{"Unit5"},
		}
	}
	return entries
}

func run(t *testing.T, reader metadata.Reader, opts Options) (*Result, *fakeResizer, error) {
	t.Helper()
	resizer := &fakeResizer{}
	r := NewRunner(reader, resizer, quietLogger())
	res, err := r.Execute(context.Background(), opts)
	return res, resizer, err
}

func TestExecuteTenPhotos(t *testing.T) {
	src, reader := sourceDir(t, tenUnits())
	dst := filepath.Join(t.TempDir(), "out")

	res, resizer, err := run(t, reader, Options{Source: src, Destination: dst, Title: "Residents"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.GridPages != 2 {
		t.Errorf("GridPages = %d, want 2", res.Stats.GridPages)
	}
	if res.Stats.Pages != 3 {
		t.Errorf("Pages = %d, want 3", res.Stats.Pages)
	}
	if res.Stats.Groups != 1 || res.Stats.Columns != 1 {
		t.Errorf("Groups, Columns = %d, %d, want 1, 1", res.Stats.Groups, res.Stats.Columns)
	}
	if res.Stats.Resized != 10 || len(resizer.calls) != 10 {
		t.Errorf("Resized = %d, calls = %d, want 10", res.Stats.Resized, len(resizer.calls))
	}

	entries, err := os.ReadDir(dst)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 11 {
		t.Errorf("destination has %d files, want 11", len(entries))
	}

	html, err := os.ReadFile(res.Output)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(res.Output) != DefaultOutputName {
		t.Errorf("Output = %s", res.Output)
	}
	if n := strings.Count(string(html), "<div class='aptcol'>"); n != 1 {
		t.Errorf("group columns = %d, want 1", n)
	}
	if n := strings.Count(string(html), "<div class='name'>"); n != 10 {
		t.Errorf("group members = %d, want 10", n)
	}
	if !strings.Contains(string(html), "<span class='pagenumber'>3</span>") {
		t.Error("grouped page should be page 3")
	}
}

func TestExecuteIdempotent(t *testing.T) {
	src, reader := sourceDir(t, tenUnits())
	root := t.TempDir()

	first, _, err := run(t, reader, Options{Source: src, Destination: filepath.Join(root, "a")})
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := run(t, reader, Options{Source: src, Destination: filepath.Join(root, "b")})
	if err != nil {
		t.Fatal(err)
	}

	a, _ := os.ReadFile(first.Output)
	b, _ := os.ReadFile(second.Output)
	if !bytes.Equal(a, b) {
		t.Error("two runs on the same source produced different HTML")
	}
}

func TestExecuteClearsDestination(t *testing.T) {
	src, reader := sourceDir(t, tenUnits())
	dst := t.TempDir()
	stale := filepath.Join(dst, "stale.jpg")
	kept := filepath.Join(dst, "sub", "keep.txt")
	if err := os.WriteFile(stale, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(kept), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(kept, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	res, _, err := run(t, reader, Options{Source: src, Destination: dst})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Cleared != 1 {
		t.Errorf("Cleared = %d, want 1", res.Stats.Cleared)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file should be deleted")
	}
	if _, err := os.Stat(kept); err != nil {
		t.Error("files in subfolders should be kept")
	}
}

func TestExecuteSymlinks(t *testing.T) {
	store := t.TempDir()
	if err := os.WriteFile(filepath.Join(store, "ann.jpg"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	outside := filepath.Join(store, "outside.txt")
	if err := os.WriteFile(outside, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	src := t.TempDir()
	dst := t.TempDir()
	if err := os.Symlink(filepath.Join(store, "ann.jpg"), filepath.Join(src, "ann.jpg")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	link := filepath.Join(dst, "old.txt")
	if err := os.Symlink(outside, link); err != nil {
		t.Fatal(err)
	}

	reader := metadata.Static{"ann.jpg": {Title: "Ann", Tags: []string{"Unit 1"}}}
	res, resizer, err := run(t, reader, Options{Source: src, Destination: dst})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Photos != 1 || len(resizer.calls) != 1 {
		t.Errorf("photos = %d, resized = %d, want 1 and 1", res.Stats.Photos, len(resizer.calls))
	}
	if res.Stats.Cleared != 1 {
		t.Errorf("Cleared = %d, want 1", res.Stats.Cleared)
	}
	if _, err := os.Lstat(link); !os.IsNotExist(err) {
		t.Error("linked file in destination should be deleted")
	}
	if _, err := os.Stat(outside); err != nil {
		t.Error("link target should be kept")
	}
}

func TestExecuteDestinationParentOfSource(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "portraits")
	if err := os.Mkdir(src, 0o755); err != nil {
		t.Fatal(err)
	}
	reader := metadata.Static{}
	for name, e := range tenUnits() {
		if err := os.WriteFile(filepath.Join(src, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
		reader[name] = e
	}
	if err := os.WriteFile(filepath.Join(root, "stale.html"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	res, _, err := run(t, reader, Options{Source: src, Destination: root})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Stats.Photos != 10 {
		t.Errorf("Photos = %d, want 10", res.Stats.Photos)
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 10 {
		t.Errorf("source holds %d files after the run, want 10", len(entries))
	}
	if _, err := os.Stat(filepath.Join(root, "stale.html")); !os.IsNotExist(err) {
		t.Error("stale file in destination should be deleted")
	}
	if _, err := os.Stat(res.Output); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestExecuteConfirmDeclined(t *testing.T) {
	src, reader := sourceDir(t, tenUnits())
	dst := t.TempDir()
	stale := filepath.Join(dst, "stale.jpg")
	if err := os.WriteFile(stale, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var asked []string
	_, resizer, err := run(t, reader, Options{
		Source:      src,
		Destination: dst,
		ConfirmClear: func(dir string, files []string) (bool, error) {
			asked = files
			return false, nil
		},
	})
	if !errors.Is(err, errors.ErrCodeAborted) {
		t.Fatalf("error = %v, want ABORTED", err)
	}
	if len(asked) != 1 || asked[0] != "stale.jpg" {
		t.Errorf("confirm asked about %v", asked)
	}
	if len(resizer.calls) != 0 {
		t.Error("no images should be written after an abort")
	}
	if _, err := os.Stat(stale); err != nil {
		t.Error("declined clear should keep existing files")
	}
}

func TestExecuteErrors(t *testing.T) {
	src, reader := sourceDir(t, tenUnits())

	tests := []struct {
		name string
		opts Options
		want errors.Code
	}{
		{"missing source", Options{Source: filepath.Join(src, "nope"), Destination: t.TempDir()}, errors.ErrCodeSourceNotFound},
		{"same folders", Options{Source: src, Destination: src}, errors.ErrCodeInvalidPath},
		{"no destination", Options{Source: src}, errors.ErrCodeInvalidArgs},
		{"bad reader", Options{Source: src, Destination: t.TempDir(), Reader: "magic"}, errors.ErrCodeInvalidInput},
		{"missing template", Options{Source: src, Destination: t.TempDir(), TemplateFile: filepath.Join(src, "t.toml")}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, reader, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestExecuteUnreadable(t *testing.T) {
	entries := tenUnits()
	entries["p03.jpg"] = metadata.Entry{Err: fmt.Errorf("corrupt")}
	src, reader := sourceDir(t, entries)

	_, _, err := run(t, reader, Options{Source: src, Destination: t.TempDir()})
	if !errors.Is(err, errors.ErrCodeMetadata) {
		t.Fatalf("error = %v, want METADATA", err)
	}

	res, _, err := run(t, reader, Options{Source: src, Destination: t.TempDir(), SkipUnreadable: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Photos != 9 {
		t.Errorf("Photos = %d, want 9", res.Stats.Photos)
	}
}

func TestExecuteCollisionFail(t *testing.T) {
	src, reader := sourceDir(t, map[string]metadata.Entry{
		"a.jpg": {Title: "Bob Smith"},
		"b.jpg": {Title: "Bob-Smith"},
	})

	_, _, err := run(t, reader, Options{Source: src, Destination: t.TempDir(), Collision: "fail"})
	if !errors.Is(err, errors.ErrCodeFilenameCollision) {
		t.Errorf("error = %v, want FILENAME_COLLISION", err)
	}

	res, resizer, err := run(t, reader, Options{Source: src, Destination: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(resizer.calls, ","); got != "BobSmith.jpg,BobSmith-2.jpg" {
		t.Errorf("images = %s", got)
	}
	if len(res.Images) != 2 {
		t.Errorf("Images = %v", res.Images)
	}
}

func TestExecuteNameList(t *testing.T) {
	src, reader := sourceDir(t, map[string]metadata.Entry{
		"a.jpg": {Title: "Zoe Adams", Tags: []string{"2B"}},
		"b.jpg": {Title: "Adam Young", Tags: []string{"1A"}},
	})

	res, _, err := run(t, reader, Options{
		Source:        src,
		Destination:   t.TempDir(),
		NameList:      true,
		NameListOrder: OrderLastName,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Pages != 3 {
		t.Errorf("Pages = %d, want 3", res.Stats.Pages)
	}

	html, _ := os.ReadFile(res.Output)
	s := string(html)
	first := strings.Index(s, "<span class='list-name'>Zoe Adams</span>")
	second := strings.Index(s, "<span class='list-name'>Adam Young</span>")
	if first < 0 || second < 0 || first > second {
		t.Error("name list should be ordered by last name")
	}
}

func TestExecuteCancelled(t *testing.T) {
	src, reader := sourceDir(t, tenUnits())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(reader, &fakeResizer{}, quietLogger())
	if _, err := r.Execute(ctx, Options{Source: src, Destination: t.TempDir()}); err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
