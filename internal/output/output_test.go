package output

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"mediapress/internal/fileutil"
	"mediapress/internal/media"
	"mediapress/internal/services"
)

func TestMapRewritesExtensionAndMirrorsTree(t *testing.T) {
	fsys := afero.NewMemMapFs()
	mapper := NewMapper(fsys, "/work/compress")

	tests := []struct {
		rel  string
		kind media.Kind
		want string
	}{
		{"a.jpeg", media.RGBImage, "/work/compress/a.jpg"},
		{"photos/2024/b.JPG", media.RGBImage, "/work/compress/photos/2024/b.jpg"},
		{"icons/c.PNG", media.RGBAImage, "/work/compress/icons/c.png"},
		{"clips/d.mov", media.Video, "/work/compress/clips/d.mp4"},
		{"clips/e.tar.mkv", media.Video, "/work/compress/clips/e.tar.mp4"},
	}
	for _, tt := range tests {
		target, err := mapper.Map(tt.rel, tt.kind)
		if err != nil {
			t.Fatalf("Map(%q): %v", tt.rel, err)
		}
		if target.Path != tt.want {
			t.Fatalf("Map(%q) = %q, want %q", tt.rel, target.Path, tt.want)
		}
		if !fileutil.Within(mapper.Root(), target.Path) {
			t.Fatalf("%q escaped output root", target.Path)
		}
		info, err := fsys.Stat(filepath.Dir(target.Path))
		if err != nil || !info.IsDir() {
			t.Fatalf("parent of %q not created: %v", target.Path, err)
		}
	}
}

func TestMapIsIdempotent(t *testing.T) {
	mapper := NewMapper(afero.NewMemMapFs(), "/out")
	first, err := mapper.Map("a/b.png", media.RGBAImage)
	if err != nil {
		t.Fatal(err)
	}
	second, err := mapper.Map("a/b.png", media.RGBAImage)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("expected stable mapping, got %v and %v", first, second)
	}
}

func TestMapRejectsUnsupportedAndEscapingPaths(t *testing.T) {
	mapper := NewMapper(afero.NewMemMapFs(), "/out")
	if _, err := mapper.Map("notes.txt", media.Unsupported); !errors.Is(err, services.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	for _, rel := range []string{"../x.jpg", "/abs/x.jpg", "a/../../x.jpg"} {
		if _, err := mapper.Map(rel, media.RGBImage); !errors.Is(err, services.ErrPath) {
			t.Fatalf("Map(%q): expected ErrPath, got %v", rel, err)
		}
	}
}

func TestMapReportsDirectoryFailure(t *testing.T) {
	mapper := NewMapper(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/out")
	if _, err := mapper.Map("a/b.jpg", media.RGBImage); !errors.Is(err, services.ErrFileSystem) {
		t.Fatalf("expected ErrFileSystem, got %v", err)
	}
}

func TestShouldSkip(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/out/dir.jpg", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, "/out/done.jpg", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		path  string
		force bool
		want  bool
	}{
		{"existing file", "/out/done.jpg", false, true},
		{"existing file forced", "/out/done.jpg", true, false},
		{"missing file", "/out/new.jpg", false, false},
		{"directory at target", "/out/dir.jpg", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldSkip(fsys, Target{Path: tt.path, Kind: media.RGBImage}, tt.force)
			if got != tt.want {
				t.Fatalf("ShouldSkip = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnsureRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	mapper := NewMapper(fsys, "/a/b/c")
	if err := mapper.EnsureRoot(); err != nil {
		t.Fatal(err)
	}
	if err := mapper.EnsureRoot(); err != nil {
		t.Fatalf("second EnsureRoot: %v", err)
	}
	if ok, _ := afero.DirExists(fsys, "/a/b/c"); !ok {
		t.Fatal("root not created")
	}
}
