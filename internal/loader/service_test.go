package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoad tests loading Go files from search directories
func TestLoad(t *testing.T) {
	t.Run("loads basic directory", func(t *testing.T) {
		// Arrange
		tmpDir := t.TempDir()
		writeSource(t, tmpDir, "user.go", "package models\n\ntype User struct {\n\tID int\n}\n")
		writeSource(t, tmpDir, "pet.go", "package models\n\ntype Pet struct {\n\tName string\n}\n")
		service := NewService()

		// Act
		set, err := service.Load([]string{tmpDir})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if set == nil {
			t.Fatal("expected set, got nil")
		}
		if set.Len() != 2 {
			t.Errorf("expected 2 files, got %d", set.Len())
		}
		if !set.HasType("User") || !set.HasType("Pet") {
			t.Error("expected both declared types to be visible")
		}
	})

	t.Run("orders files by path within a directory", func(t *testing.T) {
		// Arrange
		tmpDir := t.TempDir()
		writeSource(t, tmpDir, "zebra.go", "package models\n\ntype Zebra struct{}\n")
		writeSource(t, tmpDir, "alpha.go", "package models\n\ntype Alpha struct{}\n")
		service := NewService(WithConcurrency(4))

		// Act
		set, err := service.Load([]string{tmpDir})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		files := set.Files()
		if len(files) != 2 {
			t.Fatalf("expected 2 files, got %d", len(files))
		}
		if filepath.Base(files[0].Path) != "alpha.go" {
			t.Errorf("expected alpha.go first, got %s", files[0].Path)
		}
	})

	t.Run("keeps search directory order ahead of path order", func(t *testing.T) {
		// Arrange
		dirB := t.TempDir()
		dirA := t.TempDir()
		writeSource(t, dirB, "b.go", "package b\n\ntype Shared struct {\n\tFromB string\n}\n")
		writeSource(t, dirA, "a.go", "package a\n\ntype Shared struct {\n\tFromA string\n}\n")
		service := NewService()

		// Act
		set, err := service.Load([]string{dirB, dirA})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		files := set.Files()
		if len(files) != 2 {
			t.Fatalf("expected 2 files, got %d", len(files))
		}
		if filepath.Base(files[0].Path) != "b.go" {
			t.Errorf("expected first search dir to load first, got %s", files[0].Path)
		}
	})

	t.Run("skips unreadable sources with a warning", func(t *testing.T) {
		// Arrange
		tmpDir := t.TempDir()
		writeSource(t, tmpDir, "good.go", "package models\n\ntype Good struct{}\n")
		writeSource(t, tmpDir, "broken.go", "package models\n\ntype Broken struct {\n")
		service := NewService()

		// Act
		set, err := service.Load([]string{tmpDir})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if set.Len() != 1 {
			t.Errorf("expected broken source to be skipped, got %d files", set.Len())
		}
		if !set.HasType("Good") {
			t.Error("expected remaining source to still resolve")
		}
	})

	t.Run("handles non-existent directory", func(t *testing.T) {
		// Arrange
		service := NewService()

		// Act
		_, err := service.Load([]string{"/non/existent/path"})

		// Assert
		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})
}

// TestExcludePatterns tests vendor and exclusion logic
func TestExcludePatterns(t *testing.T) {
	t.Run("excludes vendor by default", func(t *testing.T) {
		// Arrange
		tmpDir := t.TempDir()
		writeSource(t, tmpDir, "app.go", "package app\n\ntype App struct{}\n")
		writeSource(t, filepath.Join(tmpDir, "vendor"), "dep.go", "package dep\n\ntype Dep struct{}\n")
		service := NewService(WithParseVendor(false))

		// Act
		set, err := service.Load([]string{tmpDir})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if set.HasType("Dep") {
			t.Error("vendor directory should be excluded")
		}
	})

	t.Run("includes vendor when configured", func(t *testing.T) {
		// Arrange
		tmpDir := t.TempDir()
		writeSource(t, filepath.Join(tmpDir, "vendor"), "dep.go", "package dep\n\ntype Dep struct{}\n")
		service := NewService(WithParseVendor(true))

		// Act
		set, err := service.Load([]string{tmpDir})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !set.HasType("Dep") {
			t.Error("vendor should be parsed when enabled")
		}
	})

	t.Run("respects exact exclude paths", func(t *testing.T) {
		// Arrange
		tmpDir := t.TempDir()
		excludeDir := filepath.Join(tmpDir, "excluded")
		writeSource(t, tmpDir, "app.go", "package app\n\ntype App struct{}\n")
		writeSource(t, excludeDir, "skip.go", "package skip\n\ntype Skipped struct{}\n")
		service := NewService(WithExcludes([]string{excludeDir}))

		// Act
		set, err := service.Load([]string{tmpDir})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if set.HasType("Skipped") {
			t.Error("excluded directory should be skipped")
		}
		if !set.HasType("App") {
			t.Error("sibling files should still load")
		}
	})

	t.Run("respects glob exclude patterns", func(t *testing.T) {
		// Arrange
		tmpDir := t.TempDir()
		writeSource(t, tmpDir, "app.go", "package app\n\ntype App struct{}\n")
		writeSource(t, filepath.Join(tmpDir, "generated"), "gen.go", "package generated\n\ntype Generated struct{}\n")
		service := NewService(WithExcludes([]string{"**/generated"}))

		// Act
		set, err := service.Load([]string{tmpDir})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if set.HasType("Generated") {
			t.Error("pattern-excluded directory should be skipped")
		}
	})
}

// TestOptions tests service configuration options
func TestOptions(t *testing.T) {
	t.Run("applies all options correctly", func(t *testing.T) {
		// Arrange & Act
		service := NewService(
			WithParseVendor(true),
			WithParseInternal(true),
			WithGoPackages(true),
			WithPackagePrefix([]string{"github.com/test"}),
			WithParseExtension(".go"),
			WithParseDependency(ParseAll),
			WithExcludes([]string{"exact", "glob/**"}),
			WithConcurrency(2),
		)

		// Assert
		if !service.parseVendor {
			t.Error("parseVendor should be true")
		}
		if !service.parseInternal {
			t.Error("parseInternal should be true")
		}
		if !service.useGoPackages {
			t.Error("useGoPackages should be true")
		}
		if len(service.packagePrefix) != 1 {
			t.Error("packagePrefix should have one entry")
		}
		if service.parseExtension != ".go" {
			t.Error("parseExtension should be .go")
		}
		if service.parseDependency != ParseAll {
			t.Error("parseDependency should be ParseAll")
		}
		if len(service.excludes) != 1 || len(service.excludePatterns) != 1 {
			t.Error("excludes should split exact paths from patterns")
		}
		if service.concurrency != 2 {
			t.Error("concurrency should be set")
		}
	})
}

// TestSkipLogic tests file and directory skip logic
func TestSkipLogic(t *testing.T) {
	t.Run("skips test files", func(t *testing.T) {
		// Arrange
		service := NewService()

		// Act
		shouldSkip := service.shouldSkipFile("some_test.go")

		// Assert
		if !shouldSkip {
			t.Error("should skip test files")
		}
	})

	t.Run("skips non-go files", func(t *testing.T) {
		// Arrange
		service := NewService()

		// Act
		shouldSkip := service.shouldSkipFile("readme.md")

		// Assert
		if !shouldSkip {
			t.Error("should skip non-go files")
		}
	})

	t.Run("processes regular go files", func(t *testing.T) {
		// Arrange
		service := NewService()

		// Act
		shouldSkip := service.shouldSkipFile("main.go")

		// Assert
		if shouldSkip {
			t.Error("should not skip regular go files")
		}
	})

	t.Run("skips hidden directories", func(t *testing.T) {
		// Arrange
		service := NewService()
		fileInfo := &mockFileInfo{name: ".git", isDir: true}

		// Act
		err := service.shouldSkipDir("/some/path/.git", fileInfo)

		// Assert
		if err == nil {
			t.Error("should skip hidden directories")
		}
	})

	t.Run("skips docs directory", func(t *testing.T) {
		// Arrange
		service := NewService()
		fileInfo := &mockFileInfo{name: "docs", isDir: true}

		// Act
		err := service.shouldSkipDir("/some/path/docs", fileInfo)

		// Assert
		if err == nil {
			t.Error("should skip docs directory")
		}
	})
}

// mockFileInfo implements os.FileInfo for testing
type mockFileInfo struct {
	name  string
	isDir bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return 0 }
func (m *mockFileInfo) Mode() os.FileMode  { return 0644 }
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }
