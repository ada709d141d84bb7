package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCollectJavaFilesWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, filepath.Join(dir, "src", "B.java"), "class B {}")
	writeSource(t, filepath.Join(dir, "src", "sub", "A.java"), "class A {}")
	writeSource(t, filepath.Join(dir, "src", "notes.txt"), "not java")

	files, err := CollectJavaFiles(dir, []string{"src"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "src", "B.java"),
		filepath.Join(dir, "src", "sub", "A.java"),
	}, files)
}

func TestCollectJavaFilesAcceptsFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Vehicle.java")
	writeSource(t, path, "class Vehicle {}")

	files, err := CollectJavaFiles(dir, []string{"Vehicle.java"})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestCollectJavaFilesDeduplicates(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, filepath.Join(dir, "src", "A.java"), "class A {}")

	files, err := CollectJavaFiles(dir, []string{"src", filepath.Join("src", "A.java")})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestCollectJavaFilesMissingInclude(t *testing.T) {
	_, err := CollectJavaFiles(t.TempDir(), []string{"nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}
