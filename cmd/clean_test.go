package cmd

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEvilZip(t *testing.T, path string) []byte {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	fw, err := w.CreateHeader(&zip.FileHeader{Name: "../evil.txt", Method: zip.Store})
	require.NoError(t, err)
	_, err = fw.Write([]byte{1})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func runRoot(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestCleanUnknownFlagTouchesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.zip")
	before := writeEvilZip(t, path)

	err := runRoot("clean", "--bogus", path)
	assert.Error(t, err)

	after, err2 := os.ReadFile(path)
	require.NoError(t, err2)
	assert.Equal(t, before, after, "a usage error must abort before any archive is opened")
}

func TestCleanReportByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.zip")
	before := writeEvilZip(t, path)

	require.NoError(t, runRoot("clean", path))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCleanFixDashPathAfterTerminator(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	before := writeEvilZip(t, "-dash.zip")

	require.NoError(t, runRoot("clean", "--fix", "--", "-dash.zip"))

	after, err := os.ReadFile("-dash.zip")
	require.NoError(t, err)
	assert.Len(t, after, len(before))
	assert.NotEqual(t, before, after, "apply mode should have rewritten the name")

	zr, err := zip.OpenReader("-dash.zip")
	require.NoError(t, err)
	defer zr.Close()
	require.Len(t, zr.File, 1)
	assert.Equal(t, "__/evil.txt", zr.File[0].Name)
}

func TestCleanContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.zip")
	good := filepath.Join(dir, "good.zip")
	require.NoError(t, os.WriteFile(bad, []byte("not a zip at all"), 0644))
	writeEvilZip(t, good)

	err := runRoot("clean", "--fix", bad, good)
	assert.Error(t, err, "a failed archive must surface in the exit status")

	zr, err2 := zip.OpenReader(good)
	require.NoError(t, err2, "the archive after the failing one must still be processed")
	defer zr.Close()
	assert.Equal(t, "__/evil.txt", zr.File[0].Name)
}
