package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureParentDir_CreatesDirectoryRelativeToCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureParentDir(filepath.Join("state", "session.db"))
	require.NoError(t, err)

	wantDir, err := filepath.EvalSymlinks(filepath.Join(tmp, "state"))
	require.NoError(t, err)
	gotDir, err := filepath.EvalSymlinks(filepath.Dir(got))
	require.NoError(t, err)
	require.Equal(t, wantDir, gotDir)
	require.True(t, filepath.IsAbs(got))

	fi, err := os.Stat(filepath.Dir(got))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	_, err = os.Stat(got)
	require.True(t, os.IsNotExist(err), "the file itself is not created")
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "a", "b", "session.db")

	first, err := EnsureParentDir(path)
	require.NoError(t, err)
	second, err := EnsureParentDir(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureParentDir_FailsIfFileBlocksDirectory(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "state")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := EnsureParentDir(filepath.Join(blocker, "session.db"))
	require.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}

	got, err := ExpandHome("~/.microlearn/session.db")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".microlearn", "session.db"), got)

	got, err = ExpandHome("relative.db")
	require.NoError(t, err)
	require.Equal(t, "relative.db", got)
}
