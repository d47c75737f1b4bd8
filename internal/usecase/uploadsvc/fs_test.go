package uploadsvc

import (
	"context"
	"io"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystemServesPublishedFiles(t *testing.T) {
	svc, mem := newMemService()
	require.NoError(t, mem.MkdirAll(filepath.Join(testDir, "nested"), 0o755))
	require.NoError(t, afero.WriteFile(mem, filepath.Join(testDir, "14122022010101_avatar_cat.png"), []byte("meow"), 0o644))
	require.NoError(t, afero.WriteFile(mem, filepath.Join(testDir, partialPrefix+"123"), []byte("half"), 0o600))

	hfs := svc.FileSystem()

	f, err := hfs.Open("/14122022010101_avatar_cat.png")
	require.NoError(t, err)
	got, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "meow", string(got))

	for _, name := range []string{"/" + partialPrefix + "123", "/", "/nested", "/missing.txt", "/../etc/passwd"} {
		_, err := hfs.Open(name)
		assert.ErrorIs(t, err, fs.ErrNotExist, name)
	}
}

func TestUsage(t *testing.T) {
	svc, mem := newMemService()

	usage, err := svc.Usage()
	require.NoError(t, err)
	assert.Zero(t, usage.Files)

	_, err = svc.SaveAll(context.Background(), partsOf(t,
		testPart{field: "a", file: "one.txt", body: "12345"},
		testPart{field: "b", file: "two.txt", body: "123"},
	))
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(mem, filepath.Join(testDir, partialPrefix+"x"), []byte("ignored"), 0o600))

	usage, err = svc.Usage()
	require.NoError(t, err)
	assert.Equal(t, 2, usage.Files)
	assert.Equal(t, int64(8), usage.TotalBytes)
}

func TestSweepPartialsRemovesOnlyStalePartials(t *testing.T) {
	mem := afero.NewMemMapFs()
	now := time.Now()
	svc := New(Deps{Fs: mem, Dir: testDir, Now: func() time.Time { return now }})

	stale := filepath.Join(testDir, partialPrefix+"stale")
	fresh := filepath.Join(testDir, partialPrefix+"fresh")
	stored := filepath.Join(testDir, "14122022010101_avatar_cat.png")
	for _, p := range []string{stale, fresh, stored} {
		require.NoError(t, afero.WriteFile(mem, p, []byte("x"), 0o644))
	}
	old := now.Add(-48 * time.Hour)
	require.NoError(t, mem.Chtimes(stale, old, old))
	require.NoError(t, mem.Chtimes(stored, old, old))

	n, err := svc.SweepPartials(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	for p, want := range map[string]bool{stale: false, fresh: true, stored: true} {
		ok, err := afero.Exists(mem, p)
		require.NoError(t, err)
		assert.Equal(t, want, ok, p)
	}
}

func TestSweepPartialsMissingDir(t *testing.T) {
	svc, _ := newMemService()

	n, err := svc.SweepPartials(time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStartSweeperDisabled(t *testing.T) {
	svc, _ := newMemService()

	stop := svc.StartSweeper(0, time.Minute)
	stop()
	stop = svc.StartSweeper(time.Hour, 0)
	stop()
}

func TestStartSweeperRuns(t *testing.T) {
	mem := afero.NewMemMapFs()
	svc := New(Deps{Fs: mem, Dir: testDir, Now: func() time.Time { return time.Now().Add(time.Hour) }})
	stale := filepath.Join(testDir, partialPrefix+"stale")
	require.NoError(t, afero.WriteFile(mem, stale, []byte("x"), 0o600))

	stop := svc.StartSweeper(time.Minute, 10*time.Millisecond)
	t.Cleanup(stop)

	assert.Eventually(t, func() bool {
		ok, _ := afero.Exists(mem, stale)
		return !ok
	}, 2*time.Second, 10*time.Millisecond)

	stop()
	stop()
}
