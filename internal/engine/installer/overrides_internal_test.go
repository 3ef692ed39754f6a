package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modsync/internal/adapters/fs"
	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBackupIfModified_KeepsEarlierBackups(t *testing.T) {
	dir := t.TempDir()
	sink := mocks.NewMockEventSink(gomock.NewController(t))
	sink.EXPECT().Emit(gomock.Any()).Times(2)
	r := newRun(&Installer{hasher: fs.NewHasher()}, Request{Dir: dir}, sink)

	path := domain.MustScopedPath("config/a.toml")
	dest := path.Join(dir)
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0o750))

	for _, edit := range []string{"first edit", "second edit"} {
		require.NoError(t, os.WriteFile(dest, []byte(edit), 0o600))
		require.NoError(t, r.backupIfModified(path, dest, "0000", nil))
		assert.NoFileExists(t, dest)
	}

	first, err := os.ReadFile(dest + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "first edit", string(first))

	second, err := os.ReadFile(dest + ".bak.1")
	require.NoError(t, err)
	assert.Equal(t, "second edit", string(second))
}

func TestBackupIfModified_UnchangedFileStays(t *testing.T) {
	dir := t.TempDir()
	sink := mocks.NewMockEventSink(gomock.NewController(t))
	hasher := fs.NewHasher()
	r := newRun(&Installer{hasher: hasher}, Request{Dir: dir}, sink)

	path := domain.MustScopedPath("config/a.toml")
	dest := path.Join(dir)
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0o750))
	require.NoError(t, os.WriteFile(dest, []byte("shipped"), 0o600))
	sum, err := hasher.HashFile(dest)
	require.NoError(t, err)

	require.NoError(t, r.backupIfModified(path, dest, "0000", map[domain.ScopedPath]string{path: sum}))
	assert.FileExists(t, dest)
	assert.NoFileExists(t, dest+".bak")
}
