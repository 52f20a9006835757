package filesystem_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sagarc03/docserver"
	"github.com/sagarc03/docserver/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*filesystem.Store, string) {
	t.Helper()
	tempDir := t.TempDir()
	osDir, err := os.OpenRoot(tempDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = osDir.Close() })
	return filesystem.NewFileStorage(osDir), tempDir
}

func TestStore_Stat_Success(t *testing.T) {
	store, tempDir := newStore(t)

	err := os.WriteFile(filepath.Join(tempDir, "test.txt"), []byte("content"), 0o644)
	require.NoError(t, err)
	err = os.Mkdir(filepath.Join(tempDir, "docs"), 0o755)
	require.NoError(t, err)

	info, err := store.Stat(context.Background(), "test.txt")
	assert.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Equal(t, int64(7), info.Size())

	info, err = store.Stat(context.Background(), "docs")
	assert.NoError(t, err)
	assert.True(t, info.IsDir())

	info, err = store.Stat(context.Background(), ".")
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore_Stat_NotFound(t *testing.T) {
	store, tempDir := newStore(t)

	_, err := store.Stat(context.Background(), "missing.txt")
	assert.ErrorIs(t, err, docserver.ErrNotFound)

	err = os.WriteFile(filepath.Join(tempDir, "file.txt"), []byte("x"), 0o644)
	require.NoError(t, err)

	// a regular file used as a directory component
	_, err = store.Stat(context.Background(), filepath.Join("file.txt", "index.html"))
	assert.ErrorIs(t, err, docserver.ErrNotFound)
}

func TestStore_Stat_ContextCanceled(t *testing.T) {
	store, _ := newStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Stat(ctx, "test.txt")
	assert.Equal(t, context.Canceled, err)
}

func TestStore_Read_Success(t *testing.T) {
	store, tempDir := newStore(t)

	content := []byte("test content")
	err := os.WriteFile(filepath.Join(tempDir, "test.txt"), content, 0o644)
	require.NoError(t, err)

	data, err := store.Read(context.Background(), "test.txt")
	assert.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestStore_Read_NotFound(t *testing.T) {
	store, _ := newStore(t)

	data, err := store.Read(context.Background(), "nonexistent.txt")
	assert.ErrorIs(t, err, docserver.ErrNotFound)
	assert.Nil(t, data)
}

func TestStore_Read_Directory(t *testing.T) {
	store, tempDir := newStore(t)

	err := os.Mkdir(filepath.Join(tempDir, "docs"), 0o755)
	require.NoError(t, err)

	_, err = store.Read(context.Background(), "docs")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, docserver.ErrNotFound)
}

func TestStore_Read_EscapingSymlink(t *testing.T) {
	store, tempDir := newStore(t)

	outside := t.TempDir()
	err := os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("secret"), 0o644)
	require.NoError(t, err)
	err = os.Symlink(filepath.Join(outside, "secret.txt"), filepath.Join(tempDir, "link.txt"))
	require.NoError(t, err)

	_, err = store.Read(context.Background(), "link.txt")
	assert.Error(t, err)
}

func TestStore_Read_ContextCanceled(t *testing.T) {
	store, _ := newStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data, err := store.Read(ctx, "test.txt")
	assert.Nil(t, data)
	assert.Equal(t, context.Canceled, err)
}

func TestStore_Write_Success(t *testing.T) {
	store, tempDir := newStore(t)

	result, err := store.Write(context.Background(), "test.txt", bytes.NewReader([]byte("test content")))
	assert.NoError(t, err)
	assert.Equal(t, int64(12), result.BytesWritten)

	data, err := os.ReadFile(filepath.Join(tempDir, "test.txt"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("test content"), data)
}

func TestStore_Write_Overwrite(t *testing.T) {
	store, tempDir := newStore(t)

	err := os.WriteFile(filepath.Join(tempDir, "test.txt"), []byte("a much longer original body"), 0o644)
	require.NoError(t, err)

	_, err = store.Write(context.Background(), "test.txt", strings.NewReader("short"))
	assert.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(tempDir, "test.txt"))
	assert.NoError(t, err)
	assert.Equal(t, "short", string(data))
}

func TestStore_Write_EmptyBody(t *testing.T) {
	store, tempDir := newStore(t)

	result, err := store.Write(context.Background(), "empty.txt", bytes.NewReader(nil))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), result.BytesWritten)

	info, err := os.Stat(filepath.Join(tempDir, "empty.txt"))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
}

func TestStore_Write_WithSubdirectory(t *testing.T) {
	store, tempDir := newStore(t)

	result, err := store.Write(context.Background(), filepath.Join("subdir", "nested", "test.txt"), bytes.NewReader([]byte("nested content")))
	assert.NoError(t, err)
	assert.Equal(t, int64(14), result.BytesWritten)

	data, err := os.ReadFile(filepath.Join(tempDir, "subdir", "nested", "test.txt"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("nested content"), data)
}

func TestStore_Write_LeavesNoTempFiles(t *testing.T) {
	store, tempDir := newStore(t)

	_, err := store.Write(context.Background(), filepath.Join("docs", "a.txt"), strings.NewReader("a"))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(tempDir, "docs"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "a.txt", entries[0].Name())
}

func TestStore_Write_OntoDirectory(t *testing.T) {
	store, tempDir := newStore(t)

	err := os.MkdirAll(filepath.Join(tempDir, "docs", "inner"), 0o755)
	require.NoError(t, err)

	_, err = store.Write(context.Background(), "docs", strings.NewReader("x"))
	assert.Error(t, err)

	info, err := os.Stat(filepath.Join(tempDir, "docs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be cleaned up")
}

func TestStore_Write_ContextCanceledBefore(t *testing.T) {
	store, tempDir := newStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := store.Write(ctx, "test.txt", bytes.NewReader([]byte("test")))
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, int64(0), result.BytesWritten)

	_, statErr := os.Stat(filepath.Join(tempDir, "test.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_Write_ContextCanceledDuringCopy(t *testing.T) {
	store, tempDir := newStore(t)

	ctx, cancel := context.WithCancel(context.Background())

	slowReader := &slowReader{
		data:   []byte("test content"),
		cancel: cancel,
	}

	result, err := store.Write(ctx, "test.txt", slowReader)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(0), result.BytesWritten)

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type slowReader struct {
	data   []byte
	pos    int
	cancel context.CancelFunc
}

func (r *slowReader) Read(p []byte) (n int, err error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	r.cancel()
	n = copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func TestStore_Delete_Success(t *testing.T) {
	store, tempDir := newStore(t)

	err := os.WriteFile(filepath.Join(tempDir, "test.txt"), []byte("content"), 0o644)
	require.NoError(t, err)

	err = store.Delete(context.Background(), "test.txt")
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(tempDir, "test.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_Delete_EmptyDirectory(t *testing.T) {
	store, tempDir := newStore(t)

	err := os.Mkdir(filepath.Join(tempDir, "empty"), 0o755)
	require.NoError(t, err)

	err = store.Delete(context.Background(), "empty")
	assert.NoError(t, err)
}

func TestStore_Delete_NonEmptyDirectory(t *testing.T) {
	store, tempDir := newStore(t)

	err := os.MkdirAll(filepath.Join(tempDir, "docs"), 0o755)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(tempDir, "docs", "a.txt"), []byte("a"), 0o644)
	require.NoError(t, err)

	err = store.Delete(context.Background(), "docs")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, docserver.ErrNotFound)

	_, err = os.Stat(filepath.Join(tempDir, "docs", "a.txt"))
	assert.NoError(t, err)
}

func TestStore_Delete_ContextCanceled(t *testing.T) {
	store, _ := newStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Delete(ctx, "test.txt")
	assert.Equal(t, context.Canceled, err)
}

func TestStore_Delete_NotFound(t *testing.T) {
	store, _ := newStore(t)

	err := store.Delete(context.Background(), "nonexistent.txt")
	assert.ErrorIs(t, err, docserver.ErrNotFound)
}
