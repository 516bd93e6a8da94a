package compose

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []string{"web:", "  image: nginx:1.0", "db:", "  image: mysql:5.7"}

func TestFindNextSkipsNonImageLines(t *testing.T) {
	f := New(sample)
	assert.Equal(t, -1, f.Current())

	require.True(t, f.FindNext())
	assert.Equal(t, 1, f.Current())

	require.True(t, f.FindNext())
	assert.Equal(t, 3, f.Current())

	assert.False(t, f.FindNext())
	assert.Equal(t, 3, f.Current(), "selection stays put without a match")

	require.True(t, f.FindPrevious())
	assert.Equal(t, 1, f.Current())
	assert.False(t, f.FindPrevious())
	assert.Equal(t, 1, f.Current())
}

func TestFindPreviousBeforeSelectionStartsAtEnd(t *testing.T) {
	f := New(sample)
	require.True(t, f.FindPrevious())
	assert.Equal(t, 3, f.Current())
}

func TestFindWithoutImages(t *testing.T) {
	f := New([]string{"version: '3'", "services: {}"})
	assert.False(t, f.FindNext())
	assert.False(t, f.FindPrevious())
	_, err := f.ExtractRepo()
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestExtractAndChangeCurrentLine(t *testing.T) {
	f := New(sample)
	require.True(t, f.FindNext())

	token, err := f.ExtractRepo()
	require.NoError(t, err)
	assert.Equal(t, "nginx:1.0", token)

	require.NoError(t, f.ChangeCurrentLine("nginx:latest"))
	assert.Equal(t, []string{"web:", "  image: nginx:latest", "db:", "  image: mysql:5.7"}, f.Lines())
	assert.True(t, f.Dirty())
}

func TestChangeCurrentLinePreservesQuotesAndComments(t *testing.T) {
	f := New([]string{"services:", "  app:", `    image: "redis:6"   # pinned`, "  - image: 'busybox'"})
	require.True(t, f.FindNext())
	require.NoError(t, f.ChangeCurrentLine("redis:7.2"))
	assert.Equal(t, `    image: "redis:7.2"   # pinned`, f.Lines()[2])

	require.True(t, f.FindNext())
	token, err := f.ExtractRepo()
	require.NoError(t, err)
	assert.Equal(t, "busybox", token)
	require.NoError(t, f.ChangeCurrentLine("busybox:1.36"))
	assert.Equal(t, "  - image: 'busybox:1.36'", f.Lines()[3])
}

func TestChangeCurrentLineWithoutSelection(t *testing.T) {
	f := New(sample)
	assert.ErrorIs(t, f.ChangeCurrentLine("nginx:latest"), ErrNoMatch)
	require.True(t, f.FindNext())
	assert.ErrorIs(t, f.ChangeCurrentLine("  "), ErrNoMatch)
	assert.False(t, f.Dirty())
}

func TestServiceName(t *testing.T) {
	f := New([]string{"services:", "  web:", "    # front", "    image: nginx", "  db:", "    image: mysql"})
	assert.Equal(t, "web", f.ServiceName(3))
	assert.Equal(t, "db", f.ServiceName(5))
	assert.Equal(t, "", f.ServiceName(0))
	assert.Equal(t, "", f.ServiceName(42))
}

func writeCompose(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "docker-compose.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAndSaveRoundTrip(t *testing.T) {
	path := writeCompose(t, "services:\n  web:\n    image: nginx:1.0\n")
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path())
	assert.Equal(t, 3, f.Len())

	require.True(t, f.FindNext())
	require.NoError(t, f.ChangeCurrentLine("nginx:1.27"))
	require.NoError(t, f.Save())
	assert.False(t, f.Dirty())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "services:\n  web:\n    image: nginx:1.27\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveKeepsCRLFLineEndings(t *testing.T) {
	path := writeCompose(t, "services:\r\n  web:\r\n    image: nginx:1.0\r\n  db:\r\n    image: mysql:5.7\r\n")
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "    image: nginx:1.0", f.Lines()[2])

	require.True(t, f.FindNext())
	require.NoError(t, f.ChangeCurrentLine("nginx:latest"))
	require.NoError(t, f.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "services:\r\n  web:\r\n    image: nginx:latest\r\n  db:\r\n    image: mysql:5.7\r\n", string(data))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := writeCompose(t, "services: [\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrReparse)
}

func TestSaveReparseFailureKeepsContent(t *testing.T) {
	path := writeCompose(t, "web:\n  image: nginx:1.0\n")
	f, err := Load(path)
	require.NoError(t, err)
	require.True(t, f.FindNext())
	require.NoError(t, f.ChangeCurrentLine("[broken"))
	before := f.Lines()

	err = f.Save()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReparse)
	assert.Equal(t, before, f.Lines())
	assert.True(t, f.Dirty())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "web:\n  image: nginx:1.0\n", string(data))
}

func TestSaveIOFailureKeepsContent(t *testing.T) {
	path := writeCompose(t, "web:\n  image: nginx:1.0\n")
	f, err := Load(path)
	require.NoError(t, err)
	require.True(t, f.FindNext())
	require.NoError(t, f.ChangeCurrentLine("nginx:latest"))
	before := f.Lines()

	require.NoError(t, os.RemoveAll(filepath.Dir(path)))
	err = f.Save()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSave)
	assert.Equal(t, before, f.Lines())
	assert.True(t, f.Dirty())
}

func TestSaveWithoutPath(t *testing.T) {
	f := New(sample)
	assert.ErrorIs(t, f.Save(), ErrSave)
}
