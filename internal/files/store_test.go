package files

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pctrack/internal/config"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	cfg := &config.Config{}
	cfg.Paths.DataDir = t.TempDir()
	cfg.Pipeline.RosterFileName = "MEZUN_LISTESI.xlsx"
	return NewStore(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSaveCourseFileAndList(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.SaveCourseFile("ders1.xlsx", strings.NewReader("data1")))
	require.NoError(t, s.SaveCourseFile("ders2.xlsx", strings.NewReader("data2")))
	require.NoError(t, s.SaveRoster(strings.NewReader("roster")))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "notlar.txt"), []byte("x"), 0644))

	inv, err := s.List()
	require.NoError(t, err)

	assert.Equal(t, []string{"ders1.xlsx", "ders2.xlsx"}, inv.CourseFiles)
	assert.True(t, inv.RosterLoaded)
	assert.Equal(t, []string{"notlar.txt"}, inv.IgnoredFiles)
}

func TestSaveCourseFileRejectsBadNames(t *testing.T) {
	s := testStore(t)

	assert.Error(t, s.SaveCourseFile("../evil.xlsx", strings.NewReader("x")))
	assert.Error(t, s.SaveCourseFile("ders.csv", strings.NewReader("x")))
	assert.Error(t, s.SaveCourseFile("", strings.NewReader("x")))
	assert.Error(t, s.SaveCourseFile("MEZUN_LISTESI.xlsx", strings.NewReader("x")),
		"the roster name is reserved")
}

func TestAtomicWriteReplacesContent(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.SaveCourseFile("ders.xlsx", strings.NewReader("old")))
	require.NoError(t, s.SaveCourseFile("ders.xlsx", strings.NewReader("new")))

	data, err := os.ReadFile(filepath.Join(s.Dir(), "ders.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestAtomicWriteCleansUpOnFailure(t *testing.T) {
	s := testStore(t)

	err := s.SaveCourseFile("ders.xlsx", failingReader{})
	require.Error(t, err)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "no temp file may survive a failed write")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestDelete(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.SaveCourseFile("ders.xlsx", strings.NewReader("x")))

	assert.True(t, s.Exists("ders.xlsx"))
	require.NoError(t, s.Delete("ders.xlsx"))
	assert.False(t, s.Exists("ders.xlsx"))
	assert.Error(t, s.Delete("ders.xlsx"))
}

func TestVersionChangesOnWriteAndDelete(t *testing.T) {
	s := testStore(t)

	v0, err := s.Version()
	require.NoError(t, err)

	require.NoError(t, s.SaveCourseFile("ders.xlsx", strings.NewReader("x")))
	v1, err := s.Version()
	require.NoError(t, err)
	assert.NotEqual(t, v0, v1, "upload must change the store version")

	v1again, err := s.Version()
	require.NoError(t, err)
	assert.Equal(t, v1, v1again, "version is stable while nothing changes")

	require.NoError(t, s.Delete("ders.xlsx"))
	v2, err := s.Version()
	require.NoError(t, err)
	assert.NotEqual(t, v1, v2, "delete must change the store version")
}
