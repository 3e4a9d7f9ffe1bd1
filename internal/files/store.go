package files

import (
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pctrack/internal/config"
)

// Store manages the storage directory holding the uploaded workbooks.
// Course files keep their original names; the graduate roster always
// lives under one reserved name. Writes are atomic: content goes to a
// temporary file first and is renamed into place, so a concurrent
// extraction pass never observes a half-written workbook.
type Store struct {
	dir        string
	rosterName string
	logger     *slog.Logger
}

// NewStore creates a store over the configured data directory.
func NewStore(cfg *config.Config, logger *slog.Logger) *Store {
	return &Store{
		dir:        cfg.Paths.DataDir,
		rosterName: cfg.Pipeline.RosterFileName,
		logger:     logger.With(slog.String("component", "file_store")),
	}
}

// Dir returns the storage directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Inventory describes the current contents of the storage directory.
type Inventory struct {
	CourseFiles  []string `json:"course_files"`
	RosterLoaded bool     `json:"roster_loaded"`
	IgnoredFiles []string `json:"ignored_files,omitempty"`
}

// List returns the stored workbooks: course .xlsx files sorted by name,
// whether the roster is present, and any foreign files that extraction
// will ignore.
func (s *Store) List() (*Inventory, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	inv := &Inventory{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case !strings.HasSuffix(strings.ToLower(name), ".xlsx"):
			inv.IgnoredFiles = append(inv.IgnoredFiles, name)
		case name == s.rosterName:
			inv.RosterLoaded = true
		default:
			inv.CourseFiles = append(inv.CourseFiles, name)
		}
	}
	sort.Strings(inv.CourseFiles)
	sort.Strings(inv.IgnoredFiles)

	return inv, nil
}

// SaveCourseFile stores one uploaded course workbook under its original
// name. The name must be a plain .xlsx file name; the reserved roster
// name is rejected so a course upload cannot shadow the roster.
func (s *Store) SaveCourseFile(name string, r io.Reader) error {
	cleaned, err := s.sanitizeName(name)
	if err != nil {
		return err
	}
	if cleaned == s.rosterName {
		return fmt.Errorf("%s is reserved for the graduate roster", s.rosterName)
	}
	return s.atomicWrite(cleaned, r)
}

// SaveRoster stores the graduate roster workbook under the reserved name,
// regardless of the uploaded file's original name.
func (s *Store) SaveRoster(r io.Reader) error {
	return s.atomicWrite(s.rosterName, r)
}

// Delete removes one stored file by name.
func (s *Store) Delete(name string) error {
	cleaned, err := s.sanitizeName(name)
	if err != nil {
		return err
	}

	path := filepath.Join(s.dir, cleaned)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", cleaned, err)
	}

	s.logger.Info("file deleted", slog.String("name", cleaned))
	return nil
}

// Exists reports whether a stored file with the given name exists.
func (s *Store) Exists(name string) bool {
	cleaned, err := s.sanitizeName(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(s.dir, cleaned))
	return err == nil
}

// Version returns a content hash of the storage directory derived from
// every entry's name, size and modification time. Any upload or delete
// changes the version; filter-only interactions do not. The data
// service uses it as the cache key that decides whether a re-extraction
// is needed.
func (s *Store) Version() (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("failed to read storage directory: %w", err)
	}

	h := sha256.New()
	names := make([]string, 0, len(entries))
	infos := make(map[string]os.FileInfo, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		names = append(names, entry.Name())
		infos[entry.Name()] = info
	}
	sort.Strings(names)

	for _, name := range names {
		info := infos[name]
		fmt.Fprintf(h, "%s|%d|%d\n", name, info.Size(), info.ModTime().UnixNano())
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// atomicWrite writes content to a temporary file in the storage
// directory and renames it into place. The temporary file is removed on
// every failure path.
func (s *Store) atomicWrite(name string, r io.Reader) (err error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp_*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = io.Copy(tmp, r); err != nil {
		return fmt.Errorf("failed to write upload: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync upload: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close upload: %w", err)
	}

	target := filepath.Join(s.dir, name)
	if err = os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move upload into place: %w", err)
	}

	s.logger.Info("file stored", slog.String("name", name))
	return nil
}

// sanitizeName rejects path traversal and anything that is not a plain
// .xlsx file name.
func (s *Store) sanitizeName(name string) (string, error) {
	cleaned := filepath.Base(strings.TrimSpace(name))
	if cleaned == "" || cleaned == "." || cleaned == ".." || cleaned != name {
		return "", fmt.Errorf("invalid file name: %q", name)
	}
	if !strings.HasSuffix(strings.ToLower(cleaned), ".xlsx") {
		return "", fmt.Errorf("unsupported file type: %q (only .xlsx)", name)
	}
	return cleaned, nil
}
