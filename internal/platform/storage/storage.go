// Package storage implements document staging and binding on the local
// filesystem. Uploads land in a shared temporary area before their owning
// application row exists; once the row's ID is known they are moved into a
// per-application folder under a deterministic name.
package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidFileType is returned when the extension and declared MIME
	// type do not both match one of the accepted document formats.
	ErrInvalidFileType = errors.New("file type not allowed")

	// ErrFileTooLarge is returned when an upload exceeds the size ceiling.
	ErrFileTooLarge = errors.New("file exceeds the maximum size")

	// ErrPathEscape is returned when a requested path resolves outside the
	// uploads root.
	ErrPathEscape = errors.New("path escapes the uploads root")
)

// allowedTypes maps accepted extensions to their expected MIME types.
// Extension and declared MIME must agree; a .pdf declared as image/png is
// rejected.
var allowedTypes = map[string][]string{
	".jpg":  {"image/jpeg"},
	".jpeg": {"image/jpeg"},
	".png":  {"image/png"},
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
}

// StagedFile is an upload parked in the temporary area, tagged with its
// document kind.
type StagedFile struct {
	Kind string
	Path string // absolute path in the temp area
	Ext  string // original extension, lowercased
}

// Storage manages the uploads root and its temporary staging area.
type Storage struct {
	root    string
	tmp     string
	maxSize int64
}

// NewStorage creates both directories if needed and returns the Storage.
func NewStorage(root, tmp string, maxSize int64) (*Storage, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve uploads root: %w", err)
	}
	absTmp, err := filepath.Abs(tmp)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve staging dir: %w", err)
	}
	if err := os.MkdirAll(absRoot, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads root: %w", err)
	}
	if err := os.MkdirAll(absTmp, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging dir: %w", err)
	}
	return &Storage{root: absRoot, tmp: absTmp, maxSize: maxSize}, nil
}

// Stage validates an upload and writes it to the temporary area under a
// random identifier. The caller owns the returned StagedFile until it is
// bound or discarded.
func (s *Storage) Stage(kind, filename, declaredMIME string, size int64, r io.Reader) (*StagedFile, error) {
	if size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	mimes, ok := allowedTypes[ext]
	if !ok {
		return nil, ErrInvalidFileType
	}
	declared := strings.ToLower(strings.TrimSpace(strings.Split(declaredMIME, ";")[0]))
	match := false
	for _, m := range mimes {
		if declared == m {
			match = true
			break
		}
	}
	if !match {
		return nil, ErrInvalidFileType
	}

	dst := filepath.Join(s.tmp, uuid.NewString()+ext)
	f, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to create staged file: %w", err)
	}
	defer f.Close()

	// Limit the copy one byte past the ceiling to catch senders that lie
	// about the size.
	written, err := io.Copy(f, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		os.Remove(dst)
		return nil, fmt.Errorf("failed to write staged file: %w", err)
	}
	if written > s.maxSize {
		os.Remove(dst)
		return nil, ErrFileTooLarge
	}

	return &StagedFile{Kind: kind, Path: dst, Ext: ext}, nil
}

// Bind creates the application's folder and moves every staged file into it
// under the deterministic name <appID>_<kind><ext>. It returns the relative
// path per kind. Repeated binding for the same ID is idempotent in naming;
// a second call with different temp files overwrites.
func (s *Storage) Bind(appID uint, staged []*StagedFile) (map[string]string, error) {
	folder := strconv.FormatUint(uint64(appID), 10)
	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create application folder: %w", err)
	}

	paths := make(map[string]string, len(staged))
	for _, f := range staged {
		name := fmt.Sprintf("%s_%s%s", folder, f.Kind, f.Ext)
		if err := os.Rename(f.Path, filepath.Join(dir, name)); err != nil {
			return paths, fmt.Errorf("failed to bind %s document: %w", f.Kind, err)
		}
		paths[f.Kind] = filepath.Join(folder, name)
	}
	return paths, nil
}

// Discard removes staged files left over from a failed submission.
// Best effort: missing files are not an error.
func (s *Storage) Discard(staged []*StagedFile) {
	for _, f := range staged {
		if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to discard staged file", "path", f.Path, "error", err)
		}
	}
}

// Remove deletes a single bound file. Best effort: an absent path is not an
// error.
func (s *Storage) Remove(relPath string) {
	abs, err := s.Resolve(relPath)
	if err != nil {
		return
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove file", "path", relPath, "error", err)
	}
}

// RemoveAll deletes an application's entire folder recursively.
func (s *Storage) RemoveAll(appID uint) error {
	dir := filepath.Join(s.root, strconv.FormatUint(uint64(appID), 10))
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove application folder: %w", err)
	}
	return nil
}

// Resolve turns a relative path into an absolute one, rejecting anything
// that escapes the uploads root.
func (s *Storage) Resolve(relPath string) (string, error) {
	clean := filepath.Clean(relPath)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) {
		return "", ErrPathEscape
	}
	abs := filepath.Join(s.root, clean)
	if abs == s.root || !strings.HasPrefix(abs, s.root+string(os.PathSeparator)) {
		return "", ErrPathEscape
	}
	return abs, nil
}
