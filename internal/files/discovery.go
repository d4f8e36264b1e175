package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"openrange/internal/config"
	"openrange/internal/errors"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// IsSupported reports whether name has an input extension the reader
// accepts. Office lock files (~$name.xlsx) are never supported.
func IsSupported(name string) bool {
	if strings.HasPrefix(filepath.Base(name), "~$") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range config.SupportedInputExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// Discover resolves an input path into the list of files to read. A file
// path must have a supported extension; a directory yields its supported
// files (non-recursive) sorted by name.
func Discover(path string) ([]FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("input %s", path))
		}
		return nil, errors.NewStorageError("failed to stat input", err).WithContext("path", path)
	}

	if !info.IsDir() {
		if !IsSupported(info.Name()) {
			return nil, errors.NewAppValidationError(fmt.Sprintf("unsupported input file %s", path))
		}
		return []FileInfo{toFileInfo(path, info)}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to read directory", err).WithContext("path", path)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsSupported(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, toFileInfo(filepath.Join(path, entry.Name()), info))
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

func toFileInfo(path string, info os.FileInfo) FileInfo {
	return FileInfo{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}
