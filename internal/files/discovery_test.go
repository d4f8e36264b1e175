package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openrange/internal/errors"
)

func TestIsSupported(t *testing.T) {
	tests := map[string]bool{
		"bars.csv":    true,
		"BARS.CSV":    true,
		"bars.xlsx":   true,
		"bars.xls":    false,
		"bars.json":   false,
		"bars":        false,
		"~$bars.xlsx": false,
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, IsSupported(name))
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2024-02.csv", "date\n")
	writeFile(t, dir, "2024-01.xlsx", "")
	writeFile(t, dir, "readme.md", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0755))

	t.Run("directory", func(t *testing.T) {
		files, err := Discover(dir)
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "2024-01.xlsx", files[0].Name)
		assert.Equal(t, "2024-02.csv", files[1].Name)
	})

	t.Run("single file", func(t *testing.T) {
		files, err := Discover(filepath.Join(dir, "2024-02.csv"))
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, int64(5), files[0].Size)
	})

	t.Run("unsupported file", func(t *testing.T) {
		_, err := Discover(filepath.Join(dir, "readme.md"))
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, errors.ErrTypeValidation, appErr.Type)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := Discover(filepath.Join(dir, "absent"))
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, errors.ErrTypeNotFound, appErr.Type)
	})

	t.Run("empty directory", func(t *testing.T) {
		files, err := Discover(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}
