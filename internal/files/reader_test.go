package files

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"openrange/internal/errors"
	"openrange/pkg/contracts/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func value(row domain.RawRow, name string) string {
	for _, f := range row {
		if f.Name == name {
			return f.Value
		}
	}
	return "<absent>"
}

func TestReadCSV(t *testing.T) {
	content := "\xEF\xBB\xBFdate,time,open,close\n" +
		"20240102,09:30:00,100,100.5\n" +
		"\n" +
		",,,\n" +
		"20240102,09:31:00,100.5\n"

	rows, err := ReadCSV(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "date", rows[0][0].Name)
	assert.Equal(t, "100.5", value(rows[0], "close"))
	assert.Equal(t, "", value(rows[1], "close"))
	assert.Equal(t, "09:31:00", value(rows[1], "time"))
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("date,open\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReader_ReadFile_XLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bars.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Date", "Time", "Open", "Volume"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"20240102", "09:30:00", "100", "1500"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"20240102", "09:31:00", "101"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := NewReader(nil).ReadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1500", value(rows[0], "Volume"))
	assert.Equal(t, "", value(rows[1], "Volume"))
}

func TestReader_ReadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", "date,open\n20240103,2\n")
	writeFile(t, dir, "a.csv", "date,open\n20240102,1\n")
	writeFile(t, dir, "notes.txt", "ignored")

	inputs, err := Discover(dir)
	require.NoError(t, err)

	rows, err := NewReader(nil).ReadAll(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", value(rows[0], "open"))
	assert.Equal(t, "2", value(rows[1], "open"))
}

func TestReader_ReadAll_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.csv", "date\n20240102\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewReader(nil).ReadAll(ctx, []FileInfo{{Path: path}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReader_ReadFile_Errors(t *testing.T) {
	r := NewReader(nil)

	_, err := r.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrTypeStorage, appErr.Type)

	_, err = r.ReadFile(context.Background(), "bars.json")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrTypeValidation, appErr.Type)

	bad := writeFile(t, t.TempDir(), "bad.csv", "date,open\n\"unterminated,1\n")
	_, err = r.ReadFile(context.Background(), bad)
	assert.Error(t, err)
}
