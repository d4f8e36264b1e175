package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"openrange/internal/errors"
	"openrange/internal/files"
	"openrange/pkg/contracts/domain"
)

// FileValidator checks the input and output locations of a run
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger.With("component", "validation"),
	}
}

// ValidateInput checks that path is a readable supported file, or a
// directory holding at least one. It returns the number of input files.
func (v *FileValidator) ValidateInput(path string) (int, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input does not exist", slog.String("path", path))
		return 0, errors.NewNotFoundError(fmt.Sprintf("input %s", path))
	}
	if err != nil {
		return 0, errors.NewStorageError("failed to stat input", err).WithContext("path", path)
	}

	if !info.IsDir() {
		if err := v.ValidateFile(path); err != nil {
			return 0, err
		}
		return 1, nil
	}

	inputs, err := files.Discover(path)
	if err != nil {
		return 0, err
	}
	if len(inputs) == 0 {
		v.logger.Error("No input files found", slog.String("directory", path))
		return 0, errors.NewAppValidationError(fmt.Sprintf("directory %s has no .csv or .xlsx files", path))
	}

	v.logger.Debug("Input directory validated",
		slog.String("directory", path),
		slog.Int("files_found", len(inputs)))
	return len(inputs), nil
}

// ValidateFile checks that a file exists, is readable and is a supported input
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return errors.NewNotFoundError(fmt.Sprintf("file %s", path))
	}
	if err != nil {
		return errors.NewStorageError("failed to stat file", err).WithContext("path", path)
	}
	if info.IsDir() {
		return errors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path))
	}
	if !files.IsSupported(path) {
		return errors.NewAppValidationError(
			fmt.Sprintf("file %s has unsupported extension %q", path, filepath.Ext(path)))
	}

	file, err := os.Open(path)
	if err != nil {
		return errors.NewStorageError("file is not readable", err).WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures the output directory exists and is writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError("failed to create output directory", err).WithContext("path", dir)
	}

	probe, err := os.CreateTemp(dir, ".write_test*")
	if err != nil {
		return errors.NewStorageError("output directory is not writable", err).WithContext("path", dir)
	}
	probe.Close()
	os.Remove(probe.Name())

	return nil
}

// ValidateDailyRow checks the label invariants of a produced row.
func ValidateDailyRow(row domain.DailyRow) error {
	switch row.DirectionPeak {
	case -1, 0, 1:
	default:
		return errors.NewAppValidationError(fmt.Sprintf("direction_peak %d out of range", row.DirectionPeak))
	}
	if row.Hit5MinDir != 0 && row.Hit5MinDir != 1 {
		return errors.NewAppValidationError(fmt.Sprintf("hit_5min_dir %d out of range", row.Hit5MinDir))
	}
	if row.Hit5MinDir == 1 && row.DirectionPeak == 0 {
		return errors.NewAppValidationError("hit_5min_dir set without a direction")
	}
	switch row.TimeFirstTouch {
	case domain.FirstTouchNone, domain.FirstTouchUp, domain.FirstTouchDown:
	default:
		return errors.NewAppValidationError(fmt.Sprintf("time_first_touch %q unknown", row.TimeFirstTouch))
	}
	return nil
}
