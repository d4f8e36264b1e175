package operations

import (
	"time"

	"openrange/pkg/contracts/domain"
)

// Step identifiers
const (
	StepIDLoad      = "load"
	StepIDNormalize = "normalize"
	StepIDSeries    = "series"
	StepIDFeatures  = "features"
	StepIDSummary   = "summary"
	StepIDExport    = "export"
)

// Step names
const (
	StepNameLoad      = "Input Loading"
	StepNameNormalize = "Bar Normalization"
	StepNameSeries    = "Series Building"
	StepNameFeatures  = "Daily Features"
	StepNameSummary   = "Summary Statistics"
	StepNameExport    = "Export"
)

// Default timeouts
const (
	DefaultStepTimeout   = 5 * time.Minute
	DefaultLoadTimeout   = 10 * time.Minute
	DefaultExportTimeout = 10 * time.Minute
)

// OperationRequest describes one batch run. Rows, when set, are used
// instead of reading InputPath.
type OperationRequest struct {
	ID        string          `json:"id"`
	InputPath string          `json:"input_path,omitempty"`
	Rows      []domain.RawRow `json:"-"`
}

// OperationResponse represents the outcome of a run
type OperationResponse struct {
	ID       string                `json:"id"`
	Status   OperationStatusValue  `json:"status"`
	Duration time.Duration         `json:"duration"`
	Steps    map[string]*StepState `json:"steps"`
	Error    string                `json:"error,omitempty"`
	Batch    *Batch                `json:"-"`
}
