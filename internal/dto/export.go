package dto

// ExportFormat selects the study plan renderer.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// PlanExportQuery captures the export query string.
type PlanExportQuery struct {
	Format ExportFormat `form:"format" validate:"omitempty,oneof=csv pdf"`
}

// ExportFile is a rendered document ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
