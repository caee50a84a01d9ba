package constants

// Dataset lifecycle statuses
const (
	DatasetStatusUploaded   = "uploaded"
	DatasetStatusQueued     = "queued"
	DatasetStatusProcessing = "processing"
	DatasetStatusCompleted  = "completed"
	DatasetStatusFailed     = "failed"
)

// Dataset file types accepted at upload
const (
	FileTypeCSV  = "csv"
	FileTypeXLSX = "xlsx"
	FileTypeXLS  = "xls"
	FileTypeJSON = "json"
)

// Export formats
const (
	ExportFormatCSV  = "csv"
	ExportFormatJSON = "json"
	ExportFormatXLSX = "xlsx"
)
