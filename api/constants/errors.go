package constants

// Common error messages
const (
	ErrInvalidJSON                = "invalid json or missing fields"
	ErrMethodNotAllowed           = "Method Not Allowed"
	ErrFailedToParseMultipartForm = "failed to parse multipart form"
	ErrNoFileUploaded             = "no file found in upload"
	ErrUnsupportedFileType        = "unsupported file type, expected .csv, .xlsx or .xls"
	ErrUploadNotFound             = "upload not found or expired"
	ErrSheetNotFound              = "sheet not found in upload"
	ErrUploadIDRequired           = "upload_id required"
	ErrExportFailed               = "failed to build report document: "
	ErrEmptyWorkbook              = "uploaded file contains no readable sheets"
)
