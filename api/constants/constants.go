package constants

// Content Types
const (
	ContentTypeJSON = "application/json"
	ContentTypePDF  = "application/pdf"
	HeaderContentType = "Content-Type"
)

// Date formats
const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
	DateFormatAlt  = "02-01-2006"
	MonthLabel     = "Jan'06"
)

// Response keys
const (
	KeySuccess  = "success"
	KeyError    = "error"
	KeyUploadID = "upload_id"
	KeySheets   = "sheets"
	KeyResults  = "results"
)
