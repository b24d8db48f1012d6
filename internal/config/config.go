package config

const (
	DefaultTimeZone = "Asia/Kolkata"

	// Upload retention
	DefaultUploadTTLMinutes  = 60
	DefaultRetentionSchedule = "*/5 * * * *" // sweep expired uploads every 5 minutes

	// Upload parsing
	MaxUploadBytes = 32 << 20

	// Document export
	DefaultFontPath = "./fonts/DejaVuSans.ttf"
	ReportTitle     = "CPC Performance Report"
)
