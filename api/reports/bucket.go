package reports

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"CPCPerform/api/constants"
)

// dateLayouts tries day-first interpretations before anything else, so an
// ambiguous 01-02-2024 reads as 1 February. ISO and textual forms follow.
var dateLayouts = []string{
	constants.DateFormatAlt,
	"02/01/2006",
	"2-1-2006",
	"2/1/2006",
	"02-01-06",
	"02/01/06",
	constants.DateFormat,
	"2006/01/02",
	"02-Jan-2006",
	"2-Jan-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	constants.DateTimeFormat,
	"02-01-2006 15:04:05",
	"2006-01-02T15:04:05",
}

// excelEpoch is day zero of the 1900 date system (the off-by-two lotus base).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParsePODate parses a raw date cell. Rows whose cell fails every layout (and
// the Excel serial fallback) are dropped by the caller, never errored.
func ParsePODate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// Excel sometimes hands over the underlying serial number.
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 59 && f < 200000 {
		return excelEpoch.AddDate(0, 0, int(f)), true
	}
	return time.Time{}, false
}

// DistinctBuckets returns the buckets actually present, sorted by year-month
// ascending. This ordered axis is authoritative for everything downstream;
// labels alone are never used for ordering.
func DistinctBuckets(records []Record) []MonthBucket {
	seen := make(map[MonthBucket]struct{})
	buckets := make([]MonthBucket, 0)
	for _, r := range records {
		if _, ok := seen[r.Bucket]; ok {
			continue
		}
		seen[r.Bucket] = struct{}{}
		buckets = append(buckets, r.Bucket)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Before(buckets[j]) })
	return buckets
}

// BucketLabels projects an ordered bucket axis to its display labels.
func BucketLabels(buckets []MonthBucket) []string {
	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label()
	}
	return labels
}
