package utils

import "time"

// DatetimeLayout renders as YYYY-MM-DD @ HH:MM.
const DatetimeLayout = "2006-01-02 @ 15:04"

// FormatDatetime formats a unix timestamp (seconds, UTC) for display.
func FormatDatetime(timestamp int64) string {
	return time.Unix(timestamp, 0).UTC().Format(DatetimeLayout)
}
