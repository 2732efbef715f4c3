package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FileStamp formats t for use inside generated file names.
func FileStamp(t time.Time) string {
	return t.UTC().Format("2006-01-02_15-04-05")
}
