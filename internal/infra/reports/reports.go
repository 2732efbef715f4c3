// Package reports stores generated CSV reports until an operator downloads them.
package reports

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown or malformed keys.
var ErrNotFound = errors.New("report not found")

// ContentType is the media type of every stored report.
const ContentType = "text/csv; charset=utf-8"

// Storage keeps report files addressed by an opaque key.
type Storage interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

var (
	keyPattern  = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}-[A-Za-z0-9._-]+$`)
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

const keyPrefixLen = 37

// NewKey builds a unique key that keeps name readable.
func NewKey(name string) string {
	clean := strings.Trim(unsafeChars.ReplaceAllString(strings.TrimSpace(name), "-"), "-.")
	if clean == "" {
		clean = "report.csv"
	}
	return uuid.NewString() + "-" + clean
}

// ValidKey reports whether key could have been produced by NewKey.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// FileName recovers the download name from a key.
func FileName(key string) string {
	if !ValidKey(key) {
		return "report.csv"
	}
	return key[keyPrefixLen:]
}
