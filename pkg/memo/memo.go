package memo

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// TimestampLayout is the layout used when memo timestamps are persisted.
// It matches the ISO-8601 form produced by browsers (millisecond precision, UTC).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

var (
	// ErrEmptyContent is returned when memo content is empty after trimming.
	ErrEmptyContent = errors.New("memo: content cannot be empty")

	// ErrContentTooLong is returned when memo content exceeds the configured limit.
	ErrContentTooLong = errors.New("memo: content too long")

	// ErrNotFound is returned when an operation targets an id absent from the stored list.
	ErrNotFound = errors.New("memo: memo not found")
)

// Memo is a single user-authored text note.
type Memo struct {
	ID        int64      // Unique identifier, derived from creation time
	Content   string     // Trimmed, never empty
	CreatedAt time.Time  // Creation timestamp, immutable
	UpdatedAt *time.Time // Last edit timestamp, nil until the first edit

	// RawCreatedAt and RawUpdatedAt hold stored timestamp text that could not
	// be parsed. It is written back unchanged until a real value replaces it.
	RawCreatedAt string
	RawUpdatedAt string
}

// Edited reports whether the memo has been edited since creation.
func (m Memo) Edited() bool {
	return m.UpdatedAt != nil || m.RawUpdatedAt != ""
}

// ValidateContent trims content and checks it against the requirements.
// maxLen <= 0 disables the length check.
func ValidateContent(content string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrEmptyContent
	}

	if maxLen > 0 {
		if n := utf8.RuneCountInString(trimmed); n > maxLen {
			return "", fmt.Errorf("%w: %d characters (max %d)", ErrContentTooLong, n, maxLen)
		}
	}

	return trimmed, nil
}

// NextID returns an id for a memo created at now. The id is the creation time
// in Unix milliseconds unless that would collide with, or sort before, an id
// already present in existing; in that case it is one past the largest id.
func NextID(existing []Memo, now time.Time) int64 {
	id := now.UnixMilli()
	for _, m := range existing {
		if m.ID >= id {
			id = m.ID + 1
		}
	}
	return id
}

// Stamp normalizes t to the precision memos are persisted with.
func Stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts any RFC 3339 timestamp, with or without fractional seconds.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("memo: invalid timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// find returns the index of the memo with id, or -1.
func find(memos []Memo, id int64) int {
	for i, m := range memos {
		if m.ID == id {
			return i
		}
	}
	return -1
}
