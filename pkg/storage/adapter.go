package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/entrhq/memopad/pkg/memo"
)

// DefaultKey is the key the memo list is stored under.
const DefaultKey = "memos"

// Logger receives warnings about degraded reads.
type Logger interface {
	Warnf(format string, v ...interface{})
}

// record is the written shape of a memo.
type record struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Adapter stores the memo list as a JSON array under a single key.
// It implements memo.Store.
type Adapter struct {
	kv     KV
	key    string
	logger Logger
}

// NewAdapter creates an adapter over kv. An empty key selects DefaultKey.
// logger may be nil.
func NewAdapter(kv KV, key string, logger Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{kv: kv, key: key, logger: logger}
}

// Key returns the key the list is stored under.
func (a *Adapter) Key() string {
	return a.key
}

// LoadAll reads the memo list.
//
// An absent key yields an empty list. A value that is not a JSON array is
// logged and also yields an empty list with a nil error. Individual entries
// with odd fields are kept. Only a failure of the underlying medium is
// returned as an error.
func (a *Adapter) LoadAll() ([]memo.Memo, error) {
	raw, ok, err := a.kv.Get(a.key)
	if err != nil {
		return nil, fmt.Errorf("storage: load %q: %w", a.key, err)
	}
	if !ok || raw == "" {
		return []memo.Memo{}, nil
	}

	memos, err := a.decode(raw)
	if err != nil {
		a.warnf("malformed memo data under %q, using empty list: %v", a.key, err)
		return []memo.Memo{}, nil
	}
	return memos, nil
}

// SaveAll overwrites the stored list with memos.
func (a *Adapter) SaveAll(memos []memo.Memo) error {
	raw, err := encode(memos)
	if err != nil {
		return fmt.Errorf("storage: encode memos: %w", err)
	}
	if err := a.kv.Set(a.key, raw); err != nil {
		return fmt.Errorf("storage: save %q: %w", a.key, err)
	}
	return nil
}

func (a *Adapter) warnf(format string, v ...interface{}) {
	if a.logger != nil {
		a.logger.Warnf(format, v...)
	}
}

// storedRecord is the lenient read shape of a memo. Fields are decoded one by
// one so a single odd value never costs the rest of the list.
type storedRecord struct {
	ID        json.RawMessage `json:"id"`
	Content   json.RawMessage `json:"content"`
	CreatedAt json.RawMessage `json:"createdAt"`
	UpdatedAt json.RawMessage `json:"updatedAt"`
}

// decode parses the stored list. Only a value that is not a JSON array is an
// error. Entries that are not objects are skipped; fields that cannot be
// interpreted are kept as well as possible and logged.
func (a *Adapter) decode(raw string) ([]memo.Memo, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}

	memos := make([]memo.Memo, 0, len(entries))
	for i, entry := range entries {
		entry = bytes.TrimSpace(entry)
		if len(entry) == 0 || entry[0] != '{' {
			a.warnf("entry %d under %q is not a memo object, skipping", i, a.key)
			continue
		}

		var r storedRecord
		if err := json.Unmarshal(entry, &r); err != nil {
			a.warnf("entry %d under %q is not a memo object, skipping: %v", i, a.key, err)
			continue
		}

		m := memo.Memo{Content: textOf(r.Content)}

		id, ok := parseID(r.ID)
		if !ok {
			a.warnf("entry %d under %q has unreadable id %s", i, a.key, string(r.ID))
		}
		m.ID = id

		if createdAt, err := memo.ParseTimestamp(textOf(r.CreatedAt)); err == nil {
			m.CreatedAt = createdAt
		} else {
			a.warnf("entry %d under %q: createdAt kept as stored: %v", i, a.key, err)
			m.RawCreatedAt = textOf(r.CreatedAt)
		}

		if updated := textOf(r.UpdatedAt); updated != "" {
			if updatedAt, err := memo.ParseTimestamp(updated); err == nil {
				m.UpdatedAt = &updatedAt
			} else {
				a.warnf("entry %d under %q: updatedAt kept as stored: %v", i, a.key, err)
				m.RawUpdatedAt = updated
			}
		}

		memos = append(memos, m)
	}
	return memos, nil
}

// textOf returns a JSON string's value, or the raw JSON text of any other
// value. Absent and null values are empty.
func textOf(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// parseID accepts a JSON number or a numeric string. Fractions are truncated.
func parseID(raw json.RawMessage) (int64, bool) {
	text := textOf(raw)
	if id, err := strconv.ParseInt(text, 10, 64); err == nil {
		return id, true
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return int64(f), true
	}
	return 0, false
}

func encode(memos []memo.Memo) (string, error) {
	records := make([]record, 0, len(memos))
	for _, m := range memos {
		r := record{
			ID:        m.ID,
			Content:   m.Content,
			CreatedAt: m.RawCreatedAt,
			UpdatedAt: m.RawUpdatedAt,
		}
		if !m.CreatedAt.IsZero() {
			r.CreatedAt = memo.FormatTimestamp(m.CreatedAt)
		}
		if m.UpdatedAt != nil {
			r.UpdatedAt = memo.FormatTimestamp(*m.UpdatedAt)
		}
		records = append(records, r)
	}

	b, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
