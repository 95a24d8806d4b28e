package storage

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/memopad/pkg/memo"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Warnf(format string, v ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
}

type failingKV struct{ err error }

func (f failingKV) Get(string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Set(string, string) error         { return f.err }

func TestAdapterLoadAll_Absent(t *testing.T) {
	a := NewAdapter(NewMemoryKV(), "", nil)

	memos, err := a.LoadAll()
	require.NoError(t, err)
	assert.NotNil(t, memos)
	assert.Empty(t, memos)
	assert.Equal(t, DefaultKey, a.Key())
}

func TestAdapterLoadAll_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{{not json"},
		{"object instead of array", `{"id": 1}`},
		{"string instead of array", `"memos"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryKV()
			require.NoError(t, kv.Set(DefaultKey, tt.raw))
			logger := &recordingLogger{}
			a := NewAdapter(kv, DefaultKey, logger)

			memos, err := a.LoadAll()
			require.NoError(t, err)
			assert.Empty(t, memos)
			require.Len(t, logger.warnings, 1)
			assert.Contains(t, logger.warnings[0], "malformed")
		})
	}
}

func TestAdapterLoadAll_KeepsOddEntries(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		check func(t *testing.T, m memo.Memo)
	}{
		{"bad timestamp", `[{"id":1,"content":"x","createdAt":"yesterday"}]`, func(t *testing.T, m memo.Memo) {
			assert.Equal(t, int64(1), m.ID)
			assert.True(t, m.CreatedAt.IsZero())
			assert.Equal(t, "yesterday", m.RawCreatedAt)
		}},
		{"bad updatedAt", `[{"id":1,"content":"x","createdAt":"2024-01-02T03:04:05.000Z","updatedAt":"soon"}]`, func(t *testing.T, m memo.Memo) {
			assert.False(t, m.CreatedAt.IsZero())
			assert.Nil(t, m.UpdatedAt)
			assert.Equal(t, "soon", m.RawUpdatedAt)
			assert.True(t, m.Edited())
		}},
		{"missing createdAt", `[{"id":2,"content":"legacy"}]`, func(t *testing.T, m memo.Memo) {
			assert.Equal(t, "legacy", m.Content)
			assert.Empty(t, m.RawCreatedAt)
		}},
		{"string id", `[{"id":"1","content":"x","createdAt":"2024-01-02T03:04:05.000Z"}]`, func(t *testing.T, m memo.Memo) {
			assert.Equal(t, int64(1), m.ID)
		}},
		{"fractional id", `[{"id":1.5,"content":"x","createdAt":"2024-01-02T03:04:05.000Z"}]`, func(t *testing.T, m memo.Memo) {
			assert.Equal(t, int64(1), m.ID)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryKV()
			require.NoError(t, kv.Set(DefaultKey, tt.raw))

			memos, err := NewAdapter(kv, "", &recordingLogger{}).LoadAll()
			require.NoError(t, err)
			require.Len(t, memos, 1)
			tt.check(t, memos[0])
		})
	}
}

func TestAdapterLoadAll_SkipsNonObjects(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(DefaultKey, `[null, 5, "x", {"id":3,"content":"ok","createdAt":"2024-01-02T03:04:05.000Z"}]`))
	logger := &recordingLogger{}

	memos, err := NewAdapter(kv, "", logger).LoadAll()
	require.NoError(t, err)
	require.Len(t, memos, 1)
	assert.Equal(t, "ok", memos[0].Content)
	assert.Len(t, logger.warnings, 3)
}

func TestAdapter_OddEntriesSurviveCreate(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(DefaultKey, `[{"id":1,"content":"keep me","createdAt":"2024-01-02T03:04:05.000Z"},`+
		`{"id":2,"content":"legacy","createdAt":"last week","updatedAt":"soon"}]`))
	repo := memo.NewRepository(NewAdapter(kv, "", nil))

	_, err := repo.Create("new")
	require.NoError(t, err)

	raw, _, err := kv.Get(DefaultKey)
	require.NoError(t, err)
	assert.Contains(t, raw, `{"id":1,"content":"keep me","createdAt":"2024-01-02T03:04:05.000Z"}`)
	assert.Contains(t, raw, `{"id":2,"content":"legacy","createdAt":"last week","updatedAt":"soon"}`)

	memos, err := repo.List()
	require.NoError(t, err)
	require.Len(t, memos, 3)

	updated, err := repo.Update(2, "legacy, edited")
	require.NoError(t, err)
	require.NotNil(t, updated.UpdatedAt)
	assert.Empty(t, updated.RawUpdatedAt)
	assert.Equal(t, "last week", updated.RawCreatedAt)
}

func TestAdapterLoadAll_MediumError(t *testing.T) {
	boom := errors.New("disk on fire")
	a := NewAdapter(failingKV{err: boom}, "", nil)

	_, err := a.LoadAll()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	err = a.SaveAll(nil)
	assert.ErrorIs(t, err, boom)
}

func TestAdapterLoadAll_BrowserData(t *testing.T) {
	kv := NewMemoryKV()
	raw := `[{"id":1700000000000,"content":"buy milk","createdAt":"2023-11-14T22:13:20.000Z"},` +
		`{"id":1700000000001,"content":"call mom","createdAt":"2023-11-14T22:13:20.001Z","updatedAt":"2023-11-15T08:00:00.5Z"}]`
	require.NoError(t, kv.Set(DefaultKey, raw))

	memos, err := NewAdapter(kv, "", nil).LoadAll()
	require.NoError(t, err)
	require.Len(t, memos, 2)

	assert.Equal(t, int64(1700000000000), memos[0].ID)
	assert.Equal(t, "buy milk", memos[0].Content)
	assert.False(t, memos[0].Edited())

	assert.Equal(t, "call mom", memos[1].Content)
	require.NotNil(t, memos[1].UpdatedAt)
	assert.Equal(t, 500*time.Millisecond, time.Duration(memos[1].UpdatedAt.Nanosecond()))
}

func TestAdapterSaveAll_Format(t *testing.T) {
	kv := NewMemoryKV()
	a := NewAdapter(kv, "notes", nil)

	created := time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
	updated := created.Add(time.Hour)
	err := a.SaveAll([]memo.Memo{
		{ID: 1, Content: "a", CreatedAt: created},
		{ID: 2, Content: "b", CreatedAt: created, UpdatedAt: &updated},
	})
	require.NoError(t, err)

	raw, ok, err := kv.Get("notes")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[
		{"id":1,"content":"a","createdAt":"2024-01-02T03:04:05.006Z"},
		{"id":2,"content":"b","createdAt":"2024-01-02T03:04:05.006Z","updatedAt":"2024-01-02T04:04:05.006Z"}
	]`, raw)
}

func TestAdapterSaveAll_EmptyList(t *testing.T) {
	kv := NewMemoryKV()
	a := NewAdapter(kv, "", nil)

	require.NoError(t, a.SaveAll(nil))
	raw, ok, err := kv.Get(DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestAdapterRoundTrip(t *testing.T) {
	a := NewAdapter(NewMemoryKV(), "", nil)
	created := memo.Stamp(time.Now())
	updated := created.Add(time.Minute)
	in := []memo.Memo{
		{ID: 10, Content: "first", CreatedAt: created},
		{ID: 11, Content: "second\nline", CreatedAt: created, UpdatedAt: &updated},
	}

	require.NoError(t, a.SaveAll(in))
	out, err := a.LoadAll()
	require.NoError(t, err)
	require.Len(t, out, 2)
	for i := range in {
		assert.Equal(t, in[i].ID, out[i].ID)
		assert.Equal(t, in[i].Content, out[i].Content)
		assert.True(t, in[i].CreatedAt.Equal(out[i].CreatedAt))
	}
	assert.Nil(t, out[0].UpdatedAt)
	require.NotNil(t, out[1].UpdatedAt)
	assert.True(t, updated.Equal(*out[1].UpdatedAt))
}
