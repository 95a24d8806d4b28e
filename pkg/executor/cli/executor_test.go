package cli

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/memopad/pkg/controller"
	"github.com/entrhq/memopad/pkg/memo"
	"github.com/entrhq/memopad/pkg/storage"
)

type fakeClipboard struct{ text string }

func (c *fakeClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

// run executes script against repo and returns the output.
func run(t *testing.T, repo *memo.Repository, script string) string {
	t.Helper()
	var out bytes.Buffer
	ctl := controller.New(repo, nil, controller.WithClipboard(&fakeClipboard{}))
	e := NewExecutor(ctl, repo, WithReader(strings.NewReader(script)), WithWriter(&out))
	require.NoError(t, e.Run(context.Background()))
	return out.String()
}

func newRepo() *memo.Repository {
	return memo.NewRepository(storage.NewAdapter(storage.NewMemoryKV(), "", nil))
}

func onlyMemo(t *testing.T, repo *memo.Repository) memo.Memo {
	t.Helper()
	memos, err := repo.List()
	require.NoError(t, err)
	require.Len(t, memos, 1)
	return memos[0]
}

func TestRun_StartsWithPlaceholder(t *testing.T) {
	out := run(t, newRepo(), "")
	assert.Contains(t, out, "No memos yet.")
}

func TestRun_Add(t *testing.T) {
	repo := newRepo()
	out := run(t, repo, "add buy milk\n")

	assert.Contains(t, out, "✓ Memo saved!")
	assert.Contains(t, out, "    buy milk")
	assert.Equal(t, "buy milk", onlyMemo(t, repo).Content)
}

func TestRun_AddEmpty(t *testing.T) {
	repo := newRepo()
	out := run(t, repo, "add    \n")

	assert.Contains(t, out, "! Memo content is empty.")
	memos, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, memos)
}

func TestRun_Edit(t *testing.T) {
	repo := newRepo()
	m, err := repo.Create("a")
	require.NoError(t, err)

	out := run(t, repo, "edit "+itoa(m.ID)+"\nb\n")

	assert.Contains(t, out, "Current content:")
	assert.Contains(t, out, "✓ Memo updated!")
	assert.Contains(t, out, "(edited ")
	got := onlyMemo(t, repo)
	assert.Equal(t, "b", got.Content)
	assert.Equal(t, m.ID, got.ID)
}

func TestRun_EditEmptyStaysInEditMode(t *testing.T) {
	repo := newRepo()
	m, err := repo.Create("a")
	require.NoError(t, err)

	out := run(t, repo, "edit "+itoa(m.ID)+"\n  \nc\n")

	assert.Contains(t, out, "! Memo content is empty.")
	assert.Contains(t, out, "✓ Memo updated!")
	assert.Equal(t, "c", onlyMemo(t, repo).Content)
}

func TestRun_EditCancel(t *testing.T) {
	repo := newRepo()
	m, err := repo.Create("a")
	require.NoError(t, err)

	out := run(t, repo, "edit "+itoa(m.ID)+"\n/cancel\nlist\n")

	assert.Contains(t, out, "Edit cancelled.")
	assert.Equal(t, "a", onlyMemo(t, repo).Content)
}

func TestRun_EditNotFound(t *testing.T) {
	out := run(t, newRepo(), "edit 42\nadd x\n")

	assert.Contains(t, out, "✗ The memo to edit was not found.")
	assert.Contains(t, out, "✓ Memo saved!", "a failed open does not enter edit mode")
}

func TestRun_Delete(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		deleted bool
	}{
		{"yes", "y\n", true},
		{"full yes", "YES\n", true},
		{"no", "n\n", false},
		{"empty", "\n", false},
		{"end of input", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepo()
			m, err := repo.Create("a")
			require.NoError(t, err)

			out := run(t, repo, "delete "+itoa(m.ID)+"\n"+tt.answer)

			assert.Contains(t, out, "Delete this memo? [y/N]")
			memos, err := repo.List()
			require.NoError(t, err)
			if tt.deleted {
				assert.Empty(t, memos)
				assert.Contains(t, out, "✓ Memo deleted.")
			} else {
				assert.Len(t, memos, 1)
				assert.NotContains(t, out, "Memo deleted.")
			}
		})
	}
}

func TestRun_DeleteMissing(t *testing.T) {
	out := run(t, newRepo(), "delete 7\ny\n")
	assert.Contains(t, out, "✗ The memo to delete was not found.")
}

func TestRun_Find(t *testing.T) {
	repo := newRepo()
	for _, c := range []string{"buy milk", "call mom", "buy bread"} {
		_, err := repo.Create(c)
		require.NoError(t, err)
	}

	out := run(t, repo, "find buy*\n")
	_, after, _ := strings.Cut(out, "> ")
	assert.Contains(t, after, "buy milk")
	assert.Contains(t, after, "buy bread")
	assert.NotContains(t, after, "call mom")

	out = run(t, repo, "find zzz*\n")
	assert.Contains(t, out, "No matching memos.")
}

func TestRun_Copy(t *testing.T) {
	repo := newRepo()
	m, err := repo.Create("copy me")
	require.NoError(t, err)

	var out bytes.Buffer
	clip := &fakeClipboard{}
	ctl := controller.New(repo, nil, controller.WithClipboard(clip))
	e := NewExecutor(ctl, repo, WithReader(strings.NewReader("copy "+itoa(m.ID)+"\n")), WithWriter(&out))
	require.NoError(t, e.Run(context.Background()))

	assert.Equal(t, "copy me", clip.text)
	assert.Contains(t, out.String(), "✓ Memo copied to clipboard.")
}

func TestRun_BadInput(t *testing.T) {
	tests := []struct {
		script string
		want   string
	}{
		{"frobnicate\n", `Unknown command "frobnicate"`},
		{"edit\n", "A memo id is required."},
		{"delete abc\n", `Invalid memo id "abc".`},
		{"help\n", "find <glob>"},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.script), func(t *testing.T) {
			assert.Contains(t, run(t, newRepo(), tt.script), tt.want)
		})
	}
}

func TestRun_QuitStopsReading(t *testing.T) {
	repo := newRepo()
	run(t, repo, "quit\nadd never\n")

	memos, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, memos)
}

func TestRun_FinalLineWithoutNewline(t *testing.T) {
	repo := newRepo()
	run(t, repo, "add last")
	assert.Equal(t, "last", onlyMemo(t, repo).Content)
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := newRepo()
	ctl := controller.New(repo, nil)
	e := NewExecutor(ctl, repo, WithReader(strings.NewReader("add x\n")), WithWriter(&bytes.Buffer{}))
	assert.ErrorIs(t, e.Run(ctx), context.Canceled)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
