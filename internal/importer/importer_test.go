// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package importer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/roots-import/internal/decode"
	"github.com/pdiddy/roots-import/internal/store"
	"github.com/pdiddy/roots-import/pkg/types"
)

// --- test helpers ---

type insertCall struct {
	root    types.Root
	quality string
}

// fakeSink records inserts. Keys already seen return ErrDuplicate;
// failOn makes a specific word fail with a non-duplicate error.
type fakeSink struct {
	calls  []insertCall
	seen   map[types.Root]bool
	failOn string
}

func (f *fakeSink) Insert(_ context.Context, root types.Root, quality string) error {
	if root.Word == f.failOn && f.failOn != "" {
		return errors.New("disk full")
	}
	if f.seen == nil {
		f.seen = map[types.Root]bool{}
	}
	if f.seen[root] {
		return fmt.Errorf("inserting %s: %w", root, store.ErrDuplicate)
	}
	f.seen[root] = true
	f.calls = append(f.calls, insertCall{root: root, quality: quality})
	return nil
}

func newImporter(t *testing.T, kind types.Kind, strict bool, sink store.Sink) (*Importer, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	im, err := New(types.ImportConfig{Kind: kind, Quality: "gold", Strict: strict}, sink, zap.New(core))
	require.NoError(t, err)
	return im, logs
}

// --- tests ---

func TestNewUnsupportedKind(t *testing.T) {
	sink := &fakeSink{}
	im, err := New(types.ImportConfig{Kind: "bogus-kind", Quality: "gold"}, sink, nil)
	require.ErrorIs(t, err, types.ErrUnsupportedKind)
	assert.Nil(t, im)
	assert.Empty(t, sink.calls)
}

func TestRunMorphemes(t *testing.T) {
	sink := &fakeSink{}
	im, logs := newImporter(t, types.KindMorphemes, false, sink)

	input := strings.Join([]string{
		"  cat\troot:ROOT/s:SUF  ",
		"",
		"dog\ts:SUF",
		"cat\troot:ROOT/re:ROOT",
	}, "\n")

	summary, err := im.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, Summary{Lines: 4, Blank: 1, Records: 3, Inserted: 2, Duplicates: 1}, summary)
	assert.Equal(t, []insertCall{
		{root: types.Root{Word: "cat", Root: "root", Index: 0}, quality: "gold"},
		{root: types.Root{Word: "cat", Root: "re", Index: 1}, quality: "gold"},
	}, sink.calls)

	dups := logs.FilterMessage("Duplicate key").All()
	require.Len(t, dups, 1)
	assert.Equal(t, zapcore.WarnLevel, dups[0].Level)
	assert.Equal(t, int64(4), dups[0].ContextMap()["line"])
	assert.Equal(t, 3, logs.FilterMessage("Decoding line").Len())
}

func TestRunPSQL(t *testing.T) {
	sink := &fakeSink{}
	im, logs := newImporter(t, types.KindPSQL, false, sink)

	summary, err := im.Run(context.Background(), strings.NewReader("run | {running,ran,runs}\ngo | {}\n"))
	require.NoError(t, err)

	assert.Equal(t, Summary{Lines: 2, Records: 4, Inserted: 4}, summary)
	require.Len(t, sink.calls, 4)
	for _, c := range sink.calls {
		assert.Equal(t, types.IndexUntracked, c.root.Index)
	}
	assert.Equal(t, "runs", sink.calls[2].root.Word)
	assert.Equal(t, types.Root{Word: "", Root: "go", Index: -1}, sink.calls[3].root)
	assert.Equal(t, 1, logs.FilterMessage("Empty word or root").Len())
}

func TestRunSkipsMalformedLines(t *testing.T) {
	sink := &fakeSink{}
	im, logs := newImporter(t, types.KindMorphemes, false, sink)

	input := "cat root:ROOT\ndog\tdog:ROOT\nbird\tb\n\xff\xfe\tx:ROOT\n"
	summary, err := im.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, Summary{Lines: 4, Malformed: 3, Records: 1, Inserted: 1}, summary)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, "dog", sink.calls[0].root.Word)

	skipped := logs.FilterMessage("Skipping malformed line").All()
	require.Len(t, skipped, 3)
	assert.Equal(t, int64(1), skipped[0].ContextMap()["line"])
	assert.Equal(t, int64(3), skipped[1].ContextMap()["line"])
	assert.Contains(t, skipped[2].ContextMap()["error"], "invalid UTF-8")
}

func TestRunStrictAbortsOnMalformedLine(t *testing.T) {
	sink := &fakeSink{}
	im, _ := newImporter(t, types.KindPSQL, true, sink)

	input := "run | {ran}\nno separator here\ngo | {went}\n"
	summary, err := im.Run(context.Background(), strings.NewReader(input))
	require.Error(t, err)

	var lerr *LineError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, 2, lerr.Line)

	var perr *decode.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, types.KindPSQL, perr.Kind)

	assert.Equal(t, Summary{Lines: 2, Malformed: 1, Records: 1, Inserted: 1}, summary)
	assert.Len(t, sink.calls, 1)
}

func TestRunAbortsOnSinkFailure(t *testing.T) {
	sink := &fakeSink{failOn: "ran"}
	im, _ := newImporter(t, types.KindPSQL, false, sink)

	summary, err := im.Run(context.Background(), strings.NewReader("run | {running,ran,runs}\ngo | {went}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1: disk full")
	assert.False(t, errors.Is(err, store.ErrDuplicate))

	assert.Equal(t, Summary{Lines: 1, Records: 2, Inserted: 1}, summary)
}

func TestRunCanceledContext(t *testing.T) {
	sink := &fakeSink{}
	im, _ := newImporter(t, types.KindPSQL, false, sink)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := im.Run(ctx, strings.NewReader("run | {ran}\n"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sink.calls)
}

func TestRunLineTooLong(t *testing.T) {
	sink := &fakeSink{}
	im, _ := newImporter(t, types.KindPSQL, false, sink)

	input := "run | {ran}\n" + strings.Repeat("x", maxLineSize+1) + "\n"
	summary, err := im.Run(context.Background(), strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading input after line 1")
	assert.Equal(t, 1, summary.Inserted)
}

func TestRunIntoSQLiteStore(t *testing.T) {
	s, err := store.Open(types.StoreConfig{Database: filepath.Join(t.TempDir(), "roots.db")})
	require.NoError(t, err)
	defer s.Close()

	im, err := New(types.ImportConfig{Kind: types.KindMorphemes, Quality: "q1"}, s, zap.NewNop())
	require.NoError(t, err)

	input := "cat\troot:ROOT/re:ROOT\ncat\troot:ROOT\ndog\tdog:ROOT/s:SUF\n"
	summary, err := im.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Summary{Lines: 3, Records: 4, Inserted: 3, Duplicates: 1}, summary)

	got, err := s.Query(context.Background(), store.QueryOptions{Word: "cat"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "re", got[0].Root.Root)
	assert.Equal(t, 1, got[0].Index)
	assert.Equal(t, "q1", got[0].Quality)
}

func TestRunWarnsOnEmptyRoot(t *testing.T) {
	tests := []struct {
		name  string
		kind  types.Kind
		input string
		want  []types.Root
	}{
		{
			name:  "psql with empty root",
			kind:  types.KindPSQL,
			input: " | {a,b}\n",
			want: []types.Root{
				{Word: "a", Root: "", Index: -1},
				{Word: "b", Root: "", Index: -1},
			},
		},
		{
			name:  "morphemes with empty root text",
			kind:  types.KindMorphemes,
			input: "cat\t:ROOT\n",
			want:  []types.Root{{Word: "cat", Root: "", Index: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &fakeSink{}
			im, logs := newImporter(t, tt.kind, false, sink)

			summary, err := im.Run(context.Background(), strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), summary.Inserted)

			warns := logs.FilterMessage("Empty word or root").All()
			require.Len(t, warns, len(tt.want))
			for i, w := range warns {
				assert.Equal(t, zapcore.WarnLevel, w.Level)
				assert.Equal(t, tt.want[i].Word, w.ContextMap()["word"])
				assert.Equal(t, "", w.ContextMap()["root"])
				assert.Equal(t, int64(1), w.ContextMap()["line"])
			}
		})
	}
}

func TestRunLogsEveryLineAtInfo(t *testing.T) {
	sink := &fakeSink{}
	core, logs := observer.New(zapcore.InfoLevel)
	im, err := New(types.ImportConfig{Kind: types.KindPSQL, Quality: "gold"}, sink, zap.New(core))
	require.NoError(t, err)

	_, err = im.Run(context.Background(), strings.NewReader("run | {ran}\ngo | {went}\n"))
	require.NoError(t, err)

	lines := logs.FilterMessage("Decoding line").All()
	require.Len(t, lines, 2)
	assert.Equal(t, "go | {went}", lines[1].ContextMap()["text"])
}
