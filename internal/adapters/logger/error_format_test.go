package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fpdgen/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Empty(t, logger.CollectErrorEntriesExported(nil))
	})

	t.Run("plain error has no metadata", func(t *testing.T) {
		entries := logger.CollectErrorEntriesExported(errors.New("permission denied"))

		require.Len(t, entries, 1)
		assert.Equal(t, "permission denied", entries[0].Message)
		assert.Nil(t, entries[0].Metadata)
	})

	t.Run("zerr level carries empty metadata", func(t *testing.T) {
		entries := logger.CollectErrorEntriesExported(zerr.New("no platform specified"))

		require.Len(t, entries, 1)
		assert.Equal(t, "no platform specified", entries[0].Message)
		assert.Equal(t, map[string]any{}, entries[0].Metadata)
	})

	t.Run("wrapped chain is ordered outermost first", func(t *testing.T) {
		err := zerr.Wrap(
			zerr.Wrap(errors.New("unexpected EOF"), "failed to parse module descriptor"),
			"failed to load platform",
		)

		entries := logger.CollectErrorEntriesExported(err)

		messages := make([]string, 0, len(entries))
		for _, e := range entries {
			messages = append(messages, e.Message)
		}
		assert.Equal(t, []string{
			"failed to load platform",
			"failed to parse module descriptor",
			"unexpected EOF",
		}, messages)
		assert.Nil(t, entries[2].Metadata)
	})

	t.Run("repeated With merges into one level", func(t *testing.T) {
		err := zerr.With(zerr.With(zerr.New("unknown FV"), "fv", "FvRecovery"), "arch", "IA32")

		entries := logger.CollectErrorEntriesExported(err)

		require.Len(t, entries, 1)
		assert.Equal(t, map[string]any{"fv": "FvRecovery", "arch": "IA32"}, entries[0].Metadata)
	})

	t.Run("metadata stays on its own level", func(t *testing.T) {
		inner := zerr.With(zerr.New("duplicate module instance"), "guid", "1a1e4886")
		err := zerr.With(zerr.Wrap(inner, "failed to bind modules"), "platform", "Nt32")

		entries := logger.CollectErrorEntriesExported(err)

		require.Len(t, entries, 2)
		assert.Equal(t, map[string]any{"platform": "Nt32"}, entries[0].Metadata)
		assert.Equal(t, map[string]any{"guid": "1a1e4886"}, entries[1].Metadata)
	})
}

func TestFormatErrorEntries(t *testing.T) {
	tests := map[string]struct {
		entries []logger.ErrorEntry
		want    string
	}{
		"empty": {
			entries: nil,
			want:    "",
		},
		"main only": {
			entries: []logger.ErrorEntry{{Message: "generation failed"}},
			want:    "Error: generation failed",
		},
		"causes": {
			entries: []logger.ErrorEntry{
				{Message: "generation failed"},
				{Message: "failed to write manifest"},
				{Message: "disk full"},
			},
			want: "Error: generation failed\n\n  Caused by:\n    → failed to write manifest\n    → disk full",
		},
		"main metadata sorted by key": {
			entries: []logger.ErrorEntry{{
				Message:  "invalid build option",
				Metadata: map[string]any{"tool": "CC", "flag": "FLAGS", "arch": "IA32"},
			}},
			want: "Error: invalid build option\n       arch: IA32\n       flag: FLAGS\n       tool: CC",
		},
		"cause metadata indented under cause": {
			entries: []logger.ErrorEntry{
				{Message: "failed to load platform"},
				{Message: "module not found", Metadata: map[string]any{"guid": "1a1e4886"}},
			},
			want: "Error: failed to load platform\n\n  Caused by:\n    → module not found\n      guid: 1a1e4886",
		},
		"multiline main": {
			entries: []logger.ErrorEntry{{Message: "tool exited\nstatus 2"}},
			want:    "Error: tool exited\n       status 2",
		},
		"multiline cause": {
			entries: []logger.ErrorEntry{
				{Message: "image tool failed"},
				{Message: "GenFvImage: bad inf\nline 4"},
			},
			want: "Error: image tool failed\n\n  Caused by:\n    → GenFvImage: bad inf\n      line 4",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntriesExported(tt.entries))
		})
	}
}

func TestFormatCollectedChain(t *testing.T) {
	inner := zerr.With(zerr.New("unknown FV binding"), "fv", "FvMain")
	err := zerr.With(zerr.Wrap(inner, "failed to assign firmware volumes"), "module", "PcdPeim")

	got := logger.FormatErrorEntriesExported(logger.CollectErrorEntriesExported(err))

	assert.Equal(t, "Error: failed to assign firmware volumes\n"+
		"       module: PcdPeim\n\n"+
		"  Caused by:\n"+
		"    → unknown FV binding\n"+
		"      fv: FvMain", got)
}
