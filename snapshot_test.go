package gridview

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gridview/internal/blockio"
	"github.com/hupe1980/gridview/model"
)

func TestSnapshotRoundTrip(t *testing.T) {
	src := newTestTable(t)

	var buf bytes.Buffer
	require.NoError(t, src.SaveSnapshot(&buf))

	dst, err := New(testColumns(), WithLogger(NoopLogger()))
	require.NoError(t, err)
	require.NoError(t, dst.LoadSnapshot(&buf))

	require.Equal(t, src.VisibleCount(), dst.VisibleCount())
	assert.Equal(t, visibleNames(src), visibleNames(dst))

	t.Run("PipelineWorksOnRestoredIndex", func(t *testing.T) {
		dst.SetFilter(map[string]any{"city": "London"})
		dst.SetSort("name", model.SortAsc)
		assert.Equal(t, []string{"Ada Lovelace", "Alan Turing"}, visibleNames(dst))
	})

	t.Run("SearchUsesRestoredTokens", func(t *testing.T) {
		dst.ClearFilter()
		dst.SetSearch("grace")
		require.Equal(t, 1, dst.VisibleCount())
		assert.Equal(t, "Grace Hopper", dst.Visible()[0].Row["name"])
		dst.ClearSearch()
	})
}

func TestSnapshotCompressionVariants(t *testing.T) {
	src := newTestTable(t)

	for _, c := range []blockio.Compression{blockio.None, blockio.LZ4, blockio.ZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, src.SaveSnapshot(&buf, func(o *SnapshotOptions) {
				o.Compression = c
			}))

			dst, err := New(testColumns(), WithLogger(NoopLogger()))
			require.NoError(t, err)
			require.NoError(t, dst.LoadSnapshot(&buf))
			assert.Equal(t, 4, dst.VisibleCount())
		})
	}
}

func TestSaveSnapshotInvalidCompression(t *testing.T) {
	src := newTestTable(t)
	var buf bytes.Buffer
	err := src.SaveSnapshot(&buf, func(o *SnapshotOptions) {
		o.Compression = blockio.Compression(42)
	})
	assert.ErrorContains(t, err, "invalid snapshot compression")
}

func TestLoadSnapshotErrors(t *testing.T) {
	tbl := newTestTable(t)

	t.Run("Truncated", func(t *testing.T) {
		err := tbl.LoadSnapshot(bytes.NewReader([]byte("GVS")))
		assert.ErrorIs(t, err, ErrBadSnapshot)
	})

	t.Run("BadMagic", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, tbl.SaveSnapshot(&buf))
		raw := buf.Bytes()
		raw[0] = 'X'
		err := tbl.LoadSnapshot(bytes.NewReader(raw))
		assert.ErrorIs(t, err, ErrBadSnapshot)
	})

	t.Run("UnsupportedVersion", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, tbl.SaveSnapshot(&buf))
		raw := buf.Bytes()
		raw[8] = 99
		err := tbl.LoadSnapshot(bytes.NewReader(raw))
		assert.ErrorIs(t, err, ErrBadSnapshot)
	})

	t.Run("UnknownCodec", func(t *testing.T) {
		tbl2, err := New(testColumns(),
			WithLogger(NoopLogger()),
			WithCodec(fakeCodec{}),
		)
		require.NoError(t, err)
		require.NoError(t, tbl2.LoadData(testRows()))

		var buf bytes.Buffer
		require.NoError(t, tbl2.SaveSnapshot(&buf))

		var unknown *ErrUnknownCodec
		err = tbl.LoadSnapshot(&buf)
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "fake", unknown.Name)

		// The failed load leaves the prior dataset intact.
		assert.Equal(t, 4, tbl.VisibleCount())
	})
}

// fakeCodec writes valid JSON under an unregistered name.
type fakeCodec struct{}

func (fakeCodec) Name() string { return "fake" }

func (fakeCodec) Marshal(v any) ([]byte, error) { return []byte("{}"), nil }

func (fakeCodec) Unmarshal(data []byte, v any) error { return nil }
