package gridview

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/gridview/codec"
	"github.com/hupe1980/gridview/internal/blockio"
	"github.com/hupe1980/gridview/internal/rowindex"
)

// Snapshot layout:
//
//	[8]byte magic | uint8 version | uint8 compression |
//	uint16 codec name length | codec name | one blockio block (payload)
//
// The header makes snapshots self-describing: the codec is selected by its
// recorded name on load, so changing codec.Default never breaks old files.
var snapshotMagic = [8]byte{'G', 'V', 'S', 'N', 'A', 'P', '0', '1'}

const snapshotVersion = 1

var (
	// ErrBadSnapshot marks a stream that is not a gridview snapshot.
	ErrBadSnapshot = errors.New("gridview: bad snapshot header")
)

// ErrUnknownCodec indicates a snapshot written with a codec this build does
// not provide.
type ErrUnknownCodec struct {
	Name string
}

func (e *ErrUnknownCodec) Error() string {
	return fmt.Sprintf("gridview: unknown snapshot codec %q", e.Name)
}

// SnapshotOptions configures a SaveSnapshot call.
type SnapshotOptions struct {
	// Compression selects the payload compression. Defaults to ZSTD.
	Compression blockio.Compression
}

type snapshotPayload struct {
	Index *rowindex.State `json:"index"`
}

// SaveSnapshot writes the dataset together with its derived row index
// (ordinals, sort keys, token lists) to w. A table restored from the
// snapshot skips all load-time derivation.
//
// Filter, search, sort and window state are not part of a snapshot; they
// are cheap to re-issue and belong to the session, not the data.
func (t *Table) SaveSnapshot(w io.Writer, optFns ...func(*SnapshotOptions)) error {
	start := time.Now()
	opts := SnapshotOptions{Compression: blockio.ZSTD}
	for _, fn := range optFns {
		fn(&opts)
	}

	err := t.saveSnapshot(w, opts)
	t.logger.LogSnapshot("save", t.index.Len(), err)
	t.metricsCollector.RecordSnapshot(time.Since(start), err)
	return err
}

func (t *Table) saveSnapshot(w io.Writer, opts SnapshotOptions) error {
	if !opts.Compression.Valid() {
		return fmt.Errorf("gridview: invalid snapshot compression %d", opts.Compression)
	}

	name := t.codec.Name()
	hdr := make([]byte, 0, len(snapshotMagic)+4+len(name))
	hdr = append(hdr, snapshotMagic[:]...)
	hdr = append(hdr, snapshotVersion, byte(opts.Compression))
	hdr = binary.LittleEndian.AppendUint16(hdr, uint16(len(name)))
	hdr = append(hdr, name...)
	if _, err := w.Write(hdr); err != nil {
		return err
	}

	payload, err := t.codec.Marshal(snapshotPayload{Index: t.index.State()})
	if err != nil {
		return fmt.Errorf("gridview: encode snapshot: %w", err)
	}
	return blockio.WriteBlock(w, payload, opts.Compression)
}

// LoadSnapshot replaces the dataset and its derived index from a snapshot
// stream, then recomputes the pipeline. Column sort and visibility state is
// untouched, mirroring LoadData.
func (t *Table) LoadSnapshot(r io.Reader) error {
	start := time.Now()
	err := t.loadSnapshot(r)
	t.logger.LogSnapshot("load", t.index.Len(), err)
	t.metricsCollector.RecordSnapshot(time.Since(start), err)
	return err
}

func (t *Table) loadSnapshot(r io.Reader) error {
	var fixed [10]byte // magic + version + compression
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return fmt.Errorf("%w: %w", ErrBadSnapshot, err)
	}
	if [8]byte(fixed[:8]) != snapshotMagic {
		return ErrBadSnapshot
	}
	if fixed[8] != snapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, fixed[8])
	}
	compression := blockio.Compression(fixed[9])
	if !compression.Valid() {
		return fmt.Errorf("%w: unknown compression %d", ErrBadSnapshot, fixed[9])
	}

	var nameLen [2]byte
	if _, err := io.ReadFull(r, nameLen[:]); err != nil {
		return fmt.Errorf("%w: %w", ErrBadSnapshot, err)
	}
	name := make([]byte, binary.LittleEndian.Uint16(nameLen[:]))
	if _, err := io.ReadFull(r, name); err != nil {
		return fmt.Errorf("%w: %w", ErrBadSnapshot, err)
	}
	c, ok := codec.ByName(string(name))
	if !ok {
		return &ErrUnknownCodec{Name: string(name)}
	}

	payload, err := blockio.ReadBlock(r, compression)
	if err != nil {
		return fmt.Errorf("gridview: read snapshot payload: %w", err)
	}

	var snap snapshotPayload
	if err := c.Unmarshal(payload, &snap); err != nil {
		return fmt.Errorf("gridview: decode snapshot: %w", err)
	}
	if snap.Index == nil {
		return fmt.Errorf("%w: missing index section", ErrBadSnapshot)
	}

	t.index.Restore(snap.Index)
	if t.win != nil {
		t.win.Invalidate()
	}
	return t.recompute(FacetData)
}
