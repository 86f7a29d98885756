package gridview

import (
	"regexp"
	"time"

	"github.com/hupe1980/gridview/codec"
	"github.com/hupe1980/gridview/internal/filter"
	"github.com/hupe1980/gridview/internal/rowindex"
	"github.com/hupe1980/gridview/internal/search"
	"github.com/hupe1980/gridview/internal/sorter"
	"github.com/hupe1980/gridview/model"
	"github.com/hupe1980/gridview/tokenize"
	"github.com/hupe1980/gridview/window"
)

// Table is the pipeline orchestrator. Any external mutation — load, filter,
// search, sort, column visibility — triggers filter, search and sort in that
// fixed order and atomically replaces the visible row set.
//
// A Table is not safe for concurrent use; all methods must be called from a
// single goroutine.
type Table struct {
	columns     []*model.Column
	colsByField map[string]*model.Column

	logger            *Logger
	metricsCollector  MetricsCollector
	tokenizer         tokenize.Tokenizer
	extraSearchFields []string
	codec             codec.Codec

	index      *rowindex.Index
	filterSpec filter.Spec
	query      search.Query
	sortSeq    int

	visible []int
	scores  map[int]float64

	win *window.Window

	listeners    map[int]func(Change)
	nextListener int
}

// New creates a Table over the given column descriptors. The table reads
// the descriptors on every recompute but does not own their lifecycle;
// their sort and visibility state persists across data reloads.
func New(columns []*model.Column, optFns ...Option) (*Table, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}

	opts := options{
		logger:           NewLogger(nil),
		metricsCollector: NoopMetricsCollector{},
		tokenizer:        tokenize.Default{},
		codec:            codec.Default,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	byField := make(map[string]*model.Column, len(columns))
	for _, col := range columns {
		if col.Field == "" {
			return nil, ErrNoColumns
		}
		if _, exists := byField[col.Field]; exists {
			return nil, &ErrDuplicateField{Field: col.Field}
		}
		byField[col.Field] = col
	}

	t := &Table{
		columns:           columns,
		colsByField:       byField,
		logger:            opts.logger,
		metricsCollector:  opts.metricsCollector,
		tokenizer:         opts.tokenizer,
		extraSearchFields: opts.extraSearchFields,
		codec:             opts.codec,
		index:             rowindex.New(),
		listeners:         make(map[int]func(Change)),
	}
	if opts.measurer != nil {
		t.win = window.New(opts.measurer, opts.windowOptFns...)
	}
	return t, nil
}

// LoadOptions configures a LoadData call.
type LoadOptions struct {
	// Append extends the dataset instead of replacing it. Appended rows
	// receive ordinals continuing from the prior maximum.
	Append bool
}

// LoadData replaces (or, with Append, extends) the dataset. Sort keys and
// token lists are derived once here; the cached row-height measurement is
// invalidated.
//
// A window.ErrZeroRowHeight error means windowing cannot function for this
// dataset; the table state itself is valid and the caller can fall back to
// non-windowed rendering.
func (t *Table) LoadData(rows []model.Row, optFns ...func(*LoadOptions)) error {
	start := time.Now()

	var opts LoadOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Append {
		t.index.Append(rows, t.columns, t.tokenizer)
	} else {
		t.index.Load(rows, t.columns, t.tokenizer)
	}
	if t.win != nil {
		t.win.Invalidate()
	}

	err := t.recompute(FacetData)
	t.logger.LogLoad(len(rows), opts.Append, err)
	t.metricsCollector.RecordLoad(len(rows), time.Since(start), err)
	return err
}

// SetFilter activates the declarative filter form: a row passes when every
// listed field satisfies its criterion. A nil map clears filtering. Any
// previously set filter function is discarded.
func (t *Table) SetFilter(fields map[string]any) {
	t.filterSpec = filter.Spec{Fields: fields}
	t.recomputeCommand(FacetFilter)
}

// SetFilterFunc activates the functional filter form; the predicate's return
// is authoritative and no field-by-field logic applies. A nil predicate
// clears filtering. Any previously set field criteria are discarded.
func (t *Table) SetFilterFunc(fn func(row model.Row, ordinal int) bool) {
	t.filterSpec = filter.Spec{Fn: fn}
	t.recomputeCommand(FacetFilter)
}

// ClearFilter removes any active filter.
func (t *Table) ClearFilter() {
	t.filterSpec = filter.Spec{}
	t.recomputeCommand(FacetFilter)
}

// SetSearch sets a literal, case-insensitive search query. The empty string
// disables search-based exclusion and scoring.
func (t *Table) SetSearch(query string) {
	t.query = search.Query{Text: query}
	t.recomputeCommand(FacetSearch)
}

// SetSearchPattern sets a pattern query. Each searchable field's raw
// stringified value is tested directly, bypassing tokenization. A nil
// pattern clears search.
func (t *Table) SetSearchPattern(re *regexp.Regexp) {
	t.query = search.Query{Pattern: re}
	t.recomputeCommand(FacetSearch)
}

// ClearSearch removes any active search query.
func (t *Table) ClearSearch() {
	t.query = search.Query{}
	t.recomputeCommand(FacetSearch)
}

// SetSort sets the sort order of one column. Activating a column assigns it
// the next priority rank; deactivating retires its rank without renumbering
// the others. An unknown or unsortable field is logged and ignored, leaving
// prior state intact.
//
// Re-issuing the current order is a no-op for output but still recomputes.
func (t *Table) SetSort(field string, order model.SortOrder) {
	col, ok := t.colsByField[field]
	if !ok || !col.Sortable {
		t.logger.WithField(field).Warn("ignoring sort on unknown or unsortable field")
		return
	}

	if order == model.SortNone {
		col.Order = model.SortNone
		col.Priority = 0
	} else {
		if col.Order == model.SortNone {
			t.sortSeq++
			col.Priority = t.sortSeq
		}
		col.Order = order
	}
	t.recomputeCommand(FacetSort)
}

// ToggleSort advances a column through the none -> asc -> desc -> none
// cycle.
func (t *Table) ToggleSort(field string) {
	col, ok := t.colsByField[field]
	if !ok || !col.Sortable {
		t.logger.WithField(field).Warn("ignoring sort on unknown or unsortable field")
		return
	}
	t.SetSort(field, sorter.NextOrder(col.Order))
}

// SetColumnVisible shows or hides a column. Hidden columns lose sort and
// search eligibility, so the pipeline recomputes; the row-height
// measurement is invalidated because visible content changed.
func (t *Table) SetColumnVisible(field string, visible bool) {
	col, ok := t.colsByField[field]
	if !ok {
		t.logger.WithField(field).Warn("ignoring visibility change on unknown field")
		return
	}
	col.Hidden = !visible
	if t.win != nil {
		t.win.Invalidate()
	}
	t.recomputeCommand(FacetColumns)
}

// Visible returns the current visible row set in display order. The slice
// is a fresh snapshot; scores are zero when no search is active.
func (t *Table) Visible() []model.VisibleRow {
	out := make([]model.VisibleRow, len(t.visible))
	for i, ord := range t.visible {
		out[i] = model.VisibleRow{
			Row:     t.index.Row(ord),
			Ordinal: ord,
			Score:   t.scores[ord],
		}
	}
	return out
}

// VisibleCount returns the size of the visible row set.
func (t *Table) VisibleCount() int { return len(t.visible) }

// Columns returns a snapshot of the current column state (sort order,
// priority, visibility). Mutating the copies has no effect on the table.
func (t *Table) Columns() []model.Column {
	out := make([]model.Column, len(t.columns))
	for i, col := range t.columns {
		out[i] = *col
	}
	return out
}

// Window returns the virtual window, or nil when no measurer is configured.
func (t *Table) Window() *window.Window { return t.win }

// ScrollToIndex scrolls so that visible row i is at the top of the
// viewport, returning the offset for the host to apply. An index outside
// [0, VisibleCount()) raises a window.RangeError.
func (t *Table) ScrollToIndex(i int) (float64, error) {
	start := time.Now()
	if t.win == nil {
		return 0, ErrNoMeasurer
	}
	offset, err := t.win.ScrollToIndex(i)
	t.metricsCollector.RecordScrollTo(time.Since(start), err)
	return offset, err
}

// Subscribe registers a change listener and returns its unsubscribe
// function. Listeners run synchronously after each recompute, in
// unspecified order.
func (t *Table) Subscribe(fn func(Change)) func() {
	id := t.nextListener
	t.nextListener++
	t.listeners[id] = fn
	return func() { delete(t.listeners, id) }
}

// recomputeCommand wraps recompute for query commands, which per the error
// contract never fail: a window configuration problem is logged, prior
// window state stays intact.
func (t *Table) recomputeCommand(facets Facet) {
	if err := t.recompute(facets); err != nil {
		t.logger.Warn("window configuration failed", "error", err)
	}
}

// recompute runs the pipeline in its fixed order and atomically replaces
// the visible row set.
func (t *Table) recompute(facets Facet) error {
	start := time.Now()

	base := filter.Apply(t.index, t.colsByField, t.filterSpec)
	res := search.Apply(t.index, t.searchFields(), t.query, t.tokenizer, base)

	ords := res.Set.Slice()
	sorter.Apply(t.index, ords, sorter.Directives(t.columns), res.Scores)

	t.visible = ords
	t.scores = res.Scores

	duration := time.Since(start)
	t.logger.LogRecompute(facets, len(ords), duration)
	t.metricsCollector.RecordRecompute(len(ords), duration)

	var err error
	if t.win != nil {
		err = t.win.Configure(len(ords))
	}
	t.notify(Change{
		Facets:     facets,
		RowCount:   len(ords),
		Generation: t.index.Generation(),
	})
	return err
}

func (t *Table) searchFields() []search.Field {
	var out []search.Field
	for _, col := range t.columns {
		if col.Hidden || !col.Searchable {
			continue
		}
		out = append(out, search.Field{Name: col.Field, Tokenize: col.Tokenize})
	}
	for _, f := range t.extraSearchFields {
		out = append(out, search.Field{Name: f})
	}
	return out
}

func (t *Table) notify(c Change) {
	for _, fn := range t.listeners {
		fn(c)
	}
}
