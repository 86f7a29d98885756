// Package gridview is the row-processing and windowed-rendering engine
// behind a table widget: it derives a filtered, searched and sorted view of
// an in-memory dataset and computes which contiguous slice of that view must
// be materialized as the user scrolls.
//
// # Quick Start
//
//	cols := []*model.Column{
//	    {Field: "name", Title: "Name", Sortable: true, Searchable: true, Tokenize: true},
//	    {Field: "age", Title: "Age", Sortable: true},
//	}
//	t, err := gridview.New(cols, gridview.WithMeasurer(adapter))
//	if err != nil {
//	    panic(err)
//	}
//	_ = t.LoadData(rows)
//
// Query commands reshape the visible row set:
//
//	t.SetFilter(map[string]any{"age": []any{30, 40}}) // age in {30, 40}
//	t.SetSearch("ada lovelace")
//	t.SetSort("name", model.SortAsc)
//	for _, vr := range t.Visible() {
//	    fmt.Println(vr.Ordinal, vr.Score, vr.Row)
//	}
//
// The pipeline recomputes wholesale on every relevant change, always in the
// fixed order filter, search, sort: the filter is the cheapest and most
// restrictive stage, and search must precede sort because its relevance
// score is the first sort key. Subscribers receive a facet-tagged Change
// after each recompute.
//
// # Windowing
//
// With a measurer configured, the window maps the scroll offset to the index
// range to materialize:
//
//	w := t.Window()
//	w.SetViewport(600)
//	w.OnScroll(12_345) // coalesced
//	w.Tick()           // once per animation frame
//	r := w.Range()     // r.Start, r.Count, r.LeadingPx, r.TrailingPx
//
// # Concurrency
//
// A Table is single-goroutine by design: every command runs to completion
// within the calling turn, so readers never observe a partially recomputed
// view. The only internal parallelism is load-time derivation of sort keys
// and tokens, which completes before LoadData returns.
//
// # Key Features
//
//   - Load-time cached sort keys and token lists (no per-keystroke derivation)
//   - Declarative (AND/OR) and functional filters
//   - Tokenized, relevance-scored search with a pattern escape hatch
//   - Multi-column priority sort with stable ordinal tie-break
//   - Measured-height virtual window with spacer conservation
//   - Compressed, self-describing snapshots of the dataset and its index
package gridview
