package kervan

import (
	"time"

	"github.com/KilimcininKorOglu/kervan/filter"
)

// Query is a lazy search descriptor: base entry, filter, scope, projection,
// and limits. Queries are immutable; every mutator returns a modified copy
// and the receiver is never changed, so partially-built descriptors can be
// shared and refined independently. No search runs until an enumeration
// method is called, and each enumeration runs exactly one search.
type Query struct {
	base      *Entry
	filter    *filter.Filter
	scope     Scope
	scopeName string
	selected  []string
	limit     int
	timeout   time.Duration
	kind      string

	clientControls []Control
	serverControls []Control
}

// newQuery returns the default descriptor for a base entry: whole subtree,
// the default filter, every attribute, no limit.
func newQuery(base *Entry) *Query {
	return &Query{
		base:   base,
		filter: filter.Default(),
		scope:  ScopeWholeSubtree,
	}
}

// clone returns a shallow copy with its own slices.
func (q *Query) clone() *Query {
	dup := *q
	dup.selected = append([]string(nil), q.selected...)
	dup.clientControls = append([]Control(nil), q.clientControls...)
	dup.serverControls = append([]Control(nil), q.serverControls...)
	return &dup
}

// Base returns the entry the query is rooted at.
func (q *Query) Base() *Entry {
	return q.base
}

// Filter returns a copy refined with the given filters. Refinement is
// conjunctive: the new filter is And(previous, given...), so chained calls
// only ever narrow the result set.
func (q *Query) Filter(filters ...*filter.Filter) *Query {
	if len(filters) == 0 {
		return q
	}
	dup := q.clone()
	dup.filter = filter.Conjoin(q.filter, filters...)
	return dup
}

// Where refines the query with attribute criteria: each pair matches any of
// its values, pairs are conjoined in order.
func (q *Query) Where(pairs ...filter.Pair) *Query {
	if len(pairs) == 0 {
		return q
	}
	return q.Filter(filter.FromPairs(pairs...))
}

// Scope returns a copy searching with the given scope.
func (q *Query) Scope(scope Scope) *Query {
	dup := q.clone()
	dup.scope = scope
	dup.scopeName = ""
	return dup
}

// ScopeName returns a copy carrying a verbatim scope name, resolved at
// search time. An unrecognized name fails the search with ErrUnknownScope.
func (q *Query) ScopeName(name string) *Query {
	dup := q.clone()
	dup.scopeName = name
	return dup
}

// Select returns a copy projecting only the named attributes, in the given
// order with duplicates folded.
func (q *Query) Select(attrs ...string) *Query {
	dup := q.clone()
	dup.selected = nil
	for _, attr := range attrs {
		if !containsFold(dup.selected, attr) {
			dup.selected = append(dup.selected, attr)
		}
	}
	return dup
}

// SelectAll returns a copy with the projection cleared; the directory
// returns every attribute.
func (q *Query) SelectAll() *Query {
	dup := q.clone()
	dup.selected = nil
	return dup
}

// SelectMore returns a copy with the named attributes appended to the
// current projection.
func (q *Query) SelectMore(attrs ...string) *Query {
	dup := q.clone()
	for _, attr := range attrs {
		if !containsFold(dup.selected, attr) {
			dup.selected = append(dup.selected, attr)
		}
	}
	return dup
}

// Limit returns a copy capped at n results.
func (q *Query) Limit(n int) *Query {
	dup := q.clone()
	dup.limit = n
	return dup
}

// WithoutLimit returns an uncapped copy.
func (q *Query) WithoutLimit() *Query {
	dup := q.clone()
	dup.limit = 0
	return dup
}

// Timeout returns a copy bounded by the given server-side time limit.
func (q *Query) Timeout(d time.Duration) *Query {
	dup := q.clone()
	dup.timeout = d
	return dup
}

// WithoutTimeout returns an unbounded copy.
func (q *Query) WithoutTimeout() *Query {
	dup := q.clone()
	dup.timeout = 0
	return dup
}

// As returns a copy whose result entries carry the given wrap kind. Entries
// of different kinds are incomparable.
func (q *Query) As(kind string) *Query {
	dup := q.clone()
	dup.kind = kind
	return dup
}

// WithControls returns a copy carrying additional request controls on every
// search.
func (q *Query) WithControls(client, server []Control) *Query {
	dup := q.clone()
	dup.clientControls = append(dup.clientControls, client...)
	dup.serverControls = append(dup.serverControls, server...)
	return dup
}

// QueryOptions is a read-only snapshot of a descriptor's state.
type QueryOptions struct {
	Base      string
	Scope     Scope
	ScopeName string
	Filter    string
	Select    []string
	Limit     int
	Timeout   time.Duration
	Kind      string
}

// Options snapshots the descriptor for inspection.
func (q *Query) Options() QueryOptions {
	return QueryOptions{
		Base:      q.base.DN(),
		Scope:     q.scope,
		ScopeName: q.scopeName,
		Filter:    q.filter.String(),
		Select:    append([]string(nil), q.selected...),
		Limit:     q.limit,
		Timeout:   q.timeout,
		Kind:      q.kind,
	}
}

// resolveScope resolves the effective scope, honoring a verbatim scope name
// over the typed scope.
func (q *Query) resolveScope() (Scope, error) {
	if q.scopeName != "" {
		return ParseScope(q.scopeName)
	}
	return q.scope, nil
}

// search runs the descriptor's single external search, attaching the
// directory's registered control payloads plus any explicit controls.
func (q *Query) search(limit int) ([]RawEntry, error) {
	scope, err := q.resolveScope()
	if err != nil {
		return nil, err
	}

	client, server, err := providerControls(q.base.dir.providers)
	if err != nil {
		return nil, err
	}
	params := SearchParams{
		Limit:          limit,
		Select:         append([]string(nil), q.selected...),
		Timeout:        q.timeout,
		ClientControls: append(client, q.clientControls...),
		ServerControls: append(server, q.serverControls...),
	}
	return q.base.dir.search(q.base.DN(), scope, q.filter.String(), params)
}

// materialize wraps one raw result as an Entry seeded with the fetched
// record.
func (q *Query) materialize(raw RawEntry) *Entry {
	return &Entry{
		dir:     q.base.dir,
		dn:      raw.DN(),
		kind:    q.kind,
		raw:     raw,
		fetched: true,
	}
}

// All runs the search and returns every result as an Entry, in the order
// the directory yielded them. No ordering is guaranteed.
func (q *Query) All() ([]*Entry, error) {
	results, err := q.search(q.limit)
	if err != nil {
		return nil, err
	}
	entries := make([]*Entry, len(results))
	for i, raw := range results {
		entries[i] = q.materialize(raw)
	}
	return entries, nil
}

// Each runs the search and calls fn for each result in directory order.
// Iteration stops at the first error fn returns.
func (q *Query) Each(fn func(*Entry) error) error {
	results, err := q.search(q.limit)
	if err != nil {
		return err
	}
	for _, raw := range results {
		if err := fn(q.materialize(raw)); err != nil {
			return err
		}
	}
	return nil
}

// First returns the first result, forcing a result limit of one on the
// wire. An empty result set returns nil without error.
func (q *Query) First() (*Entry, error) {
	results, err := q.search(1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return q.materialize(results[0]), nil
}

// Empty reports whether the query matches nothing, forcing a result limit
// of one on the wire.
func (q *Query) Empty() (bool, error) {
	results, err := q.search(1)
	if err != nil {
		return false, err
	}
	return len(results) == 0, nil
}

// Map runs the search projecting only the named attribute and returns its
// values across all results, in directory order, without materializing
// entries.
func (q *Query) Map(attr string) ([]string, error) {
	results, err := q.Select(attr).search(q.limit)
	if err != nil {
		return nil, err
	}
	var values []string
	for _, raw := range results {
		values = append(values, raw.Values(attr)...)
	}
	return values, nil
}

// ToHash runs the search projecting two attributes and returns a map of
// each result's first keyAttr value to its first valueAttr value. Results
// missing the key attribute are skipped.
func (q *Query) ToHash(keyAttr, valueAttr string) (map[string]string, error) {
	results, err := q.Select(keyAttr, valueAttr).search(q.limit)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(results))
	for _, raw := range results {
		key := raw.First(keyAttr)
		if key == "" {
			continue
		}
		out[key] = raw.First(valueAttr)
	}
	return out, nil
}

// Union combines this query with another into an ordered QueryUnion.
func (q *Query) Union(other *Query) *QueryUnion {
	return NewQueryUnion(q, other)
}

// UnionEntry combines this query with a subtree query based at the given
// entry.
func (q *Query) UnionEntry(e *Entry) *QueryUnion {
	return NewQueryUnion(q, e.Query())
}
