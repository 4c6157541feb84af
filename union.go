package kervan

// QueryUnion enumerates several queries as one ordered result set. Members
// run in the order they were added; within a member, directory order is
// preserved. Like Query, a union is immutable: Add returns a grown copy.
type QueryUnion struct {
	queries []*Query
}

// NewQueryUnion builds a union over the given queries, in order.
func NewQueryUnion(queries ...*Query) *QueryUnion {
	return &QueryUnion{queries: append([]*Query(nil), queries...)}
}

// Add returns a copy of the union with the given query appended.
func (u *QueryUnion) Add(q *Query) *QueryUnion {
	grown := append([]*Query(nil), u.queries...)
	return &QueryUnion{queries: append(grown, q)}
}

// Queries returns the member queries in order.
func (u *QueryUnion) Queries() []*Query {
	return append([]*Query(nil), u.queries...)
}

// Len returns the number of member queries.
func (u *QueryUnion) Len() int {
	return len(u.queries)
}

// All enumerates every member in order and concatenates their results.
func (u *QueryUnion) All() ([]*Entry, error) {
	var entries []*Entry
	for _, q := range u.queries {
		results, err := q.All()
		if err != nil {
			return nil, err
		}
		entries = append(entries, results...)
	}
	return entries, nil
}

// Each calls fn for every result of every member, in member order.
func (u *QueryUnion) Each(fn func(*Entry) error) error {
	for _, q := range u.queries {
		if err := q.Each(fn); err != nil {
			return err
		}
	}
	return nil
}

// First returns the first result of the first non-empty member, or nil when
// every member is empty. Members after the first hit are not searched.
func (u *QueryUnion) First() (*Entry, error) {
	for _, q := range u.queries {
		e, err := q.First()
		if err != nil {
			return nil, err
		}
		if e != nil {
			return e, nil
		}
	}
	return nil, nil
}

// Empty reports whether every member matches nothing.
func (u *QueryUnion) Empty() (bool, error) {
	for _, q := range u.queries {
		empty, err := q.Empty()
		if err != nil {
			return false, err
		}
		if !empty {
			return false, nil
		}
	}
	return true, nil
}

// Map concatenates each member's projection of the named attribute, in
// member order.
func (u *QueryUnion) Map(attr string) ([]string, error) {
	var values []string
	for _, q := range u.queries {
		part, err := q.Map(attr)
		if err != nil {
			return nil, err
		}
		values = append(values, part...)
	}
	return values, nil
}
