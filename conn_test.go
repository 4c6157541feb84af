package kervan

import (
	"fmt"

	"github.com/KilimcininKorOglu/kervan/schema"
)

// fakeConn is an in-memory Conn recording what each call received.
type fakeConn struct {
	baseDN  string
	entries map[string]RawEntry

	searchResults []RawEntry
	searchErr     error
	modifyErr     error
	schemaDump    *schema.Dump

	searchCalls int
	entryCalls  int
	extCalls    int
	schemaCalls int

	lastBase   string
	lastScope  Scope
	lastFilter string
	lastParams SearchParams

	mods    []schema.Modification
	created map[string]map[string][]string
	deleted []string
	moved   [][2]string
	copied  [][2]string

	providers []ControlProvider
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		baseDN:  "dc=example,dc=com",
		entries: make(map[string]RawEntry),
		created: make(map[string]map[string][]string),
	}
}

func (c *fakeConn) BaseDN() string {
	return c.baseDN
}

func (c *fakeConn) Search(base string, scope Scope, filter string, params SearchParams) ([]RawEntry, error) {
	c.searchCalls++
	c.lastBase = base
	c.lastScope = scope
	c.lastFilter = filter
	c.lastParams = params
	if c.searchErr != nil {
		return nil, c.searchErr
	}
	if params.Limit > 0 && len(c.searchResults) > params.Limit {
		return c.searchResults[:params.Limit], nil
	}
	return c.searchResults, nil
}

func (c *fakeConn) Entry(dn string) (RawEntry, error) {
	c.entryCalls++
	if raw, ok := c.entries[dn]; ok {
		return raw, nil
	}
	return nil, fmt.Errorf("%s: %w", dn, ErrNotFound)
}

func (c *fakeConn) ExtendedEntry(dn string) (RawEntry, error) {
	c.extCalls++
	if raw, ok := c.entries[dn]; ok {
		return raw, nil
	}
	return nil, fmt.Errorf("%s: %w", dn, ErrNotFound)
}

func (c *fakeConn) Modify(dn string, mods []schema.Modification) error {
	if c.modifyErr != nil {
		return c.modifyErr
	}
	c.mods = append(c.mods, mods...)
	return nil
}

func (c *fakeConn) Create(dn string, attrs map[string][]string) error {
	c.created[dn] = attrs
	return nil
}

func (c *fakeConn) Delete(dn string) error {
	c.deleted = append(c.deleted, dn)
	return nil
}

func (c *fakeConn) Move(dn, newRDN string, attrs map[string][]string) error {
	c.moved = append(c.moved, [2]string{dn, newRDN})
	return nil
}

func (c *fakeConn) Copy(dn, newDN string, attrs map[string][]string) error {
	c.copied = append(c.copied, [2]string{dn, newDN})
	return nil
}

func (c *fakeConn) SchemaDump() (schema.Dump, error) {
	c.schemaCalls++
	if c.schemaDump != nil {
		return *c.schemaDump, nil
	}
	return schema.DefaultDump(), nil
}

func (c *fakeConn) RegisteredControls() []ControlProvider {
	return c.providers
}

func newTestDirectory() (*Directory, *fakeConn) {
	conn := newFakeConn()
	return NewDirectory(conn), conn
}
