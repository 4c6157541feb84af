package kervan

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bdlm/log"

	"github.com/KilimcininKorOglu/kervan/schema"
)

// Scope represents the breadth of a directory search.
type Scope int

const (
	// ScopeBaseObject searches only the base object.
	ScopeBaseObject Scope = 0
	// ScopeSingleLevel searches one level below the base object.
	ScopeSingleLevel Scope = 1
	// ScopeWholeSubtree searches the entire subtree.
	ScopeWholeSubtree Scope = 2
)

// String returns the string representation of the Scope.
func (s Scope) String() string {
	switch s {
	case ScopeBaseObject:
		return "base"
	case ScopeSingleLevel:
		return "onelevel"
	case ScopeWholeSubtree:
		return "subtree"
	default:
		return "unknown"
	}
}

// ParseScope resolves a scope name or synonym to a Scope. Recognized names
// are "base", "one", "onelevel", "sub", and "subtree".
func ParseScope(name string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "base":
		return ScopeBaseObject, nil
	case "one", "onelevel":
		return ScopeSingleLevel, nil
	case "sub", "subtree":
		return ScopeWholeSubtree, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownScope, name)
	}
}

// RawEntry is an entry as yielded by the directory collaborator: attribute
// names mapped to their values, always carrying a "dn" key.
type RawEntry map[string][]string

// DN returns the entry's distinguished name.
func (r RawEntry) DN() string {
	if values := r.Values("dn"); len(values) > 0 {
		return values[0]
	}
	return ""
}

// Values returns the values of the named attribute. Attribute names are
// matched case-insensitively, as the protocol requires.
func (r RawEntry) Values(attr string) []string {
	if values, ok := r[attr]; ok {
		return values
	}
	for name, values := range r {
		if strings.EqualFold(name, attr) {
			return values
		}
	}
	return nil
}

// First returns the first value of the named attribute, or the empty string
// when the attribute is absent.
func (r RawEntry) First(attr string) string {
	if values := r.Values(attr); len(values) > 0 {
		return values[0]
	}
	return ""
}

// SearchParams carries the per-search options passed to the directory
// collaborator.
type SearchParams struct {
	// Limit caps the number of results; 0 means unlimited.
	Limit int
	// Select restricts the attributes returned; empty means all.
	Select []string
	// Timeout bounds the search on the server side; 0 means none.
	Timeout time.Duration
	// ClientControls and ServerControls are attached to the search request.
	ClientControls []Control
	ServerControls []Control
}

// Conn is the directory collaborator contract: the transport this library
// builds queries for but does not implement. Implementations report a
// missing entry from Entry and ExtendedEntry with an error wrapping
// ErrNotFound; all other failures pass through unwrapped.
type Conn interface {
	// BaseDN returns the naming context this connection is rooted at.
	BaseDN() string

	// Search runs one search and returns the raw results in whatever
	// order the directory yields them.
	Search(base string, scope Scope, filter string, params SearchParams) ([]RawEntry, error)

	// Entry fetches a single entry's user attributes by DN.
	Entry(dn string) (RawEntry, error)

	// ExtendedEntry fetches a single entry including operational
	// attributes.
	ExtendedEntry(dn string) (RawEntry, error)

	// Modify applies attribute changes to an entry.
	Modify(dn string, mods []schema.Modification) error

	// Create adds a new entry with the given attributes.
	Create(dn string, attrs map[string][]string) error

	// Delete removes an entry.
	Delete(dn string) error

	// Move renames an entry below the same parent or a new one.
	Move(dn, newRDN string, attrs map[string][]string) error

	// Copy duplicates an entry at a new DN.
	Copy(dn, newDN string, attrs map[string][]string) error

	// SchemaDump returns the directory's subschema definition strings.
	SchemaDump() (schema.Dump, error)

	// RegisteredControls lists the protocol extension controls this
	// connection supports; their payloads are attached to every search
	// built from a Directory.
	RegisteredControls() []ControlProvider
}

// Directory wraps a Conn with the schema cache and control registrations
// that entries and queries need. The schema dump is fetched and parsed
// exactly once, on first use.
type Directory struct {
	conn       Conn
	providers  []ControlProvider
	schemaOnce sync.Once
	schema     *schema.Schema
	schemaErr  error
}

// NewDirectory wraps the given connection. The connection's registered
// controls are snapshotted here; queries built from this directory carry
// their payloads automatically.
func NewDirectory(conn Conn) *Directory {
	return &Directory{
		conn:      conn,
		providers: conn.RegisteredControls(),
	}
}

// Conn returns the underlying connection.
func (d *Directory) Conn() Conn {
	return d.conn
}

// BaseDN returns the connection's naming context.
func (d *Directory) BaseDN() string {
	return d.conn.BaseDN()
}

// Schema returns the parsed directory schema, fetching and parsing the
// subschema dump on first call. A schema cycle or transport failure is
// returned on every subsequent call; no partial schema is ever cached.
func (d *Directory) Schema() (*schema.Schema, error) {
	d.schemaOnce.Do(func() {
		dump, err := d.conn.SchemaDump()
		if err != nil {
			d.schemaErr = fmt.Errorf("fetching schema dump: %w", err)
			return
		}
		s, err := schema.Parse(dump)
		if err != nil {
			d.schemaErr = fmt.Errorf("parsing schema dump: %w", err)
			return
		}
		d.schema = s
	})
	return d.schema, d.schemaErr
}

// Base returns an Entry bound to the connection's naming context.
func (d *Directory) Base() (*Entry, error) {
	return NewEntry(d, d.BaseDN())
}

// EntryAt returns a lazy Entry bound to the given DN. The directory is not
// contacted until the entry's attributes are first needed.
func (d *Directory) EntryAt(dnStr string) (*Entry, error) {
	return NewEntry(d, dnStr)
}

// Query returns a subtree query rooted at the connection's naming context.
func (d *Directory) Query() (*Query, error) {
	base, err := d.Base()
	if err != nil {
		return nil, err
	}
	return base.Query(), nil
}

// search runs one search against the connection, logging it under a fresh
// trace id.
func (d *Directory) search(base string, scope Scope, filterText string, params SearchParams) ([]RawEntry, error) {
	id := searchID()
	log.WithFields(log.Fields{
		"search_id": id,
		"base":      base,
		"scope":     scope.String(),
		"filter":    filterText,
		"limit":     params.Limit,
	}).Debug("directory search")

	// Collaborator failures pass through unwrapped so callers can test
	// them with errors.Is; context goes to the log, not the chain.
	results, err := d.conn.Search(base, scope, filterText, params)
	if err != nil {
		log.WithFields(log.Fields{
			"search_id": id,
			"error":     err.Error(),
		}).Warn("directory search failed")
		return nil, err
	}

	log.WithFields(log.Fields{
		"search_id": id,
		"results":   len(results),
	}).Debug("directory search done")
	return results, nil
}

// fetch retrieves one raw entry by DN, honoring the operational-attribute
// flag. NotFound passes through unwrapped so callers can test for it.
func (d *Directory) fetch(dnStr string, operational bool) (RawEntry, error) {
	if operational {
		return d.conn.ExtendedEntry(dnStr)
	}
	return d.conn.Entry(dnStr)
}
