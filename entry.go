package kervan

import (
	"fmt"
	"strings"

	"github.com/bdlm/log"

	"github.com/KilimcininKorOglu/kervan/dn"
	"github.com/KilimcininKorOglu/kervan/schema"
)

// RDNComponent is one attr=value pair of a (possibly multi-valued) RDN.
type RDNComponent struct {
	Attr  string
	Value string
}

// Entry models one directory entry by DN. The entry is lazy: constructing it
// never contacts the directory; the record is fetched on first attribute
// access and cached until a write invalidates it.
type Entry struct {
	dir  *Directory
	dn   string
	kind string

	// operational includes operational attributes in the fetch.
	operational bool

	fetched bool
	raw     RawEntry
	decoded map[string]interface{}
}

// NewEntry binds a lazy Entry to the given DN. The DN is validated
// synchronously; the directory is not contacted.
func NewEntry(dir *Directory, dnStr string) (*Entry, error) {
	if _, err := dn.Split(dnStr); err != nil {
		return nil, err
	}
	return &Entry{dir: dir, dn: dnStr}, nil
}

// DN returns the entry's distinguished name.
func (e *Entry) DN() string {
	return e.dn
}

// Kind returns the wrap tag assigned by Query.As, or the empty string.
func (e *Entry) Kind() string {
	return e.kind
}

// Directory returns the directory this entry is bound to.
func (e *Entry) Directory() *Directory {
	return e.dir
}

// IncludeOperational returns a copy of the entry that fetches operational
// attributes alongside user attributes. The copy starts with empty caches.
func (e *Entry) IncludeOperational() *Entry {
	return &Entry{dir: e.dir, dn: e.dn, kind: e.kind, operational: true}
}

// invalidate drops every cached attribute; the next access refetches.
func (e *Entry) invalidate() {
	e.fetched = false
	e.raw = nil
	e.decoded = nil
}

// invalidateAttr drops one attribute's decoded value, keeping the rest of
// the cache intact.
func (e *Entry) invalidateAttr(attr string) {
	delete(e.decoded, strings.ToLower(attr))
}

// Record returns the entry's raw attribute map, fetching it on first call.
// A missing entry returns an error wrapping ErrNotFound.
func (e *Entry) Record() (RawEntry, error) {
	if !e.fetched {
		raw, err := e.dir.fetch(e.dn, e.operational)
		if err != nil {
			return nil, err
		}
		e.raw = raw
		e.fetched = true
	}
	return e.raw, nil
}

// Exists reports whether the entry is present in the directory. Only a
// NotFound outcome is absorbed; any other failure is returned as an error.
func (e *Entry) Exists() (bool, error) {
	_, err := e.Record()
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Attr returns the named attribute decoded per the directory schema: Boolean
// syntax as bool, INTEGER as int64, Generalized Time as time.Time, anything
// else as string. A single-valued attribute yields the bare scalar; a
// multi-valued one yields a slice in directory order. An attribute absent
// from the entry yields nil; so does an attribute the schema does not
// describe, which is logged rather than raised since directories commonly
// carry attributes the loaded schema omits.
func (e *Entry) Attr(name string) (interface{}, error) {
	key := strings.ToLower(name)
	if v, ok := e.decoded[key]; ok {
		return v, nil
	}

	raw, err := e.Record()
	if err != nil {
		return nil, err
	}
	values := raw.Values(name)
	if values == nil {
		return nil, nil
	}

	s, err := e.dir.Schema()
	if err != nil {
		return nil, err
	}

	v := decodeValues(s, name, values)
	if e.decoded == nil {
		e.decoded = make(map[string]interface{})
	}
	e.decoded[key] = v
	return v, nil
}

// decodeValues decodes one attribute's values, unwrapping single values of
// single-valued types to the bare scalar. Unknown attributes decode to nil.
func decodeValues(s *schema.Schema, name string, values []string) interface{} {
	if !s.KnownAttribute(name) {
		log.WithFields(log.Fields{
			"attribute": name,
		}).Warn("attribute not defined in directory schema")
		return nil
	}

	decoded := make([]interface{}, len(values))
	for i, raw := range values {
		v, err := s.DecodeValue(name, raw)
		if err != nil {
			v = raw
		}
		decoded[i] = v
	}

	at := s.AttributeType(name)
	if at != nil && at.IsSingleValued() && len(decoded) == 1 {
		return decoded[0]
	}
	return decoded
}

// SetAttr replaces the named attribute's values in the directory. On success
// the cached record is updated in place and only this attribute's decoded
// value is dropped; a failed write leaves every cache untouched.
func (e *Entry) SetAttr(name string, values ...string) error {
	mod := schema.NewModification(schema.ModReplace, name, values...)
	if err := e.dir.conn.Modify(e.dn, []schema.Modification{mod}); err != nil {
		return err
	}
	if e.raw != nil {
		// Overwrite the record's own spelling of the key, not the
		// caller's, so a later lookup cannot exact-match a stale entry.
		key := name
		for existing := range e.raw {
			if strings.EqualFold(existing, name) {
				key = existing
				break
			}
		}
		e.raw[key] = values
	}
	e.invalidateAttr(name)
	return nil
}

// Merge replaces several attributes in one modify operation. On success the
// whole cache is dropped; on failure it is untouched.
func (e *Entry) Merge(attrs map[string][]string) error {
	mods := make([]schema.Modification, 0, len(attrs))
	for name, values := range attrs {
		mods = append(mods, schema.NewModification(schema.ModReplace, name, values...))
	}
	if err := e.dir.conn.Modify(e.dn, mods); err != nil {
		return err
	}
	e.invalidate()
	return nil
}

// DeleteAttrs removes the named attributes entirely. On success the whole
// cache is dropped; on failure it is untouched.
func (e *Entry) DeleteAttrs(names ...string) error {
	mods := make([]schema.Modification, 0, len(names))
	for _, name := range names {
		mods = append(mods, schema.NewModification(schema.ModDelete, name))
	}
	if err := e.dir.conn.Modify(e.dn, mods); err != nil {
		return err
	}
	e.invalidate()
	return nil
}

// Create adds this entry to the directory with the given attributes.
func (e *Entry) Create(attrs map[string][]string) error {
	if err := e.dir.conn.Create(e.dn, attrs); err != nil {
		return err
	}
	e.invalidate()
	return nil
}

// Delete removes this entry from the directory.
func (e *Entry) Delete() error {
	if err := e.dir.conn.Delete(e.dn); err != nil {
		return err
	}
	e.invalidate()
	return nil
}

// Move renames the entry under its current parent. The receiver rebinds to
// the new DN on success.
func (e *Entry) Move(newRDN string, attrs map[string][]string) error {
	if err := e.dir.conn.Move(e.dn, newRDN, attrs); err != nil {
		return err
	}
	parent, err := dn.Parent(e.dn)
	if err == nil && parent != "" {
		e.dn = newRDN + "," + parent
	} else {
		e.dn = newRDN
	}
	e.invalidate()
	return nil
}

// Copy duplicates the entry at the destination DN and returns an Entry bound
// there. The receiver is unchanged.
func (e *Entry) Copy(newDN string, attrs map[string][]string) (*Entry, error) {
	if _, err := dn.Split(newDN); err != nil {
		return nil, err
	}
	if err := e.dir.conn.Copy(e.dn, newDN, attrs); err != nil {
		return nil, err
	}
	return &Entry{dir: e.dir, dn: newDN, kind: e.kind, operational: e.operational}, nil
}

// RDN returns the entry's leftmost relative distinguished name. The DN was
// validated at construction, so this cannot fail.
func (e *Entry) RDN() string {
	rdn, _ := dn.RDN(e.dn)
	return rdn
}

// ParentDN returns the DN of the entry's parent, or "" at a naming context
// root.
func (e *Entry) ParentDN() string {
	parent, _ := dn.Parent(e.dn)
	return parent
}

// SplitDN splits the entry's DN into at most limit components; see
// dn.SplitLimit.
func (e *Entry) SplitDN(limit int) ([]string, error) {
	return dn.SplitLimit(e.dn, limit)
}

// Parent returns a lazy Entry bound to the parent DN, or nil at a naming
// context root.
func (e *Entry) Parent() *Entry {
	parent := e.ParentDN()
	if parent == "" {
		return nil
	}
	return &Entry{dir: e.dir, dn: parent, operational: e.operational}
}

// Child builds a lazy Entry one level below this one, without touching the
// directory. Every attribute name used in the RDN must be defined in the
// directory schema.
func (e *Entry) Child(attr, value string, extra ...RDNComponent) (*Entry, error) {
	s, err := e.dir.Schema()
	if err != nil {
		return nil, err
	}

	components := append([]RDNComponent{{Attr: attr, Value: value}}, extra...)
	parts := make([]string, len(components))
	for i, c := range components {
		if !s.KnownAttribute(c.Attr) {
			return nil, fmt.Errorf("rdn attribute %q: %w", c.Attr, schema.ErrUnknownAttribute)
		}
		parts[i] = c.Attr + "=" + c.Value
	}

	childDN := strings.Join(parts, "+") + "," + e.dn
	return NewEntry(e.dir, childDN)
}

// Compare orders two entries by DN hierarchy: an ancestor sorts before its
// descendants, siblings compare component-wise from the root out. Entries
// carrying different wrap kinds are incomparable.
func (e *Entry) Compare(other *Entry) (int, error) {
	if other == nil {
		return 0, ErrIncomparable
	}
	if e.kind != other.kind {
		return 0, ErrIncomparable
	}
	return dn.Compare(e.dn, other.dn)
}

// Query returns a subtree query based at this entry.
func (e *Entry) Query() *Query {
	return newQuery(e)
}

// ObjectClasses returns the entry's objectClass values with any extra class
// names appended, deduplicated case-insensitively.
func (e *Entry) ObjectClasses(extra ...string) ([]string, error) {
	raw, err := e.Record()
	if err != nil {
		return nil, err
	}
	classes := raw.Values("objectClass")
	out := make([]string, 0, len(classes)+len(extra))
	out = append(out, classes...)
	for _, name := range extra {
		if !containsFold(out, name) {
			out = append(out, name)
		}
	}
	return out, nil
}

// MustAttributeTypes returns the attribute types required by the entry's
// object classes (with extras appended), inherited sets included.
func (e *Entry) MustAttributeTypes(extra ...string) ([]*schema.AttributeType, error) {
	return e.attributeTypes(true, extra)
}

// MayAttributeTypes returns the attribute types permitted but not required
// by the entry's object classes (with extras appended).
func (e *Entry) MayAttributeTypes(extra ...string) ([]*schema.AttributeType, error) {
	return e.attributeTypes(false, extra)
}

// MustOIDs returns the OIDs of the entry's required attribute types.
func (e *Entry) MustOIDs(extra ...string) ([]string, error) {
	types, err := e.MustAttributeTypes(extra...)
	if err != nil {
		return nil, err
	}
	return attributeOIDs(types), nil
}

// MayOIDs returns the OIDs of the entry's optional attribute types.
func (e *Entry) MayOIDs(extra ...string) ([]string, error) {
	types, err := e.MayAttributeTypes(extra...)
	if err != nil {
		return nil, err
	}
	return attributeOIDs(types), nil
}

// ValidAttributeTypes returns every attribute type the entry's object
// classes allow, required first.
func (e *Entry) ValidAttributeTypes(extra ...string) ([]*schema.AttributeType, error) {
	must, err := e.MustAttributeTypes(extra...)
	if err != nil {
		return nil, err
	}
	may, err := e.MayAttributeTypes(extra...)
	if err != nil {
		return nil, err
	}
	return append(must, may...), nil
}

// AttributeSkeleton returns a template record for the entry's object
// classes: every required and optional attribute name mapped to an empty
// placeholder, a bare string for single-valued types and an empty slice
// otherwise.
func (e *Entry) AttributeSkeleton(extra ...string) (map[string]interface{}, error) {
	types, err := e.ValidAttributeTypes(extra...)
	if err != nil {
		return nil, err
	}
	skeleton := make(map[string]interface{}, len(types))
	for _, at := range types {
		if at.IsSingleValued() {
			skeleton[at.Name()] = ""
		} else {
			skeleton[at.Name()] = []string{}
		}
	}
	return skeleton, nil
}

// attributeTypes resolves the effective MUST or MAY sets of the entry's
// object classes to attribute type descriptors, preserving class order and
// folding duplicates.
func (e *Entry) attributeTypes(must bool, extra []string) ([]*schema.AttributeType, error) {
	classes, err := e.ObjectClasses(extra...)
	if err != nil {
		return nil, err
	}
	s, err := e.dir.Schema()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, class := range classes {
		oc := s.ObjectClass(class)
		if oc == nil {
			continue
		}
		set := oc.EffectiveMust
		if !must {
			set = oc.EffectiveMay
		}
		for _, name := range set {
			if !containsFold(names, name) {
				names = append(names, name)
			}
		}
	}

	types := make([]*schema.AttributeType, 0, len(names))
	for _, name := range names {
		if at := s.AttributeType(name); at != nil {
			types = append(types, at)
		}
	}
	return types, nil
}

func attributeOIDs(types []*schema.AttributeType) []string {
	oids := make([]string, len(types))
	for i, at := range types {
		oids[i] = at.OID
	}
	return oids
}

func containsFold(list []string, target string) bool {
	for _, item := range list {
		if strings.EqualFold(item, target) {
			return true
		}
	}
	return false
}
