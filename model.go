package kervan

import (
	"fmt"
	"sync"

	"github.com/bdlm/log"

	"github.com/KilimcininKorOglu/kervan/dn"
	"github.com/KilimcininKorOglu/kervan/filter"
)

// Capability is one registered behavior extension: a name plus the criteria
// that select the entries it applies to. A capability applies to an entry
// when the entry's objectClass set contains every listed class, or when the
// entry's DN sits at or below any listed base. At least one criterion set
// must be non-empty; a capability with neither cannot be queried for and
// surfaces ErrNoSearchCriteria at query-build time.
type Capability struct {
	Name          string
	ObjectClasses []string
	Bases         []string
}

// Registry indexes the capabilities registered under one model class. The
// two criteria are indexed independently: objectClass matching is
// subset-AND, base matching is ancestor-or-self-OR.
type Registry struct {
	mu      sync.RWMutex
	byClass []Capability
	byBase  []Capability
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// add indexes the capability under whichever criteria it declares.
func (r *Registry) add(c Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(c.ObjectClasses) > 0 {
		r.byClass = append(r.byClass, c)
	}
	if len(c.Bases) > 0 {
		r.byBase = append(r.byBase, c)
	}
}

// remove drops the named capability from both indices.
func (r *Registry) remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	var inClass, inBase bool
	r.byClass, inClass = removeCapability(r.byClass, name)
	r.byBase, inBase = removeCapability(r.byBase, name)
	return inClass || inBase
}

// Capabilities returns every registered capability, class-indexed first,
// deduplicated by name.
func (r *Registry) Capabilities() []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return dedupeCapabilities(append(append([]Capability(nil), r.byClass...), r.byBase...))
}

// MixinsForObjectClasses returns the capabilities whose every declared
// object class appears in the given set. Matching is case-insensitive.
func (r *Registry) MixinsForObjectClasses(classes []string) []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []Capability
	for _, c := range r.byClass {
		all := true
		for _, want := range c.ObjectClasses {
			if !containsFold(classes, want) {
				all = false
				break
			}
		}
		if all {
			matches = append(matches, c)
		}
	}
	return matches
}

// MixinsForDN returns the capabilities with any declared base at or above
// the given DN.
func (r *Registry) MixinsForDN(dnStr string) []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []Capability
	for _, c := range r.byBase {
		for _, base := range c.Bases {
			ok, err := dn.IsDescendantOrSelf(dnStr, base)
			if err == nil && ok {
				matches = append(matches, c)
				break
			}
		}
	}
	return matches
}

// Model dispatches capabilities over a directory. Each model class name
// owns its own registry; registries are explicit state on the model, never
// ambient globals.
type Model struct {
	dir *Directory

	mu         sync.Mutex
	registries map[string]*Registry
}

// NewModel returns a Model over the given directory with no registrations.
func NewModel(dir *Directory) *Model {
	return &Model{
		dir:        dir,
		registries: make(map[string]*Registry),
	}
}

// Directory returns the directory the model dispatches over.
func (m *Model) Directory() *Directory {
	return m.dir
}

// Registry returns the registry for a model class, creating it on first
// use.
func (m *Model) Registry(modelClass string) *Registry {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.registries[modelClass]
	if !ok {
		r = NewRegistry()
		m.registries[modelClass] = r
	}
	return r
}

// Register records a capability under a model class. Registering the same
// capability name under a different model class moves it: it is removed
// from every other registry's indices first.
func (m *Model) Register(modelClass string, c Capability) {
	m.mu.Lock()
	for class, r := range m.registries {
		if class != modelClass {
			r.remove(c.Name)
		}
	}
	r, ok := m.registries[modelClass]
	if !ok {
		r = NewRegistry()
		m.registries[modelClass] = r
	}
	r.remove(c.Name)
	r.add(c)
	m.mu.Unlock()

	log.WithFields(log.Fields{
		"capability":  c.Name,
		"model_class": modelClass,
		"classes":     len(c.ObjectClasses),
		"bases":       len(c.Bases),
	}).Debug("capability registered")
}

// capabilityFilter builds the filter selecting a capability's entries: one
// objectClass equality per declared class, conjoined; the default filter
// when the capability is classless.
func capabilityFilter(c Capability) *filter.Filter {
	if len(c.ObjectClasses) == 0 {
		return filter.Default()
	}
	nodes := make([]*filter.Filter, len(c.ObjectClasses))
	for i, class := range c.ObjectClasses {
		nodes[i] = filter.NewEqualityFilter("objectClass", class)
	}
	return filter.Compile(nodes...)
}

// QueryFor builds the query selecting a capability's entries. A capability
// with no base is rooted at the directory's naming context; one base roots
// the query there. A capability spanning several bases needs a union; use
// SearchFor.
func (m *Model) QueryFor(c Capability) (*Query, error) {
	if len(c.ObjectClasses) == 0 && len(c.Bases) == 0 {
		return nil, ErrNoSearchCriteria
	}
	if len(c.Bases) > 1 {
		return nil, fmt.Errorf("capability %q spans %d bases, use SearchFor", c.Name, len(c.Bases))
	}

	base := m.dir.BaseDN()
	if len(c.Bases) == 1 {
		base = c.Bases[0]
	}
	root, err := NewEntry(m.dir, base)
	if err != nil {
		return nil, err
	}
	return root.Query().Filter(capabilityFilter(c)), nil
}

// SearchFor builds the union of per-base queries selecting a capability's
// entries, all sharing the capability's filter, in declared base order.
func (m *Model) SearchFor(c Capability) (*QueryUnion, error) {
	if len(c.ObjectClasses) == 0 && len(c.Bases) == 0 {
		return nil, ErrNoSearchCriteria
	}

	bases := c.Bases
	if len(bases) == 0 {
		bases = []string{m.dir.BaseDN()}
	}

	union := NewQueryUnion()
	for _, base := range bases {
		root, err := NewEntry(m.dir, base)
		if err != nil {
			return nil, err
		}
		union = union.Add(root.Query().Filter(capabilityFilter(c)))
	}
	return union, nil
}

// MixinsForEntry resolves the capabilities of one model class that apply to
// an entry: its objectClass set is matched against the class index and its
// DN against the base index, duplicates folded.
func (m *Model) MixinsForEntry(modelClass string, e *Entry) ([]Capability, error) {
	classes, err := e.ObjectClasses()
	if err != nil {
		return nil, err
	}
	r := m.Registry(modelClass)
	matches := append(r.MixinsForObjectClasses(classes), r.MixinsForDN(e.DN())...)
	return dedupeCapabilities(matches), nil
}

// BoundEntry is an entry with its resolved capabilities attached: the
// static composition that replaces extending an instance at runtime.
type BoundEntry struct {
	*Entry
	Capabilities []Capability
}

// Has reports whether a capability resolved onto the entry.
func (b *BoundEntry) Has(name string) bool {
	for _, c := range b.Capabilities {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Bind resolves an entry's capabilities under a model class and returns the
// entry decorated with them.
func (m *Model) Bind(modelClass string, e *Entry) (*BoundEntry, error) {
	caps, err := m.MixinsForEntry(modelClass, e)
	if err != nil {
		return nil, err
	}
	return &BoundEntry{Entry: e, Capabilities: caps}, nil
}

func removeCapability(list []Capability, name string) ([]Capability, bool) {
	out := list[:0]
	found := false
	for _, c := range list {
		if c.Name == name {
			found = true
			continue
		}
		out = append(out, c)
	}
	return out, found
}

func dedupeCapabilities(list []Capability) []Capability {
	seen := make(map[string]bool, len(list))
	var out []Capability
	for _, c := range list {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		out = append(out, c)
	}
	return out
}
