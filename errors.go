package kervan

import "errors"

// Error kinds surfaced by the query and entry layers. DN grammar errors are
// defined in the dn package and schema errors in the schema package; both
// pass through unwrapped.
var (
	// ErrNotFound is returned when an entry fetch finds no record. Conn
	// implementations report a missing entry by returning an error that
	// wraps (or equals) this sentinel. Exists converts it to false.
	ErrNotFound = errors.New("entry does not exist in the directory")

	// ErrIncomparable is returned when two entries of different kinds are
	// ordered against each other.
	ErrIncomparable = errors.New("entries of different kinds are incomparable")

	// ErrNoSearchCriteria is returned when a query is requested from a
	// capability that declares neither object classes nor base DNs.
	ErrNoSearchCriteria = errors.New("no search criteria defined")

	// ErrUnknownScope is returned when a verbatim scope name stored on a
	// query cannot be resolved at search time.
	ErrUnknownScope = errors.New("unrecognized search scope")
)

// IsNotFound reports whether err indicates a missing directory entry.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
