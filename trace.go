package kervan

import "github.com/google/uuid"

// searchID returns a fresh identifier correlating the log lines of one
// directory search.
func searchID() string {
	return uuid.NewString()
}
