package pipeline

import "errors"

// Terminal conditions for a single run. File-system errors (not-found,
// permission) surface as wrapped fs sentinels from the source package and
// abort the run; these two cover the "resolved or parsed nothing" cases.
var (
	// ErrNoMatchingFiles means the resolver selected zero files under the
	// given root and filters.
	ErrNoMatchingFiles = errors.New("no log files matched")

	// ErrNoEntriesParsed means every line of the selected input failed
	// parsing. Individual unparsable lines are skipped silently; an empty
	// result set is an error.
	ErrNoEntriesParsed = errors.New("no log entries found")
)
