// internal/lifecycle/remote.go
//
// Per-entity fetch state. "Not requested yet" and "requested, none exists"
// are different facts and gating depends on the difference, so the state is
// a real type instead of a nil-means-whatever map entry.

package lifecycle

// FetchState enumerates where a keyed detail fetch currently stands.
type FetchState int

const (
	// Unrequested means no fetch has been issued for the key.
	Unrequested FetchState = iota
	// Loading means a fetch is in flight.
	Loading
	// Loaded means a fetch resolved: either with a value or with the
	// server's definitive "none exists".
	Loaded
)

// Remote carries the fetch state for one remote record. The zero value is
// Unrequested.
type Remote[T any] struct {
	state  FetchState
	value  *T
	absent bool
}

// LoadingRemote returns a Remote marking an in-flight fetch.
func LoadingRemote[T any]() Remote[T] {
	return Remote[T]{state: Loading}
}

// Present returns a Remote resolved with a value.
func Present[T any](v T) Remote[T] {
	return Remote[T]{state: Loaded, value: &v}
}

// Absent returns a Remote resolved with "none exists".
func Absent[T any]() Remote[T] {
	return Remote[T]{state: Loaded, absent: true}
}

// State returns the fetch state.
func (r Remote[T]) State() FetchState { return r.state }

// IsLoading reports an in-flight fetch.
func (r Remote[T]) IsLoading() bool { return r.state == Loading }

// IsLoaded reports a resolved fetch, present or absent.
func (r Remote[T]) IsLoaded() bool { return r.state == Loaded }

// IsAbsent reports the server definitively answered "none exists".
func (r Remote[T]) IsAbsent() bool { return r.state == Loaded && r.absent }

// Value returns the loaded record and whether one is present.
func (r Remote[T]) Value() (*T, bool) {
	if r.state == Loaded && !r.absent {
		return r.value, true
	}
	return nil, false
}
