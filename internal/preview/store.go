package preview

// Store holds the single process-wide preview State. It has no lock: it is
// only read and written from the Bubble Tea update loop.
type Store struct {
	state    State
	version  uint64
	watchers []func(State)
}

// NewStore returns a Store holding Unset.
func NewStore() *Store {
	return &Store{}
}

// Get returns the current state.
func (s *Store) Get() State {
	return s.state
}

// Set replaces the state and notifies watchers synchronously.
func (s *Store) Set(st State) {
	s.state = st
	s.version++
	for _, w := range s.watchers {
		w(st)
	}
}

// Version increases on every Set. Views compare it to skip re-rendering.
func (s *Store) Version() uint64 {
	return s.version
}

// Watch registers fn to be called after every Set.
func (s *Store) Watch(fn func(State)) {
	s.watchers = append(s.watchers, fn)
}
