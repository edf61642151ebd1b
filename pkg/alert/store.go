package alert

import "fmt"

// Store is a read-only view over one batch of alerts. Position i in the store
// is the node id of that alert in the similarity graph.
type Store struct {
	alerts []Alert
	index  map[string]int
}

// NewStore validates the batch and indexes it by uid. The batch must hold at
// least MinAlerts records with unique, non-empty uids.
func NewStore(alerts []Alert) (*Store, error) {
	if len(alerts) < MinAlerts {
		return nil, &Error{
			Op:    "new_store",
			Index: -1,
			Cause: fmt.Errorf("%w: need at least %d, got %d", ErrTooFewAlerts, MinAlerts, len(alerts)),
		}
	}

	s := &Store{
		alerts: make([]Alert, len(alerts)),
		index:  make(map[string]int, len(alerts)),
	}
	copy(s.alerts, alerts)

	for i, a := range s.alerts {
		if err := Validate(a); err != nil {
			return nil, &Error{Op: "new_store", UID: a.UID, Index: i, Cause: err}
		}
		if prev, ok := s.index[a.UID]; ok {
			return nil, &Error{
				Op:    "new_store",
				UID:   a.UID,
				Index: i,
				Cause: fmt.Errorf("%w: first seen at index %d", ErrDuplicateUID, prev),
			}
		}
		s.index[a.UID] = i
	}

	return s, nil
}

// Len returns the number of alerts
func (s *Store) Len() int {
	return len(s.alerts)
}

// At returns the alert at position i
func (s *Store) At(i int) Alert {
	return s.alerts[i]
}

// All returns a copy of the alerts in input order
func (s *Store) All() []Alert {
	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// Index returns the position of uid
func (s *Store) Index(uid string) (int, bool) {
	i, ok := s.index[uid]
	return i, ok
}

// Lookup returns the alert with the given uid
func (s *Store) Lookup(uid string) (Alert, error) {
	i, ok := s.index[uid]
	if !ok {
		return Alert{}, UnknownUIDError(uid)
	}
	return s.alerts[i], nil
}

// LookupAll resolves uids in order. A single missing uid fails the whole
// lookup; nothing is silently dropped.
func (s *Store) LookupAll(uids []string) ([]Alert, error) {
	out := make([]Alert, 0, len(uids))
	for _, uid := range uids {
		a, err := s.Lookup(uid)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// UIDs maps node ids back to uids
func (s *Store) UIDs(nodes []int) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = s.alerts[n].UID
	}
	return out
}
