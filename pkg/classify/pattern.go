// Package classify labels a flow graph with the attack topology it most
// resembles and a certainty in [0, 1].
package classify

import "fmt"

// Pattern is an attack topology
type Pattern int

const (
	OneToOne Pattern = iota
	OneToMany
	ManyToOne
	ManyToMany
)

// Priority is the tie-break order: on equal scores the earlier pattern wins.
// Scores are not unique at exact ties, so this order is part of the contract.
var Priority = []Pattern{OneToOne, OneToMany, ManyToOne, ManyToMany}

var patternNames = [...]string{"one-to-one", "one-to-many", "many-to-one", "many-to-many"}
var patternShort = [...]string{"oto", "otm", "mto", "mtm"}

func (p Pattern) valid() bool {
	return p >= OneToOne && p <= ManyToMany
}

// String returns the hyphenated name, e.g. "one-to-many"
func (p Pattern) String() string {
	if !p.valid() {
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
	return patternNames[p]
}

// Short returns the three-letter label, e.g. "otm"
func (p Pattern) Short() string {
	if !p.valid() {
		return "???"
	}
	return patternShort[p]
}

// ParsePattern accepts either the hyphenated name or the short label
func ParsePattern(s string) (Pattern, error) {
	for _, p := range Priority {
		if s == patternNames[p] || s == patternShort[p] {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown pattern %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (p Pattern) MarshalText() ([]byte, error) {
	if !p.valid() {
		return nil, fmt.Errorf("invalid pattern %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Pattern) UnmarshalText(text []byte) error {
	parsed, err := ParsePattern(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
