package character

import (
	"strconv"
	"strings"

	charerr "github.com/KirkDiggler/charsheet/internal/errors"
)

// Modifier is a named bundle of stat deltas, e.g. a piece of equipment or an effect
type Modifier struct {
	Name        string
	Description string

	deltas *entries[int]
}

// NewModifier creates a modifier that touches the given stats.
// Every listed stat starts with a delta of 0; use SetDelta to change it.
func NewModifier(name, description string, stats ...string) *Modifier {
	m := &Modifier{
		Name:        name,
		Description: description,
		deltas:      newEntries[int](),
	}
	for _, stat := range stats {
		m.deltas.set(stat, 0)
	}
	return m
}

// SetDelta sets how much the modifier changes a stat, adding the stat if needed
func (m *Modifier) SetDelta(stat string, delta int) {
	m.ensure()
	m.deltas.set(stat, delta)
}

// Delta returns the delta for a stat
func (m *Modifier) Delta(stat string) (int, error) {
	m.ensure()
	delta, ok := m.deltas.get(stat)
	if !ok {
		return 0, charerr.NotFoundf("modifier '%s' has no stat '%s'", m.Name, stat).
			WithMeta("modifier", m.Name).
			WithMeta("stat", stat)
	}
	return delta, nil
}

// Stats returns a copy of the stat deltas
func (m *Modifier) Stats() map[string]int {
	m.ensure()
	return m.deltas.toMap()
}

// StatNames returns the modified stats in the order they were added
func (m *Modifier) StatNames() []string {
	m.ensure()
	return m.deltas.names()
}

// String encodes the modifier as name|description|stat:delta|... with trailing separators trimmed
func (m *Modifier) String() string {
	m.ensure()

	var b strings.Builder
	b.WriteString(m.Name)
	b.WriteString(fieldSeparator)
	b.WriteString(m.Description)
	b.WriteString(fieldSeparator)
	for _, stat := range m.deltas.keys {
		b.WriteString(stat)
		b.WriteString(deltaSeparator)
		b.WriteString(strconv.Itoa(m.deltas.values[stat]))
		b.WriteString(fieldSeparator)
	}
	return strings.TrimRight(b.String(), fieldSeparator)
}

// ensure makes the zero value usable
func (m *Modifier) ensure() {
	if m.deltas == nil {
		m.deltas = newEntries[int]()
	}
}

// ParseModifier reads a modifier record of the form name|description|stat:delta|...
// The description and stat fields are optional; the name is not.
func ParseModifier(record string) (*Modifier, error) {
	fields := strings.Split(record, fieldSeparator)
	if fields[0] == "" {
		return nil, charerr.ParseErrorf("modifier record has no name").
			WithMeta("record", record)
	}

	m := NewModifier(fields[0], "")
	if len(fields) > 1 {
		m.Description = fields[1]
	}

	for _, field := range fields[min(len(fields), 2):] {
		stat, rawDelta, found := strings.Cut(field, deltaSeparator)
		if !found {
			return nil, charerr.ParseErrorf("modifier stat '%s' is missing the '%s' separator", field, deltaSeparator).
				WithMeta("record", record)
		}
		delta, err := strconv.Atoi(strings.TrimSpace(rawDelta))
		if err != nil {
			return nil, charerr.ParseErrorf("modifier stat '%s' has non-integer delta '%s'", stat, rawDelta).
				WithMeta("record", record)
		}
		m.SetDelta(stat, delta)
	}

	return m, nil
}
