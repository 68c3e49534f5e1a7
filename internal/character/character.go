package character

import (
	"strconv"
	"strings"

	charerr "github.com/KirkDiggler/charsheet/internal/errors"
)

const (
	// NameAttribute is the attribute every character is seeded with
	NameAttribute = "name"

	fieldSeparator = "|"
	deltaSeparator = ":"
)

// Character holds the attributes, stats and modifiers of a tabletop character.
// The zero value has no name attribute; New seeds one. It is not safe for concurrent mutation.
type Character struct {
	attributes *entries[string]
	stats      *entries[int]
	modifiers  []*Modifier

	// placeholder is set while a decoded character has not read its name record
	placeholder bool
}

// New creates a character with no stats or modifiers and only the name attribute set
func New(name string) *Character {
	c := &Character{
		attributes: newEntries[string](),
		stats:      newEntries[int](),
	}
	c.attributes.set(NameAttribute, name)
	return c
}

// Name returns the current value of the name attribute
func (c *Character) Name() string {
	c.ensure()
	name, _ := c.attributes.get(NameAttribute)
	return name
}

// AddStat inserts or overwrites a stat
func (c *Character) AddStat(name string, value int) error {
	if name == "" {
		return charerr.InvalidArgument("stat name is required")
	}
	c.ensure()
	c.stats.set(name, value)
	return nil
}

// AddStatFromSerialized parses a name|value record and stores the stat.
// An empty name is accepted here since the record itself was supplied.
func (c *Character) AddStatFromSerialized(record string) error {
	name, raw, err := splitPair(record)
	if err != nil {
		return err
	}
	value, convErr := strconv.Atoi(strings.TrimSpace(raw))
	if convErr != nil {
		return charerr.ParseErrorf("stat '%s' has non-integer value '%s'", name, raw).
			WithMeta("record", record)
	}
	c.ensure()
	c.stats.set(name, value)
	return nil
}

// AddAttribute inserts or overwrites an attribute
func (c *Character) AddAttribute(name, value string) {
	c.setAttribute(name, value)
}

// AddAttributeFromSerialized parses a name|value record and stores the attribute.
// The value is kept as-is.
func (c *Character) AddAttributeFromSerialized(record string) error {
	name, value, err := splitPair(record)
	if err != nil {
		return err
	}
	c.setAttribute(name, value)
	return nil
}

// AddModifier appends a modifier. Modifiers may share a name but it cannot be empty.
func (c *Character) AddModifier(m *Modifier) error {
	if m == nil {
		return charerr.InvalidArgument("modifier cannot be nil")
	}
	if m.Name == "" {
		return charerr.InvalidArgument("modifier name is required")
	}
	c.modifiers = append(c.modifiers, m)
	return nil
}

// AddModifierFromSerialized parses a modifier record and appends it
func (c *Character) AddModifierFromSerialized(record string) error {
	m, err := ParseModifier(record)
	if err != nil {
		return err
	}
	c.modifiers = append(c.modifiers, m)
	return nil
}

// DropModifier removes the first modifier with the given name and returns it
func (c *Character) DropModifier(name string) (*Modifier, error) {
	i := c.modifierIndex(name)
	if i < 0 {
		return nil, modifierNotFound(name)
	}
	m := c.modifiers[i]
	c.modifiers = append(c.modifiers[:i], c.modifiers[i+1:]...)
	return m, nil
}

// Attribute looks up an attribute value
func (c *Character) Attribute(name string) (string, error) {
	c.ensure()
	value, ok := c.attributes.get(name)
	if !ok {
		return "", charerr.NotFoundf("attribute '%s' not found", name).
			WithMeta("attribute", name)
	}
	return value, nil
}

// Stat looks up a stat value
func (c *Character) Stat(name string) (int, error) {
	c.ensure()
	value, ok := c.stats.get(name)
	if !ok {
		return 0, charerr.NotFoundf("stat '%s' not found", name).
			WithMeta("stat", name)
	}
	return value, nil
}

// Modifier returns the first modifier with the given name without removing it
func (c *Character) Modifier(name string) (*Modifier, error) {
	i := c.modifierIndex(name)
	if i < 0 {
		return nil, modifierNotFound(name)
	}
	return c.modifiers[i], nil
}

// Attributes returns a copy of the attributes
func (c *Character) Attributes() map[string]string {
	c.ensure()
	return c.attributes.toMap()
}

// AttributeNames returns attribute names in encoding order
func (c *Character) AttributeNames() []string {
	c.ensure()
	return c.attributes.names()
}

// Stats returns a copy of the stats
func (c *Character) Stats() map[string]int {
	c.ensure()
	return c.stats.toMap()
}

// StatNames returns stat names in encoding order
func (c *Character) StatNames() []string {
	c.ensure()
	return c.stats.names()
}

// Modifiers returns the modifiers in insertion order
func (c *Character) Modifiers() []*Modifier {
	out := make([]*Modifier, len(c.modifiers))
	copy(out, c.modifiers)
	return out
}

func (c *Character) setAttribute(name, value string) {
	c.ensure()
	c.attributes.set(name, value)
	if name == NameAttribute {
		c.placeholder = false
	}
}

// ensure makes the zero value usable
func (c *Character) ensure() {
	if c.attributes == nil {
		c.attributes = newEntries[string]()
	}
	if c.stats == nil {
		c.stats = newEntries[int]()
	}
}

func (c *Character) modifierIndex(name string) int {
	for i, m := range c.modifiers {
		if m.Name == name {
			return i
		}
	}
	return -1
}

func modifierNotFound(name string) error {
	return charerr.NotFoundf("modifier '%s' not found", name).
		WithMeta("modifier", name)
}

// splitPair splits a name|value record, requiring exactly two fields
func splitPair(record string) (string, string, error) {
	fields := strings.Split(record, fieldSeparator)
	if len(fields) != 2 {
		return "", "", charerr.ParseErrorf("expected 2 '%s'-separated fields, got %d", fieldSeparator, len(fields)).
			WithMeta("record", record)
	}
	return fields[0], fields[1], nil
}
