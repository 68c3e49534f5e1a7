package character

// entries is a string-keyed mapping that remembers first-insertion order.
// Overwriting a key keeps its original position.
type entries[V any] struct {
	keys   []string
	values map[string]V
}

func newEntries[V any]() *entries[V] {
	return &entries[V]{values: make(map[string]V)}
}

func (e *entries[V]) set(key string, value V) {
	if _, exists := e.values[key]; !exists {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

func (e *entries[V]) get(key string) (V, bool) {
	v, ok := e.values[key]
	return v, ok
}

// names returns the keys in insertion order
func (e *entries[V]) names() []string {
	out := make([]string, len(e.keys))
	copy(out, e.keys)
	return out
}

// toMap returns a copy of the values
func (e *entries[V]) toMap() map[string]V {
	out := make(map[string]V, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}
