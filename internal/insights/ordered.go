package insights

// orderedMap groups values by key and remembers the order keys were first
// seen. Go map iteration order is random, and both the daily series and the
// category breakdown must come out in input order.
type orderedMap[V any] struct {
	keys  []string
	index map[string]*V
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{index: make(map[string]*V)}
}

// at returns the slot for key, creating a zero value on first use.
func (m *orderedMap[V]) at(key string) *V {
	if v, ok := m.index[key]; ok {
		return v
	}
	v := new(V)
	m.keys = append(m.keys, key)
	m.index[key] = v
	return v
}

func (m *orderedMap[V]) get(key string) (V, bool) {
	v, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return *v, true
}

func (m *orderedMap[V]) each(fn func(key string, v V)) {
	for _, k := range m.keys {
		fn(k, *m.index[k])
	}
}

func (m *orderedMap[V]) len() int {
	return len(m.keys)
}
