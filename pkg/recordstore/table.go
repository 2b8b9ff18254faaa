package recordstore

// Table gives typed access to the records of one kind.
type Table[T any] struct {
	s    *Store
	kind string
}

// NewTable returns a Table for the records of the kind.
func NewTable[T any](s *Store, kind string) Table[T] {
	return Table[T]{s, kind}
}

// Kind returns the kind of the records.
func (t Table[T]) Kind() string { return t.kind }

// Add stores a new record and returns its ID.
func (t Table[T]) Add(v T) (int, error) { return t.s.Add(t.kind, v) }

// Put replaces the record with the given ID.
func (t Table[T]) Put(id int, v T) error { return t.s.Put(t.kind, id, v) }

// Get returns the record with the given ID.
func (t Table[T]) Get(id int) (T, error) {
	var v T
	err := t.s.Get(t.kind, id, &v)
	return v, err
}

// IDs returns the IDs of all records in ascending order.
func (t Table[T]) IDs() ([]int, error) { return t.s.IDs(t.kind) }

// Delete deletes the record with the given ID.
func (t Table[T]) Delete(id int) error { return t.s.Delete(t.kind, id) }
