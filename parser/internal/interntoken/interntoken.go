package interntoken

import "sync"

// Table interns strings so that repeated symbols read from source share one
// backing string.
type Table struct {
	mut    sync.RWMutex
	intern map[string]string
}

func NewTable() *Table {
	return &Table{
		intern: make(map[string]string),
	}
}

// Get returns the interned string equal to s, inserting s when no such
// string exists.
func (tab *Table) Get(s string) string {
	if tab == nil {
		return s
	}
	tab.mut.RLock()
	p, ok := tab.intern[s]
	tab.mut.RUnlock()
	if ok {
		return p
	}
	return tab.insert(s)
}

func (tab *Table) insert(s string) string {
	tab.mut.Lock()
	defer tab.mut.Unlock()
	// Another goroutine may have inserted s after the read lock was released.
	p, ok := tab.intern[s]
	if ok {
		return p
	}
	tab.intern[s] = s
	return s
}

// Len returns the number of strings in the table.
func (tab *Table) Len() int {
	tab.mut.RLock()
	defer tab.mut.RUnlock()
	return len(tab.intern)
}
