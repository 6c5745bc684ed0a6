package interntoken

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	tab := NewTable()
	a := tab.Get("lambda")
	b := tab.Get(string([]byte("lambda")))
	assert.Equal(t, "lambda", b)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, tab.Len())
	tab.Get("define")
	assert.Equal(t, 2, tab.Len())
}

func TestTableNil(t *testing.T) {
	var tab *Table
	assert.Equal(t, "x", tab.Get("x"))
}

func TestTableConcurrent(t *testing.T) {
	tab := NewTable()
	words := []string{"car", "cdr", "cons", "list", "map"}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, w := range words {
				tab.Get(w)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, len(words), tab.Len())
}
