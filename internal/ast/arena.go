package ast

const arenaChunk = 256

// Arena stores values in fixed-size chunks so growth never copies what was
// already allocated. Indices are 1-based; 0 means "no value".
type Arena[T any] struct {
	chunks [][]T
	n      uint32
}

func NewArena[T any](capHint uint) *Arena[T] {
	a := &Arena[T]{}
	if capHint > 0 {
		a.chunks = make([][]T, 0, (capHint+arenaChunk-1)/arenaChunk)
	}
	return a
}

// Allocate appends value and returns its index.
func (a *Arena[T]) Allocate(value T) uint32 {
	if a.n%arenaChunk == 0 {
		a.chunks = append(a.chunks, make([]T, 0, arenaChunk))
	}
	last := len(a.chunks) - 1
	a.chunks[last] = append(a.chunks[last], value)
	a.n++
	return a.n
}

func (a *Arena[T]) Get(index uint32) (T, bool) {
	if index == 0 || index > a.n {
		var zero T
		return zero, false
	}
	i := index - 1
	return a.chunks[i/arenaChunk][i%arenaChunk], true
}

// All iterates values in allocation order together with their indices.
func (a *Arena[T]) All(yield func(uint32, T) bool) {
	var idx uint32
	for _, chunk := range a.chunks {
		for _, v := range chunk {
			idx++
			if !yield(idx, v) {
				return
			}
		}
	}
}

func (a *Arena[T]) Len() uint32 { return a.n }
