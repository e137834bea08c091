package ecs

import (
	"iter"
	"math/bits"
	"slices"
)

const (
	blockSize = 64
)

// sparseArray stores values indexed by entity ID in fixed-size blocks. A
// per-block bitmap records which slots are present, so the number of live
// entries and the highest index ever written are never confused.
type sparseArray[T any] struct {
	blocks []*[blockSize]T
	filled []uint64
	count  int
}

func (a *sparseArray[T]) locate(index int) (int, uint64) {
	return index / blockSize, uint64(1) << uint(index%blockSize)
}

// Set stores value at index, growing storage as needed. It reports whether an
// existing value was replaced.
func (a *sparseArray[T]) Set(index int, value T) bool {
	if index < 0 {
		return false
	}

	blockIdx, bit := a.locate(index)
	if n := blockIdx + 1; n > len(a.blocks) {
		a.blocks = slices.Grow(a.blocks, n-len(a.blocks))[:n]
		a.filled = slices.Grow(a.filled, n-len(a.filled))[:n]
	}
	if a.blocks[blockIdx] == nil {
		a.blocks[blockIdx] = new([blockSize]T)
	}

	replaced := a.filled[blockIdx]&bit != 0
	a.blocks[blockIdx][index%blockSize] = value
	if !replaced {
		a.filled[blockIdx] |= bit
		a.count++
	}
	return replaced
}

// Get returns the value at index and whether it is present.
func (a *sparseArray[T]) Get(index int) (T, bool) {
	var zero T
	if !a.Has(index) {
		return zero, false
	}
	blockIdx, _ := a.locate(index)
	return a.blocks[blockIdx][index%blockSize], true
}

// Has checks if a value exists at the given index.
func (a *sparseArray[T]) Has(index int) bool {
	if index < 0 {
		return false
	}
	blockIdx, bit := a.locate(index)
	if blockIdx >= len(a.filled) {
		return false
	}
	return a.filled[blockIdx]&bit != 0
}

// Len returns the number of present values.
func (a *sparseArray[T]) Len() int {
	return a.count
}

// All iterates present values in ascending index order.
func (a *sparseArray[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for blockIdx, word := range a.filled {
			for word != 0 {
				slot := bits.TrailingZeros64(word)
				word &^= uint64(1) << uint(slot)
				if !yield(blockIdx*blockSize+slot, a.blocks[blockIdx][slot]) {
					return
				}
			}
		}
	}
}
