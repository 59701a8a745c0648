// Package buffer implements the growable typed arrays that back every
// dynamic collection in the compiler and heap: bytecode, line tables,
// literal pools, function tables, and the gray worklist used by the
// collector. All of them share one growth rule, so it lives here once.
package buffer

import "unsafe"

// MinCapacity is the smallest capacity a non-empty Buffer grows to on its
// first Write. Small and fixed, per spec's "implementer's choice, small".
const MinCapacity = 8

// ByteAccounter receives byte-accounting deltas as a Buffer grows, per spec
// §4.1's "reallocation goes through the VM's allocator so byte accounting
// is kept." It is the same shape as object.Allocator's AddBytes method —
// deliberately a separate, minimal interface rather than an import of
// package object, since object itself imports buffer (Script/Function embed
// Buffer fields) and importing back would cycle. A nil ByteAccounter is
// valid and simply means "don't account" (e.g. in this package's own
// tests, which have no heap to report to).
type ByteAccounter interface {
	AddBytes(n int)
}

// Buffer is a growable array of T. The zero value is an empty, usable
// buffer. Growth doubles capacity (or jumps to MinCapacity from empty),
// mirroring the teacher's paged-memory doubling without the paging: these
// buffers are always contiguous.
type Buffer[T any] struct {
	items []T
}

// elemSize is the per-element byte cost used for accounting, computed once
// per instantiation of Buffer[T] rather than hand-maintained per caller.
func elemSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Init discards any existing contents and reserves capacity for n items.
func (b *Buffer[T]) Init(capacity int) {
	b.items = make([]T, 0, capacity)
}

// Len reports the number of written items.
func (b *Buffer[T]) Len() int { return len(b.items) }

// Cap reports the current backing capacity.
func (b *Buffer[T]) Cap() int { return cap(b.items) }

// At returns the item at index i.
func (b *Buffer[T]) At(i int) T { return b.items[i] }

// Set overwrites the item at index i.
func (b *Buffer[T]) Set(i int, v T) { b.items[i] = v }

// Items returns the live slice of written items. The caller must not retain
// it across a subsequent Write, which may reallocate.
func (b *Buffer[T]) Items() []T { return b.items }

// Write appends v, growing the backing array by a factor of two (from a
// floor of MinCapacity) if needed, and returns the index v was written to.
// Growth is reported to a (if non-nil) per spec §4.1.
func (b *Buffer[T]) Write(a ByteAccounter, v T) int {
	if len(b.items) == cap(b.items) {
		b.grow(a)
	}
	i := len(b.items)
	b.items = append(b.items, v)
	return i
}

// FillN appends n copies of v.
func (b *Buffer[T]) FillN(a ByteAccounter, n int, v T) {
	for i := 0; i < n; i++ {
		b.Write(a, v)
	}
}

// Truncate discards items past n, keeping the backing array.
func (b *Buffer[T]) Truncate(n int) {
	b.items = b.items[:n]
}

// Clear empties the buffer without releasing its backing array.
func (b *Buffer[T]) Clear() {
	var zero T
	for i := range b.items {
		b.items[i] = zero
	}
	b.items = b.items[:0]
}

func (b *Buffer[T]) grow(a ByteAccounter) {
	oldCap := cap(b.items)
	newCap := oldCap * 2
	if newCap < MinCapacity {
		newCap = MinCapacity
	}
	grown := make([]T, len(b.items), newCap)
	copy(grown, b.items)
	b.items = grown
	if a != nil {
		a.AddBytes((newCap - oldCap) * elemSize[T]())
	}
}
