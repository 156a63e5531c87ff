package internal

import (
	"iter"
	"slices"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return
				}
			}
		}
	}
}

// Permutations yields every ordering of items, using Heap's algorithm.
// The yielded slice is reused between iterations; clone it to keep it.
func Permutations[T any](items []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		perm := slices.Clone(items)
		count := make([]int, len(perm))

		if !yield(perm) {
			return
		}

		for n := 1; n < len(perm); {
			if count[n] < n {
				if n%2 == 0 {
					perm[0], perm[n] = perm[n], perm[0]
				} else {
					perm[count[n]], perm[n] = perm[n], perm[count[n]]
				}
				if !yield(perm) {
					return
				}
				count[n]++
				n = 1
			} else {
				count[n] = 0
				n++
			}
		}
	}
}
