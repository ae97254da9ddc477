// Package internal holds iterator helpers shared by the critter packages.
package internal

import (
	"cmp"
	"iter"
	"slices"
)

// IterSeq2Concat yields every pair of each sequence in turn.
// Later sequences may repeat keys of earlier ones.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

// IterSeq2Sorted collects a sequence and yields it in key order.
// For repeated keys, the last value wins.
func IterSeq2Sorted[K cmp.Ordered, V any](seq iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		values := map[K]V{}
		var keys []K
		for key, value := range seq {
			if _, seen := values[key]; !seen {
				keys = append(keys, key)
			}
			values[key] = value
		}
		slices.Sort(keys)
		for _, key := range keys {
			if !yield(key, values[key]) {
				return
			}
		}
	}
}
