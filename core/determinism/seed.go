// Package determinism provides the stable, hash-based score source for
// synthesized quality data. Identical seed keys always yield identical
// scores, across processes and across calls; there is no shared
// generator state anywhere in this package.
package determinism

import (
	"fmt"
	"sort"
	"strings"
)

// Separator joins the identity parts of a seed key. Fixed: changing it
// would silently re-roll every score ever shown.
const Separator = "|"

// scoreRange is the size of the inclusive output range [0, 100].
const scoreRange = 101

// SeedKey builds the stable identity string for one (project, vendor,
// region, dimension) draw.
func SeedKey(projectID, vendor, region, dimensionID string) string {
	return strings.Join([]string{projectID, vendor, region, dimensionID}, Separator)
}

// Score maps a seed key onto an integer in [0, 100]. Each distinct key
// is an independent draw; callers must not rely on any correlation
// between draws beyond that independence.
func Score(seedKey string) int {
	h := mix(fnv1a64(seedKey))
	// Fold the high half in before reducing so the modulo does not read
	// only low-order bits.
	return int((h ^ h>>32) % scoreRange)
}

// fnv1a64 is the 64-bit FNV-1a string hash.
func fnv1a64(s string) uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	h := uint64(offset)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	return h
}

// mix is a splitmix64-style finalizer. Structurally similar seed keys
// (shared prefixes, one differing suffix) land close together under raw
// FNV; the finalizer spreads them across the full range.
func mix(h uint64) uint64 {
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return h
}

// SortedKeys returns a map's keys in sorted order, for deterministic
// iteration over Go maps.
func SortedKeys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	return keys
}
