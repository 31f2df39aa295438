package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Usserslalo/delixmi-backend-sub003/entity"
)

// Selections are option identities, not quantities: an option is either chosen
// or not. Two lines for the same product merge only when their selected
// option-id sets are exactly equal.

func sortedUniqueIDs(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func equalIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SelectionsKey is the storage identity of a configuration: sorted unique
// option ids joined with ",". An empty selection set keys to "".
func SelectionsKey(optionIDs []uint) string {
	ids := sortedUniqueIDs(optionIDs)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}

// ResolveIdentity returns the existing line for this product whose stored
// selection set equals the requested one, or nil when the configuration is new
// to the cart. An empty request matches only the zero-selection line.
func ResolveIdentity(items []entity.CartItem, optionIDs []uint) *entity.CartItem {
	want := sortedUniqueIDs(optionIDs)
	for i := range items {
		have := make([]uint, 0, len(items[i].Selections))
		for _, s := range items[i].Selections {
			have = append(have, s.ModifierOptionID)
		}
		if equalIDs(want, sortedUniqueIDs(have)) {
			return &items[i]
		}
	}
	return nil
}
