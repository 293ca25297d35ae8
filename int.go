package fessanalysis

import (
	"sort"
)

// intersection returns the values present in every sorted slice.
func intersection(sorted ...[]uint32) []uint32 {
	if len(sorted) == 0 {
		return nil
	}
	sort.Slice(sorted, func(i, j int) bool {
		return len(sorted[i]) < len(sorted[j])
	})
	var result []uint32
	cursors := make([]int, len(sorted))
	for _, value := range sorted[0] {
		found := true
		for i := 1; i < len(sorted); i++ {
			for cursors[i] < len(sorted[i]) && sorted[i][cursors[i]] < value {
				cursors[i]++
			}
			if cursors[i] == len(sorted[i]) {
				return result
			}
			if sorted[i][cursors[i]] != value {
				found = false
				break
			}
		}
		if found {
			result = append(result, value)
		}
	}
	return result
}
