package args

import "strings"

// Permutate computes the Cartesian product of lists, traversing outer-first
// (the last list varies fastest), and joins each combination with a single
// space — matching spec.md §8 scenario 5: "::: a b ::: 1 2" yields
// "a 1", "a 2", "b 1", "b 2".
func Permutate(lists [][]string) []string {
	if len(lists) == 0 {
		return nil
	}
	if len(lists) == 1 {
		out := make([]string, len(lists[0]))
		copy(out, lists[0])
		return out
	}

	combos := [][]string{{}}
	for _, list := range lists {
		var next [][]string
		for _, combo := range combos {
			for _, elem := range list {
				extended := make([]string, len(combo), len(combo)+1)
				copy(extended, combo)
				extended = append(extended, elem)
				next = append(next, extended)
			}
		}
		combos = next
	}

	out := make([]string, len(combos))
	for i, combo := range combos {
		out[i] = strings.Join(combo, " ")
	}
	return out
}
