package args

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPermutate_SingleList(t *testing.T) {
	out := Permutate([][]string{{"a", "b", "c"}})
	require.Equal(t, []string{"a", "b", "c"}, out)
}

func TestPermutate_OuterFirstOrdering(t *testing.T) {
	// spec.md §8 scenario 5: "::: a b ::: 1 2" yields a 1, a 2, b 1, b 2 —
	// the last list varies fastest.
	out := Permutate([][]string{{"a", "b"}, {"1", "2"}})
	require.Equal(t, []string{"a 1", "a 2", "b 1", "b 2"}, out)
}

func TestPermutate_ThreeLists(t *testing.T) {
	out := Permutate([][]string{{"x"}, {"a", "b"}, {"1", "2"}})
	require.Equal(t, []string{"x a 1", "x a 2", "x b 1", "x b 2"}, out)
}

func TestPermutate_Empty(t *testing.T) {
	require.Nil(t, Permutate(nil))
}
