package jobpath

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_DistinctIDsDontCollide(t *testing.T) {
	out1, err1 := New("/base", 1)
	out2, err2 := New("/base", 2)

	require.NotEqual(t, out1, out2)
	require.NotEqual(t, err1, err2)
}

func TestNew_SameIDIsDeterministic(t *testing.T) {
	out1, err1 := New("/base", 7)
	out2, err2 := New("/base", 7)

	require.Equal(t, out1, out2)
	require.Equal(t, err1, err2)
}

func TestCursor_MatchesNew(t *testing.T) {
	c := NewCursor("/base")

	for id := 0; id < 50; id++ {
		wantOut, wantErr := New("/base", id)
		gotOut, gotErr := c.Next(id)
		require.Equal(t, wantOut, gotOut)
		require.Equal(t, wantErr, gotErr)
	}
}
