package args

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseJobs_Valid(t *testing.T) {
	n, err := parseJobs("8")
	require.NoError(t, err)
	require.Equal(t, 8, n)
}

func TestParseJobs_NotANumber(t *testing.T) {
	_, err := parseJobs("four")

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, KindJobsNaN, pe.Kind)
}

func TestParseJobs_Zero(t *testing.T) {
	_, err := parseJobs("0")

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, KindJobsNaN, pe.Kind)
}

func TestParseJobs_Negative(t *testing.T) {
	_, err := parseJobs("-3")

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, KindJobsNaN, pe.Kind)
}
