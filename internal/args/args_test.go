package args

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_SimpleInputList(t *testing.T) {
	a, err := Parse([]string{"echo", "{}", ":::", "a", "b", "c"}, strings.NewReader(""))
	require.NoError(t, err)

	require.Equal(t, "echo {}", a.TemplateText)
	require.Equal(t, []string{"a", "b", "c"}, a.Inputs)
	require.True(t, a.Flags.Grouped)
	require.True(t, a.Flags.UseShell)
}

func TestParse_MultipleListsProduceCartesianProduct(t *testing.T) {
	a, err := Parse([]string{"echo", "{}", ":::", "a", "b", ":::", "1", "2"}, strings.NewReader(""))
	require.NoError(t, err)

	require.Equal(t, []string{"a 1", "a 2", "b 1", "b 2"}, a.Inputs)
}

func TestParse_AppendMarkerExtendsCurrentList(t *testing.T) {
	a, err := Parse([]string{"echo", "{}", ":::", "a", ":::+", "b", "c"}, strings.NewReader(""))
	require.NoError(t, err)

	require.Equal(t, []string{"a", "b", "c"}, a.Inputs)
}

func TestParse_StdinFallback(t *testing.T) {
	a, err := Parse([]string{"echo", "{}"}, strings.NewReader("one\ntwo\nthree\n"))
	require.NoError(t, err)

	require.Equal(t, []string{"one", "two", "three"}, a.Inputs)
}

func TestParse_JobsFlagShortForm(t *testing.T) {
	a, err := Parse([]string{"-j4", "echo", "{}", ":::", "a"}, strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, 4, a.Workers)
}

func TestParse_JobsFlagLongForm(t *testing.T) {
	a, err := Parse([]string{"--jobs", "3", "echo", "{}", ":::", "a"}, strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, 3, a.Workers)
}

func TestParse_BundledShortFlags(t *testing.T) {
	a, err := Parse([]string{"-nuqv", "echo", "{}", ":::", "a"}, strings.NewReader(""))
	require.NoError(t, err)

	require.False(t, a.Flags.UseShell)
	require.False(t, a.Flags.Grouped)
	require.True(t, a.Flags.Quiet)
	require.True(t, a.Flags.Verbose)
}

func TestParse_LongFlags(t *testing.T) {
	a, err := Parse([]string{"--no-shell", "--ungroup", "--quiet", "--verbose", "echo", "{}", ":::", "a"}, strings.NewReader(""))
	require.NoError(t, err)

	require.False(t, a.Flags.UseShell)
	require.False(t, a.Flags.Grouped)
	require.True(t, a.Flags.Quiet)
	require.True(t, a.Flags.Verbose)
}

func TestParse_HelpRequested(t *testing.T) {
	_, err := Parse([]string{"-h"}, strings.NewReader(""))
	require.ErrorIs(t, err, ErrHelpRequested)
}

func TestParse_VersionRequested(t *testing.T) {
	_, err := Parse([]string{"--version"}, strings.NewReader(""))
	require.ErrorIs(t, err, ErrVersionRequested)
}

func TestParse_NumCPUCoresRequested(t *testing.T) {
	_, err := Parse([]string{"--num-cpu-cores"}, strings.NewReader(""))
	require.ErrorIs(t, err, ErrNumCPURequested)
}

func TestParse_UnknownFlagIsParseError(t *testing.T) {
	_, err := Parse([]string{"--bogus", "echo", "{}", ":::", "a"}, strings.NewReader(""))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, KindInvalidArgument, pe.Kind)
}

func TestParse_NoArguments(t *testing.T) {
	_, err := Parse(nil, strings.NewReader(""))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, KindNoArguments, pe.Kind)
}

func TestParse_JobsMissingValue(t *testing.T) {
	_, err := Parse([]string{"--jobs"}, strings.NewReader(""))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, KindJobsNoValue, pe.Kind)
}

func TestParse_FileOfInputsNotFound(t *testing.T) {
	_, err := Parse([]string{"echo", "{}", "::::", "/no/such/file"}, strings.NewReader(""))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, KindInputFile, pe.Kind)
}
