package args

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaterializer_Shell(t *testing.T) {
	m := Materializer(Tokenize("echo {} {.}"), true)

	name, argv := m("/tmp/report.txt", 2)

	require.Equal(t, "sh", name)
	require.Equal(t, []string{"sh", "-c", "echo /tmp/report.txt /tmp/report", "_", "/tmp/report.txt"}, argv)
}

func TestMaterializer_Exec(t *testing.T) {
	m := Materializer(Tokenize("cp {} {/}.bak"), false)

	name, argv := m("dir/file.txt", 0)

	require.Equal(t, "cp", name)
	require.Equal(t, []string{"cp", "dir/file.txt", "file.txt.bak"}, argv)
}

func TestMaterializer_JobNumberIsOneIndexed(t *testing.T) {
	m := Materializer(Tokenize("job {#}"), false)

	_, argv := m("anything", 0)
	require.Equal(t, []string{"job", "1"}, argv)

	_, argv = m("anything", 4)
	require.Equal(t, []string{"job", "5"}, argv)
}

func TestExpand_PathPlaceholders(t *testing.T) {
	require.Equal(t, "/a/b/c.txt", expand("{}", "/a/b/c.txt", 0))
	require.Equal(t, "/a/b/c", expand("{.}", "/a/b/c.txt", 0))
	require.Equal(t, "c.txt", expand("{/}", "/a/b/c.txt", 0))
	require.Equal(t, "/a/b", expand("{//}", "/a/b/c.txt", 0))
	require.Equal(t, "c", expand("{/.}", "/a/b/c.txt", 0))
}
