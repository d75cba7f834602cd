package lang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	require.Equal(t, []string{"c++", "java", "python"}, r.Names())

	py, ok := r.Lookup("python")
	require.True(t, ok)
	require.Equal(t, ".py", py.Extension)

	_, ok = r.Lookup("cobol")
	require.False(t, ok)
}

func TestPythonCompileIsIdentity(t *testing.T) {
	r := Default()
	py, ok := r.Lookup("python")
	require.True(t, ok)

	out, err := py.Compile(context.Background(), "/tmp/4/A/solution.py")
	require.NoError(t, err)
	require.Equal(t, "/tmp/4/A/solution.py", out, "interpreted languages run the source directly")
}
