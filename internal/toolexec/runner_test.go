package toolexec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecRunnerMissingBinary(t *testing.T) {
	r := NewExecRunner()
	err := r.Run(context.Background(), Command{Path: "distbuilder-no-such-tool"})
	require.Error(t, err)
}

func TestExecRunnerLookPathMissing(t *testing.T) {
	r := NewExecRunner()
	_, err := r.LookPath("distbuilder-no-such-tool")
	require.Error(t, err)
}

func TestFakeRunnerRecordsCommands(t *testing.T) {
	f := &FakeRunner{Tools: map[string]string{"python3": "/usr/bin/python3"}}

	require.NoError(t, f.Run(context.Background(), Command{Path: "python3", Args: []string{"-m", "venv", "venv"}}))

	got := f.Invocations()
	require.Len(t, got, 1)
	require.Equal(t, []string{"-m", "venv", "venv"}, got[0].Args)

	path, err := f.LookPath("python3")
	require.NoError(t, err)
	require.Equal(t, "/usr/bin/python3", path)

	_, err = f.LookPath("pyinstaller")
	require.Error(t, err)
}
