package themekit

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTheme writes an executable script that echoes its invocation, so
// runner behavior can be tested without the real binary.
func fakeTheme(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake binary script requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "theme")
	content := "#!/bin/sh\n" + script + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
	return path
}

func TestConfigureCapturesOutput(t *testing.T) {
	program := fakeTheme(t, `echo "configured $@"`)
	cli := NewProgram(program)

	result, err := cli.Configure(context.Background(), testFlags())
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Stdout, "configured configure")
	assert.Contains(t, result.Stdout, "--store example.myshopify.com")
}

func TestDeployFailureExitCode(t *testing.T) {
	program := fakeTheme(t, `echo "could not connect" >&2; exit 2`)
	cli := NewProgram(program)

	result, err := cli.Deploy(context.Background(), testFlags(), DeployOptions{})
	require.Error(t, err)
	assert.Equal(t, 2, result.ExitCode)
	assert.Contains(t, result.Stderr, "could not connect")
}

func TestCustomWriters(t *testing.T) {
	program := fakeTheme(t, `echo progress`)
	var buf bytes.Buffer
	cli := NewProgram(program, WithStdoutWriter(&buf))

	_, err := cli.Configure(context.Background(), testFlags())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "progress")
}

func TestVersion(t *testing.T) {
	program := fakeTheme(t, `echo "ThemeKit v1.3.0 linux/amd64"`)
	cli := NewProgram(program)

	v, err := cli.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", v.String())
}

func TestVersionUnrecognizedOutput(t *testing.T) {
	program := fakeTheme(t, `echo "no version here"`)
	cli := NewProgram(program)

	_, err := cli.Version(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized")
}

func TestMeetsMinimum(t *testing.T) {
	assert.True(t, MeetsMinimum(semver.MustParse("1.0.4")))
	assert.True(t, MeetsMinimum(semver.MustParse("1.3.0")))
	assert.False(t, MeetsMinimum(semver.MustParse("0.8.1")))
}
