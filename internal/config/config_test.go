package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/exinc/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFileMatchesDefault(t *testing.T) {
	cfg, err := Parse([]byte(defaultFile))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestBootstrap(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".exinc.yaml")

	t.Run("Creates Missing File", func(t *testing.T) {
		var notice bytes.Buffer
		cfg, err := Bootstrap(path, &notice)
		require.NoError(t, err)

		assert.Contains(t, notice.String(), "A new one will be created at "+path)
		assert.Equal(t, []string{"-std=c++11"}, cfg.DefaultFlags)
		assert.FileExists(t, path)
	})

	t.Run("Loads Existing File Quietly", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte(`
release: 1
default_paths: ["/opt/cp/lib"]
default_flags: ["-std=c++17", "-O2"]
compiler: ["clang++"]
`), 0644))

		var notice bytes.Buffer
		cfg, err := Bootstrap(path, &notice)
		require.NoError(t, err)

		assert.Empty(t, notice.String())
		assert.Equal(t, []string{"/opt/cp/lib"}, cfg.DefaultPaths)
		assert.Equal(t, []string{"-std=c++17", "-O2"}, cfg.DefaultFlags)
		assert.Equal(t, []string{"clang++"}, cfg.Compiler)
	})

	t.Run("Fails When Directory Is Missing", func(t *testing.T) {
		_, err := Bootstrap(filepath.Join(t.TempDir(), "nope", "cfg.yaml"), &bytes.Buffer{})
		assert.ErrorContains(t, err, "could not be created")
	})
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "Outdated", content: "release: 0\ncompiler: [g++]\n", want: "out of date"},
		{name: "Missing Release", content: "compiler: [g++]\n", want: "out of date"},
		{name: "Unknown Key", content: "release: 1\ncompiler: [g++]\ndefault_path: [x]\n", want: "default_path"},
		{name: "Empty Compiler", content: "release: 1\ncompiler: []\n", want: "compiler must not be empty"},
		{name: "Bad YAML", content: "release: [1\n", want: "failed to parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := Parse([]byte("release: 2\ncompiler: [g++]\n"))
	assert.ErrorIs(t, err, domain.ErrConfigOutdated)
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvPath, "/tmp/custom.yaml")
	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", p)
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.DefaultPaths = []string{"/lib"}
	cfg.Caide.CmdPath = "/usr/bin/cmd"

	data, err := cfg.Marshal()
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}
