package memory_test

import (
	"io/fs"
	"testing"

	"github.com/aretw0/exinc/pkg/adapters/memory"
	"github.com/aretw0/exinc/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFS(t *testing.T) {
	src := memory.NewSourceFS(map[string]string{
		"/inc/a.h": "int a;",
		"lib/b.h":  "int b;",
	})

	t.Run("Paths Are Cleaned", func(t *testing.T) {
		assert.True(t, src.IsFile("/inc/./a.h"))
		assert.True(t, src.IsFile("/lib/b.h"), "relative names are rooted at /")
		assert.False(t, src.IsFile("/inc/missing.h"))

		got, err := src.Canonical("/inc/sub/../a.h")
		require.NoError(t, err)
		assert.Equal(t, "/inc/a.h", got)
	})

	t.Run("Links", func(t *testing.T) {
		src.Link("/other/a.h", "/inc/a.h")

		got, err := src.Canonical("/other/a.h")
		require.NoError(t, err)
		assert.Equal(t, "/inc/a.h", got)

		data, err := src.ReadFile("/other/a.h")
		require.NoError(t, err)
		assert.Equal(t, "int a;", string(data))
	})

	t.Run("Link Loop", func(t *testing.T) {
		src.Link("/loop/1", "/loop/2")
		src.Link("/loop/2", "/loop/1")

		assert.False(t, src.IsFile("/loop/1"))
		_, err := src.Canonical("/loop/1")
		assert.Error(t, err)
	})

	t.Run("Denied", func(t *testing.T) {
		src.Write("/inc/secret.h", "int s;")
		src.Deny("/inc/secret.h")

		assert.True(t, src.IsFile("/inc/secret.h"))
		_, err := src.ReadFile("/inc/secret.h")
		assert.ErrorIs(t, err, fs.ErrPermission)
	})

	t.Run("Directories", func(t *testing.T) {
		assert.True(t, src.IsDir("/inc"))
		assert.True(t, src.IsDir("/"))
		assert.False(t, src.IsDir("/in"), "prefix of a directory name")
		assert.False(t, src.IsDir("/inc/a.h"))
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := src.ReadFile("/nope.h")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestSourceFS_Contract(t *testing.T) {
	files := map[string][]byte{
		"/src/main.cpp":      []byte("#include \"util.h\"\n"),
		"/src/util.h":        []byte("int u;\n"),
		"/src/nested/deep.h": []byte("int d;\n"),
	}
	src := memory.NewSourceFS(nil)
	for name, content := range files {
		src.Write(name, string(content))
	}

	tests.SourceFSContractTest(t, src, "/src", files)
}
