package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/exinc"
	"github.com/aretw0/exinc/pkg/adapters/file"
	"github.com/aretw0/exinc/pkg/adapters/memory"
	"github.com/aretw0/exinc/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	lib := memory.NewSourceFS(map[string]string{
		"/lib/a.h":        "int a;\n",
		"/lib/c.h":        "#include \"c.h\"\n",
		"/etc/secret.txt": "top secret\n",
	})
	return NewServer(Config{
		Options: []exinc.Option{exinc.WithFS(lib)},
		Roots:   []string{"/lib"},
	})
}

func buildRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: args,
		},
	}
}

func TestDecodeArgs(t *testing.T) {
	args, err := DecodeArgs(map[string]interface{}{
		"text":   "int x;",
		"parent": "main.cpp",
		"paths":  []interface{}{"/a", "/b"},
	})
	require.NoError(t, err)
	assert.Equal(t, ExpandArgs{Text: "int x;", Parent: "main.cpp", Paths: []string{"/a", "/b"}}, args)

	_, err = DecodeArgs(map[string]interface{}{"text": "x", "flags": "-O2"})
	assert.ErrorContains(t, err, "invalid arguments")

	_, err = DecodeArgs(map[string]interface{}{"text": 42.0})
	assert.Error(t, err)
}

func TestExpandTool(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		args := map[string]interface{}{
			"text":  "#include \"a.h\"\nint main() {}\n",
			"paths": []interface{}{"/lib"},
		}
		report, err := s.handleExpand(ctx, buildRequest("expand_includes", args), args)
		require.NoError(t, err)
		assert.False(t, report.HasErrors)
		assert.Equal(t, "int a;\nint main() {}\n", report.Output)
		assert.NotEmpty(t, report.ID)
	})

	t.Run("Diagnostics", func(t *testing.T) {
		args := map[string]interface{}{
			"text":   "#include \"c.h\"\n",
			"parent": "solution.cpp",
			"paths":  []interface{}{"/lib"},
		}
		report, err := s.handleExpand(ctx, buildRequest("expand_includes", args), args)
		require.NoError(t, err)
		assert.True(t, report.HasErrors)
		require.Len(t, report.Diagnostics, 1)
		assert.Equal(t, domain.KindCycle, report.Diagnostics[0].Kind)
		assert.Equal(t, "Found back-edge to file c.h (on line 1 of file c.h)", report.Report)
	})

	t.Run("Path Outside Roots", func(t *testing.T) {
		args := map[string]interface{}{
			"text":  "#include \"/etc/secret.txt\"\n",
			"paths": []interface{}{"/"},
		}
		_, err := s.handleExpand(ctx, buildRequest("expand_includes", args), args)
		assert.ErrorIs(t, err, domain.ErrPathOutsideRoots)
	})

	t.Run("Escaping Includes", func(t *testing.T) {
		args := map[string]interface{}{
			"text":  "#include \"/etc/secret.txt\"\n#include \"../etc/secret.txt\"\n",
			"paths": []interface{}{"/lib"},
		}
		report, err := s.handleExpand(ctx, buildRequest("expand_includes", args), args)
		require.NoError(t, err)
		require.Len(t, report.Diagnostics, 2)
		for _, d := range report.Diagnostics {
			assert.Equal(t, domain.KindNotFound, d.Kind)
		}
		assert.NotContains(t, report.Output, "top secret")
	})

	t.Run("Bad Arguments", func(t *testing.T) {
		args := map[string]interface{}{"text": "x", "unknown": true}
		_, err := s.handleExpand(ctx, buildRequest("expand_includes", args), args)
		assert.Error(t, err)
	})
}

func TestGetExpansionTool(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	args := map[string]interface{}{"text": "int x;\n"}
	report, err := s.handleExpand(ctx, buildRequest("expand_includes", args), args)
	require.NoError(t, err)

	result, err := s.handleGetExpansion(ctx, buildRequest("get_expansion", map[string]any{"id": report.ID}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.NotEmpty(t, result.Content)

	var got domain.Report
	require.NoError(t, json.Unmarshal([]byte(mcp.GetTextFromContent(result.Content[0])), &got))
	assert.Equal(t, report, got)

	result, err = s.handleGetExpansion(ctx, buildRequest("get_expansion", map[string]any{"id": "missing"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = s.handleGetExpansion(ctx, buildRequest("get_expansion", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestGetExpansionTool_FileStoreIDs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "x.json"), []byte(`{"id":"x","result":{"output":"top secret"}}`), 0644))
	s := NewServer(Config{Store: file.New(filepath.Join(root, "a", "b"))})
	ctx := context.Background()

	result, err := s.handleGetExpansion(ctx, buildRequest("get_expansion", map[string]any{"id": "../../x"}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	text := mcp.GetTextFromContent(result.Content[0])
	assert.Contains(t, text, "invalid result ID")
	assert.NotContains(t, text, "top secret")
}

func TestExpansionsResource(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	args := map[string]interface{}{"text": "int x;\n"}
	report, err := s.handleExpand(ctx, buildRequest("expand_includes", args), args)
	require.NoError(t, err)

	contents, err := s.readExpansions(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.JSONEq(t, `["`+report.ID+`"]`, text.Text)
}
