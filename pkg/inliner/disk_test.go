package inliner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/exinc/internal/testutils"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestExpand_OnDisk(t *testing.T) {
	ctx := context.Background()
	dir := testutils.TempTree(t, map[string]string{
		"lib/graph/dsu.h": `#pragma once
#include "../util/types.h"
struct DSU {};
`,
		"lib/util/types.h": `#pragma once
using ll = long long;
`,
		"lib/math/mod.h": `#pragma once
#include "types.h"
const ll MOD = 1e9 + 7;
`,
		"proj/main.cpp": `#include <bits/stdc++.h>
#include "graph/dsu.h"
#include "math/mod.h"
int main() {}
`,
	})

	text, err := os.ReadFile(filepath.Join(dir, "proj", "main.cpp"))
	require.NoError(t, err)

	run := New().NewRun([]string{filepath.Join(dir, "proj"), filepath.Join(dir, "lib")})
	run.Expand(ctx, string(text), "main.cpp")
	require.False(t, run.HasErrors(), run.Diagnostics().Error())

	// math/mod.h finds types.h through lib/util, added when dsu.h pulled it in
	want := `#include <bits/stdc++.h>
#pragma once
#pragma once
using ll = long long;
struct DSU {};
#pragma once
const ll MOD = 1e9 + 7;
int main() {}
`
	if diff := cmp.Diff(want, run.Output()); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, run.Files(), 3)
}
