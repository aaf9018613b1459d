package exinc_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/exinc"
	"github.com/aretw0/exinc/internal/config"
	"github.com/aretw0/exinc/pkg/adapters/memory"
)

// ExampleNew_memory expands a document against an in-memory library of headers.
func ExampleNew_memory() {
	lib := memory.NewSourceFS(map[string]string{
		"/lib/dsu.h":   "#include \"types.h\"\nstruct DSU {};\n",
		"/lib/types.h": "typedef long long ll;\n",
	})

	eng, err := exinc.New("#include <cstdio>\n#include \"dsu.h\"\nint main() {}\n",
		exinc.WithFS(lib),
		exinc.WithPaths("/lib"),
		exinc.WithConfig(config.Default()),
	)
	if err != nil {
		log.Fatal(err)
	}

	res := eng.Run(context.Background())
	if res.HasErrors() {
		log.Fatal(res.Report())
	}
	fmt.Print(res.Output)

	// Output:
	// #include <cstdio>
	// typedef long long ll;
	// struct DSU {};
	// int main() {}
}

// ExampleNew_diagnostics shows the report of a failed expansion.
func ExampleNew_diagnostics() {
	lib := memory.NewSourceFS(map[string]string{
		"/lib/a.h": "#include \"b.h\"\n",
		"/lib/b.h": "#include \"a.h\"\n",
	})

	eng, err := exinc.New("#include \"a.h\"\n#include \"gone.h\"\n",
		exinc.WithFS(lib),
		exinc.WithPaths("/lib"),
	)
	if err != nil {
		log.Fatal(err)
	}

	res := eng.Run(context.Background())
	fmt.Println(res.HasErrors())
	fmt.Println(res.Report())

	// Output:
	// true
	// Found back-edge to file a.h (on line 1 of file b.h)
	// File gone.h could not be found (on line 2 of file root_file)
}

// ExampleNew_file expands the sample project under examples/competitive.
func ExampleNew_file() {
	const input = "examples/competitive/src/main.cpp"
	text, err := os.ReadFile(input)
	if err != nil {
		log.Fatal(err)
	}

	eng, err := exinc.New(string(text),
		exinc.WithFilename(input),
		exinc.WithPaths("examples/competitive/src", "examples/competitive/lib"),
	)
	if err != nil {
		log.Fatal(err)
	}

	res := eng.Run(context.Background())
	if res.HasErrors() {
		log.Fatal(res.Report())
	}
	fmt.Print(res.Output)

	// Output:
	// #include <cstdio>
	// #pragma once
	// #pragma once
	// using ll = long long;
	// struct Fenwick {
	// int n;
	// ll t[1 << 20];
	// void add(int i, ll v) { for (; i <= n; i += i & -i) t[i] += v; }
	// ll sum(int i) { ll s = 0; for (; i > 0; i -= i & -i) s += t[i]; return s; }
	// };
	// Fenwick fw;
	// int main() {
	// fw.n = 8;
	// fw.add(3, 5);
	// std::printf("%lld\n", fw.sum(8));
	// }
}
