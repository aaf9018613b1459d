/*
Package exinc expands C/C++ style `#include "file"` directives into a single self-contained source file.

It is meant for places that accept exactly one file (competitive programming judges, online
compilers, code review pastes) while the code is developed against a personal library of headers.

# Concept

The root document is scanned line by line. Every line matching

	#include "name"

is replaced by the recursive expansion of the first file found under the search paths.
System includes (`#include <vector>`) and every other line are copied unchanged.
Each file is inlined at most once per expansion, and a file that includes one of its
own ancestors is reported as a cyclic reference instead of recursing forever.

Problems never stop the scan: all of them are collected and, if any was found, the
expansion fails as a whole with one report listing every problem.

# Usage

	eng, err := exinc.New(text,
		exinc.WithFilename("main.cpp"),
		exinc.WithPaths("/home/me/lib"),
	)
	if err != nil {
		log.Fatal(err)
	}

	res := eng.Run(ctx)
	if res.HasErrors() {
		fmt.Fprint(os.Stderr, res.Report())
		os.Exit(1)
	}
	fmt.Print(res.Output)

Compile runs the expansion between two compiler invocations, checking that the original and
the expanded file both build. The caide preprocessor (WithPreprocessor("caide")) delegates
the expansion to the external caide optimizer instead.

# Packages

  - pkg/inliner: the recursive expansion itself.
  - pkg/domain: diagnostics, results and hooks shared by every adapter.
  - pkg/adapters: filesystems, result stores, the HTTP and MCP servers, caide and processes.
  - cmd/exinc: the command-line tool.
*/
package exinc
