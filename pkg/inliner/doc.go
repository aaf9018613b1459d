/*
Package inliner expands quoted include directives into a single self-contained document.

A directive is a line of the form

	#include "file.h"

optionally indented. Each directive is replaced by the expanded content of the first
search directory holding the file; every other line is copied as is, terminated by a
single newline.

# Runs

All mutable state of an expansion lives in a Run: the search paths (which grow with the
directory of every newly-included file), the set of files already inlined, and the set
of files currently being expanded. A file reached a second time through another chain
(a diamond) is silently skipped; a file reached again while it is still being expanded
(a cycle) is reported. Problems never stop the traversal, so a single run reports every
missing, unreadable, or cyclic include it can find.

	in := inliner.New()
	run := in.NewRun([]string{"/src/lib", "/usr/local/include/cp"})
	run.Expand(ctx, text, "main.cpp")
	if run.HasErrors() {
		fmt.Fprintln(os.Stderr, run.Diagnostics().Error())
	}

A Run is not safe for concurrent use. The Inliner that creates runs is immutable and may
be shared.
*/
package inliner
