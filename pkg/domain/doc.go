/*
Package domain contains the core models of the exinc include expander.

It defines what an expansion run produces and how problems are reported. The package
is kept free of I/O so that every adapter (CLI, HTTP, MCP, stores) shares one vocabulary.

# Key Entities

  - Diagnostic: a closed set of problems found while inlining (not found, unreadable, cycle).
  - Result: the outcome of a run, either flattened text or the diagnostics that prevented it.
  - Hooks: synchronous callbacks used for logging and metrics while a run progresses.
  - StepError: a failure of an external process step (compiler, caide).
*/
package domain
