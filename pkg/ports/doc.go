/*
Package ports defines the driven ports (interfaces) of exinc.

These interfaces decouple the inliner and its hosts from concrete implementations,
so the same expansion logic runs against the disk, memory, or any other source.

# Key Interfaces

  - SourceFS: How include files are located, canonicalized, and read.
  - Preprocessor: Turns a root document into a Result (inliner or caide backend).
  - ResultStore: Persists expansion records for the HTTP service.
*/
package ports
