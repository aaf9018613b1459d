/*
Package observability provides tools for monitoring exinc expansions.

It includes Prometheus collectors fed by domain.Hooks and a hook set that writes the
traversal to a structured logger.
*/
package observability
