// Package idgen generates run identifiers. Tests replace NewFunc to obtain
// stable report IDs.
package idgen
