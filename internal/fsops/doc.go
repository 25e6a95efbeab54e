// Package fsops performs the sandboxed file writes behind the reading list.
// Every path is validated by package safety before the filesystem is touched.
package fsops
