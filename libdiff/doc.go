// Package libdiff compares documents: structurally as a list of changes,
// textually as a line diff, and as JSON merge patches.
package libdiff
