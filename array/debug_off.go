//go:build !arraydebug

package array

// debugChecks turns the unchecked accessors into checked ones that panic.
// Enabled with the arraydebug build tag.
const debugChecks = false
