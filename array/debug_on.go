//go:build arraydebug

package array

const debugChecks = true
