package utils

import "strings"

// LastDotSegment returns the final dot-separated segment of a qualified
// name, so "staging.crm.customers" becomes "customers". Names without a
// dot are returned unchanged.
func LastDotSegment(name string) string {
	parts := strings.Split(name, ".")
	return parts[len(parts)-1]
}
