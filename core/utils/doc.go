// Package utils provides common utility functions for the vault reconciler.
// It includes helpers for coercing driver-specific scalar types and small
// string manipulations shared across packages.
package utils
