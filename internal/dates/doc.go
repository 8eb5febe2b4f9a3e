// Package dates resolves natural-language and literal date expressions
// into concrete points in time.
//
// The resolver recognizes the relative tokens "today", "tomorrow" and
// "next week" anywhere in the input, falling back to a set of common
// literal layouts. Unparseable input degrades to the current time rather
// than failing, so callers never have to handle a resolution error.
package dates
