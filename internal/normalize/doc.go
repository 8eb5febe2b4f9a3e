// Package normalize maps heterogeneous backend response shapes onto a
// uniform record list and resolves backend field-name dialects onto a
// canonical field set.
//
// Groupware servers answer the same query with an array, a single object,
// or an unparsed textual payload depending on version and configuration.
// Records flattens all of those into an ordered []Record so that callers
// always have something to iterate. Field aliasing is an explicit ordered
// lookup table per record type; the first present source field wins.
package normalize
