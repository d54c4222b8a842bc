// Package pure memoizes pure functions by their input values.
//
// A series engine maps coefficients through user functions, often the same
// input many times (the tail of an eventually constant series, repeated
// terms of a recurrence). Tableize turns such a function into a bounded
// lookup table.
//
// Tableize asks the caller a question before it adds a cache:
//
//	→ "Is this function really pure?"
//
// WARNING: Do not use Tableize on impure functions (e.g., those depending on time, I/O, etc).
package pure
