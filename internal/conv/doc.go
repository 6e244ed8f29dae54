// Package conv provides checked integer conversions for the binary library
// format, where lengths and counts are stored as fixed-width unsigned
// integers.
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, bounded counters), use direct type casts instead.
package conv
