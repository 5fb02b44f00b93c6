// Package byteswap reverses the byte order of fixed-width integers and of
// slices of them.
//
// The slice routines accept distinct or aliasing dst/src and process
// min(len(dst), len(src)) elements, so in-place swapping is a call with
// the same slice twice. Wider element types (floating point, runes) are
// handled by callers reinterpreting their storage as one of the three
// unsigned widths; swapping through integer views preserves bit patterns
// that a round trip through float values would not (NaN payloads).
package byteswap
