// Package conv provides checked numeric conversions.
//
// Two concerns live here:
//   - Position conversions between Go's int and the uint32 positions stored in
//     posting bitmaps. Positions beyond the uint32 range are rejected.
//   - Numeric validity for measure values. NaN and ±Inf are not numbers for
//     aggregation purposes and read as zero.
package conv
