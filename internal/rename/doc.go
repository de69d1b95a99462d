// Package rename computes collision-free destination paths and performs the
// final rename of a screenshot within its own directory.
package rename
