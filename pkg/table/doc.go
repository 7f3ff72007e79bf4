/*
Package table builds and queries the multi-level transition-frequency table.

For every normalized draw n[0..k-1] (ascending) the builder records three kinds
of relationships:

  - Direct:      n[i] -> n[i+1]            (adjacent in sorted order)
  - Position:    n[i] -> n[i+2]            (two sort-positions apart)
  - Combination: (n[i], n[i+1]) -> n[i+2]  (a consecutive pair and what follows it)

Counts are commutative over the draw sequence, so the order draws are supplied in
never changes the result. A missing key or successor reads as zero: Counts.Get is
the documented accessor and never panics on absent entries.

A Table is read-only once built and may be shared by any number of goroutines.
*/
package table
