/*
Package domain contains the core value types of the markov model.

It defines the numeric domain draws are taken from, the normalized Draw, the
generation state (Partial) and the terminal Combination. This package is kept
pure and free of I/O, following the same hexagonal layout as the rest of the
module: adapters and hosts depend on domain, never the other way around.

# Key Entities

  - Domain: the valid integer range [1, Max] and the fixed draw arity.
  - Draw: one historical record, sorted, distinct, fixed-arity, immutable.
  - Partial: an in-flight combination, grown one number per generation step.
  - Combination: a completed, ascending, immutable candidate set.
  - Batch: a set of combinations produced together, as handed to stores.
*/
package domain
