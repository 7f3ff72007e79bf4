/*
Package ports defines the driven ports (interfaces) of the markov model.

These interfaces decouple the core from external collaborators: where historical
draws come from and where generated combinations go. The core packages never
import an adapter.

# Key Interfaces

  - HistorySource: supplies raw historical records (e.g., from a YAML file or memory).
  - CombinationStore: persists and loads generated batches (e.g., in Redis or memory).
*/
package ports
