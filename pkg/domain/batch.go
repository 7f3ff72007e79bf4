package domain

import "time"

// Batch is a set of combinations generated together.
// It is the unit handed to combination stores.
type Batch struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Domain     Domain    `json:"domain"`
	TargetSize int       `json:"target_size"`
	// RandSeed is the seed of the model that produced the batch.
	RandSeed     uint64        `json:"rand_seed,omitempty"`
	Combinations []Combination `json:"combinations"`
}
