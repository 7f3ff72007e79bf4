/*
Package generator assembles new combinations from a transition table.

A Generator grows one combination at a time through three states:

	SEEDED -> EXPANDING -> COMPLETE

While expanding, every unused number in the domain is scored against the
numbers chosen so far. The strictly highest positive score wins and ties go to
the numerically smallest candidate. When no candidate has a positive score the
generator falls back to a uniformly random unused number drawn from its
injected random source; this is the only source of non-determinism, so a given
table, seed and random source always produce the same combination.

Batch produces many combinations at once, seeding each from the pool of numbers
with the highest outgoing direct frequency. Every combination is generated from
its own random source derived up front, which keeps results reproducible even
when combinations are generated in parallel.
*/
package generator
