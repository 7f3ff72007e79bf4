/*
Package markov builds a multi-level transition-frequency model from a history of
numeric draws and uses it to grow new combinations one number at a time.

# Concept

Every historical draw is sorted ascending and read left to right. Three kinds of
transition are counted:

  - Direct: a number followed by the next one (d[i] -> d[i+1]).
  - Position: a number followed by the one two places later (d[i] -> d[i+2]).
  - Combination: an adjacent pair followed by the next number ((d[i], d[i+1]) -> d[i+2]).

A candidate's score against a partial combination is the weighted sum of the
counts that lead to it from every number (and adjacent pair) already chosen.
Generation starts from a seed, repeatedly appends the highest scoring unused
number (ties go to the smallest), and falls back to a uniformly random unused
number when nothing scores.

The model describes historical co-occurrence only. It does not predict draws.

# Usage

	model, err := markov.New(records,
		markov.WithDomain(domain.Euromillions),
		markov.WithSeed(42),
	)
	if err != nil {
		log.Fatal(err)
	}

	combos, err := model.GenerateMany(ctx, 5, 5)
	if err != nil {
		log.Fatal(err)
	}
	for _, c := range combos {
		fmt.Println(c)
	}

Raw records come from a ports.HistorySource such as the YAML/JSON loader in
pkg/adapters/file. Invalid records fail the build unless WithSkipInvalid is set.

# Concurrency

A built Model is read-only apart from its random source, which it guards. Batch
generation runs WithWorkers goroutines, each with a random source derived up
front, so results do not depend on the number of workers.
*/
package markov
