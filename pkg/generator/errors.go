package generator

import (
	"fmt"

	"github.com/aretw0/markov/pkg/domain"
)

// ExhaustionError reports a combination that cannot be completed from the domain.
type ExhaustionError struct {
	Target int // requested combination size
	Max    int // domain upper bound
	Have   int // numbers chosen when the pool ran out
}

func (e *ExhaustionError) Error() string {
	return fmt.Sprintf("%v: cannot pick %d distinct numbers from [1, %d] (have %d)",
		domain.ErrDomainExhaustion, e.Target, e.Max, e.Have)
}

// Unwrap allows errors.Is(err, domain.ErrDomainExhaustion).
func (e *ExhaustionError) Unwrap() error {
	return domain.ErrDomainExhaustion
}
