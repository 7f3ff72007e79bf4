package domain

import (
	"fmt"
	"strings"
)

// Domain describes the integer range [1, Max] numbers are drawn from and the
// number of values in every draw.
type Domain struct {
	Name     string `json:"name" yaml:"name"`
	Max      int    `json:"max" yaml:"max"`
	DrawSize int    `json:"draw_size" yaml:"draw_size"`
}

var (
	// Euromillions is the main-number domain of the Euromillions game.
	Euromillions = Domain{Name: "euromillions", Max: 50, DrawSize: 5}

	// FrenchLoto is the main-number domain of the French Loto game.
	FrenchLoto = Domain{Name: "french_loto", Max: 49, DrawSize: 5}
)

// DefaultDomain is used when no domain is configured.
var DefaultDomain = Euromillions

// Preset returns the built-in domain with the given name.
func Preset(name string) (Domain, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Euromillions.Name:
		return Euromillions, true
	case FrenchLoto.Name, "frenchloto", "loto":
		return FrenchLoto, true
	}
	return Domain{}, false
}

// Validate reports whether the domain can hold at least one draw.
func (d Domain) Validate() error {
	if d.Max < 1 {
		return fmt.Errorf("%w: max must be positive, got %d", ErrInvalidDomain, d.Max)
	}
	if d.DrawSize < 1 {
		return fmt.Errorf("%w: draw size must be positive, got %d", ErrInvalidDomain, d.DrawSize)
	}
	if d.DrawSize > d.Max {
		return fmt.Errorf("%w: draw size %d exceeds max %d", ErrInvalidDomain, d.DrawSize, d.Max)
	}
	return nil
}

// Contains reports whether n lies in [1, Max].
func (d Domain) Contains(n int) bool {
	return n >= 1 && n <= d.Max
}

func (d Domain) String() string {
	if d.Name != "" {
		return fmt.Sprintf("%s(1-%d, %d)", d.Name, d.Max, d.DrawSize)
	}
	return fmt.Sprintf("1-%d, %d", d.Max, d.DrawSize)
}
