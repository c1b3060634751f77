package api

import (
	"fmt"
	"strings"
)

// Strategy selects how FindMinimalQuineSeed searches.
type Strategy int

const (
	// StrategyAuto uses StrategyDigits when the program allows it and
	// StrategyBruteForce otherwise.
	StrategyAuto Strategy = iota

	// StrategyBruteForce tries every seed in ascending order.
	StrategyBruteForce

	// StrategyDigits builds the seed three bits at a time. It only applies
	// to programs accepted by DigitSearchable.
	StrategyDigits
)

func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyBruteForce:
		return "bruteforce"
	case StrategyDigits:
		return "digits"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy resolves a strategy name as printed by String.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return StrategyAuto, nil
	case "bruteforce", "brute-force", "brute":
		return StrategyBruteForce, nil
	case "digits":
		return StrategyDigits, nil
	default:
		return StrategyAuto, fmt.Errorf("unknown strategy %q", name)
	}
}
