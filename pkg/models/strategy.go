package models

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HidingStrategy selects how the target file is disguised.
type HidingStrategy int

const (
	// StrategyPlain names the target after the marker word.
	StrategyPlain HidingStrategy = iota
	// StrategyReversedName names the target after the reversed marker word.
	StrategyReversedName
	// StrategyContentClue gives the target a decoy name and a clue as content.
	StrategyContentClue
	// StrategyRestrictedPermissions gives the target a decoy name and an odd mode.
	StrategyRestrictedPermissions
)

// NumStrategies is the number of hiding strategies.
const NumStrategies = 4

var strategyNames = map[HidingStrategy]string{
	StrategyPlain:                 "plain",
	StrategyReversedName:          "reversed-name",
	StrategyContentClue:           "content-clue",
	StrategyRestrictedPermissions: "restricted-permissions",
}

// ParseStrategy converts a numeric flag value into a strategy.
func ParseStrategy(n int) (HidingStrategy, error) {
	s := HidingStrategy(n)
	if !s.Valid() {
		return 0, fmt.Errorf("invalid hiding strategy %d: must be between 0 and %d", n, NumStrategies-1)
	}
	return s, nil
}

// Valid reports whether s is one of the known strategies.
func (s HidingStrategy) Valid() bool {
	return s >= 0 && s < NumStrategies
}

func (s HidingStrategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// Title returns a human readable name, e.g. "Reversed Name".
func (s HidingStrategy) Title() string {
	return cases.Title(language.English).String(strings.ReplaceAll(s.String(), "-", " "))
}
