// Package tier owns dependency layering concerns.
//
// Ownership boundary:
// - layered topological ordering of a recipe set
// - cycle detection
//
// tier does not talk to remotes; it operates on already-fetched records.
package tier

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"chopstick/internal/ladle"
)

var ErrDependencyCycle = errors.New("tier: dependency cycle")

// Layer splits recipes into ordered tiers such that every recipe's in-set
// dependencies sit in strictly earlier tiers. Dependencies pointing outside
// the input set do not gate placement. The tiers partition the input.
//
// A cycle among in-set recipes would keep the remaining set from shrinking;
// each pass must place at least one recipe or Layer fails with
// ErrDependencyCycle naming the stuck recipes.
func Layer(recipes []ladle.Recipe) ([][]ladle.Recipe, error) {
	if len(recipes) == 0 {
		return nil, nil
	}

	inSet := make(map[string]bool, len(recipes))
	for _, recipe := range recipes {
		inSet[recipe.ID] = true
	}

	placed := make(map[string]bool, len(recipes))
	remaining := make([]ladle.Recipe, len(recipes))
	copy(remaining, recipes)

	var tiers [][]ladle.Recipe
	for len(remaining) > 0 {
		var next []ladle.Recipe
		var rest []ladle.Recipe
		for _, recipe := range remaining {
			if gated(recipe, inSet, placed) {
				rest = append(rest, recipe)
			} else {
				next = append(next, recipe)
			}
		}
		if len(next) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrDependencyCycle, stuckIDs(rest))
		}

		sort.Slice(next, func(i, j int) bool { return next[i].ID < next[j].ID })
		for _, recipe := range next {
			placed[recipe.ID] = true
		}
		tiers = append(tiers, next)
		remaining = rest
	}
	return tiers, nil
}

// gated reports whether any in-set dependency of recipe is still unplaced.
func gated(recipe ladle.Recipe, inSet, placed map[string]bool) bool {
	for _, dep := range recipe.Dependencies {
		if inSet[dep.Recipe.ID] && !placed[dep.Recipe.ID] {
			return true
		}
	}
	return false
}

func stuckIDs(remaining []ladle.Recipe) string {
	ids := make([]string, 0, len(remaining))
	for _, recipe := range remaining {
		ids = append(ids, recipe.ID)
	}
	sort.Strings(ids)
	return strings.Join(ids, ", ")
}
