package maintenance

import (
	"fmt"
	"sort"

	"chopstick/internal/ladle"
	"chopstick/internal/names"
)

// Table maps source entity ids to destination or placeholder ids. Tables
// are per-run values built incrementally and passed explicitly; they are
// never shared across runs.
type Table map[string]string

// Tables groups the per-kind translation maps one run carries.
type Tables struct {
	Ingredients Table
	Recipes     Table
	Labels      Table
}

// ref is the (id, name) pair placeholder assignment orders by.
type ref struct {
	ID   string
	Name string
}

// anonymizeTable assigns "__{kind}_{n}" placeholders by folded display
// name, numbered independently per kind. Ties fall back to the raw name,
// then the source id, so the ordering stays total.
func anonymizeTable(kind string, refs []ref) Table {
	sorted := sortedRefs(refs)
	table := make(Table, len(sorted))
	for n, r := range sorted {
		table[r.ID] = fmt.Sprintf("__%s_%d", kind, n)
	}
	return table
}

// sortedRefs orders refs the way placeholder numbering does.
func sortedRefs(refs []ref) []ref {
	sorted := make([]ref, len(refs))
	copy(sorted, refs)
	sort.Slice(sorted, func(i, j int) bool {
		fi, fj := names.Fold(sorted[i].Name), names.Fold(sorted[j].Name)
		if fi != fj {
			return fi < fj
		}
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// ingredientRefs collects the unique ingredients referenced by any
// requirement across recipes, ordered by id.
func ingredientRefs(recipes []ladle.Recipe) []ref {
	seen := make(map[string]ref)
	for _, recipe := range recipes {
		for _, req := range recipe.Requirements {
			seen[req.Ingredient.ID] = ref{ID: req.Ingredient.ID, Name: req.Ingredient.Name}
		}
	}
	return refsByID(seen)
}

// labelRefs collects the unique labels referenced by any tag across
// recipes, ordered by id.
func labelRefs(recipes []ladle.Recipe) []ref {
	seen := make(map[string]ref)
	for _, recipe := range recipes {
		for _, tag := range recipe.Tags {
			seen[tag.ID] = ref{ID: tag.ID, Name: tag.Name}
		}
	}
	return refsByID(seen)
}

func recipeRefs(recipes []ladle.Recipe) []ref {
	refs := make([]ref, 0, len(recipes))
	for _, recipe := range recipes {
		refs = append(refs, ref{ID: recipe.ID, Name: recipe.Name})
	}
	return refs
}

func refsByID(seen map[string]ref) []ref {
	refs := make([]ref, 0, len(seen))
	for _, r := range seen {
		refs = append(refs, r)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs
}
