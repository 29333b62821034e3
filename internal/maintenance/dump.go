package maintenance

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"chopstick/internal/ladle"
	"chopstick/internal/tier"
)

// Document is a portable, identifier-stripped snapshot of one remote.
// Every id is a deterministic placeholder; back-reference collections are
// empty so an importing remote rebuilds them itself.
type Document struct {
	Ingredients []ladle.Ingredient `json:"ingredients"`
	Labels      []ladle.Label      `json:"labels"`
	Recipes     []ladle.Recipe     `json:"recipes"`
}

// Dump fetches the full graph from src and rewrites it in anonymize mode.
// Determinism is the contract: an unchanged source reproduces identical
// placeholder ids and ordering regardless of server-assigned ids or
// response ordering.
func Dump(ctx context.Context, src Gateway, opts Options) (Document, *Report, error) {
	opts = opts.withDefaults()
	rep := NewReport()

	recipes, err := fetchRecipeSet(ctx, src, opts.Workers, rep)
	if err != nil {
		return Document{}, rep, err
	}

	// Same gating as clone: a cyclic graph cannot be replayed downstream,
	// so refuse to snapshot it.
	if _, err := tier.Layer(recipes); err != nil {
		return Document{}, rep, fmt.Errorf("maintenance: tier recipes: %w", err)
	}

	ingRefs := ingredientRefs(recipes)
	labRefs := labelRefs(recipes)
	tables := Tables{
		Ingredients: anonymizeTable("ingredient", ingRefs),
		Labels:      anonymizeTable("label", labRefs),
		Recipes:     anonymizeTable("recipe", recipeRefs(recipes)),
	}

	doc := Document{
		Ingredients: dumpIngredients(ctx, src, ingRefs, tables.Ingredients, opts.Workers, rep),
		Labels:      dumpLabels(labRefs, tables.Labels),
		Recipes:     dumpRecipes(recipes, tables, rep),
	}
	return doc, rep, nil
}

// dumpIngredients emits referenced ingredients in placeholder order,
// hydrating classification flags from the source.
func dumpIngredients(ctx context.Context, src Gateway, refs []ref, table Table, workers int, rep *Report) []ladle.Ingredient {
	ordered := sortedRefs(refs)
	out := make([]ladle.Ingredient, len(ordered))

	eg := new(errgroup.Group)
	eg.SetLimit(workers)
	for i, r := range ordered {
		eg.Go(func() error {
			var class ladle.Classifications
			if full, err := src.IngredientGet(ctx, r.ID); err != nil {
				rep.Warnf("ingredient %q (%s): classifications unavailable: %v", r.Name, r.ID, err)
			} else {
				class = full.Classifications
			}
			out[i] = ladle.Ingredient{
				ID:              table[r.ID],
				Name:            r.Name,
				Classifications: class,
				UsedIn:          []ladle.RecipeIndex{},
			}
			return nil
		})
	}
	_ = eg.Wait()
	return out
}

func dumpLabels(refs []ref, table Table) []ladle.Label {
	ordered := sortedRefs(refs)
	out := make([]ladle.Label, 0, len(ordered))
	for _, r := range ordered {
		out = append(out, ladle.Label{
			ID:            table[r.ID],
			Name:          r.Name,
			TaggedRecipes: []ladle.RecipeIndex{},
		})
	}
	return out
}

func dumpRecipes(recipes []ladle.Recipe, tables Tables, rep *Report) []ladle.Recipe {
	byID := make(map[string]ladle.Recipe, len(recipes))
	for _, recipe := range recipes {
		byID[recipe.ID] = recipe
	}

	ordered := sortedRefs(recipeRefs(recipes))
	out := make([]ladle.Recipe, 0, len(ordered))
	for _, r := range ordered {
		out = append(out, anonymizeRecipe(byID[r.ID], tables, rep))
	}
	return out
}

// anonymizeRecipe rewrites every reference of recipe through tables.
// References without an entry are dropped with a warning, same rule as
// clone; in practice only dependencies on unfetched recipes hit it.
func anonymizeRecipe(recipe ladle.Recipe, tables Tables, rep *Report) ladle.Recipe {
	out := recipe
	out.ID = tables.Recipes[recipe.ID]

	out.Requirements = make([]ladle.Requirement, 0, len(recipe.Requirements))
	for _, req := range recipe.Requirements {
		mapped, found := tables.Ingredients[req.Ingredient.ID]
		if !found {
			rep.Warnf("recipe %q: requirement on %q dropped: no ingredient mapping", recipe.Name, req.Ingredient.Name)
			continue
		}
		out.Requirements = append(out.Requirements, ladle.Requirement{
			Ingredient: ladle.IngredientIndex{ID: mapped, Name: req.Ingredient.Name},
			Quantity:   req.Quantity,
			Optional:   req.Optional,
		})
	}
	sort.Slice(out.Requirements, func(i, j int) bool {
		return out.Requirements[i].Ingredient.ID < out.Requirements[j].Ingredient.ID
	})

	out.Dependencies = make([]ladle.Dependency, 0, len(recipe.Dependencies))
	for _, dep := range recipe.Dependencies {
		mapped, found := tables.Recipes[dep.Recipe.ID]
		if !found {
			rep.Warnf("recipe %q: dependency on %q dropped: no recipe mapping", recipe.Name, dep.Recipe.Name)
			continue
		}
		out.Dependencies = append(out.Dependencies, ladle.Dependency{
			Recipe:   ladle.RecipeIndex{ID: mapped, Name: dep.Recipe.Name},
			Quantity: dep.Quantity,
			Optional: dep.Optional,
		})
	}
	sort.Slice(out.Dependencies, func(i, j int) bool {
		return out.Dependencies[i].Recipe.ID < out.Dependencies[j].Recipe.ID
	})

	out.Tags = make([]ladle.LabelIndex, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		mapped, found := tables.Labels[tag.ID]
		if !found {
			rep.Warnf("recipe %q: tag %q dropped: no label mapping", recipe.Name, tag.Name)
			continue
		}
		out.Tags = append(out.Tags, ladle.LabelIndex{ID: mapped, Name: tag.Name})
	}
	sort.Slice(out.Tags, func(i, j int) bool { return out.Tags[i].ID < out.Tags[j].ID })

	return out
}
