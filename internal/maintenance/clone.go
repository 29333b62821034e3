package maintenance

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"chopstick/internal/ladle"
	"chopstick/internal/tier"
)

// Clone replays the full recipe graph of src onto dst: referenced
// ingredients first, then recipes tier by tier so every dependency target
// exists before anything points at it. Per-item failures are recorded on
// the Report; only the index fetch and the tiering step are gating.
func Clone(ctx context.Context, src, dst Gateway, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	rep := NewReport()

	recipes, err := fetchRecipeSet(ctx, src, opts.Workers, rep)
	if err != nil {
		return rep, err
	}
	log.Info().Int("recipes", len(recipes)).Msg("maintenance.Clone fetched source graph")

	ingredients := replayIngredients(ctx, src, dst, recipes, opts.Workers, rep)

	tiers, err := tier.Layer(recipes)
	if err != nil {
		return rep, fmt.Errorf("maintenance: tier recipes: %w", err)
	}

	recipeTable := Table{}
	for depth, members := range tiers {
		created := make([]string, len(members))

		eg := new(errgroup.Group)
		eg.SetLimit(opts.Workers)
		for i, recipe := range members {
			eg.Go(func() error {
				tables := Tables{Ingredients: ingredients, Recipes: recipeTable}
				id, err := replayRecipe(ctx, dst, recipe, tables, opts.Workers, rep)
				if err != nil {
					rep.Warnf("recipe %q not cloned: %v", recipe.Name, err)
					return nil
				}
				created[i] = id
				return nil
			})
		}
		_ = eg.Wait()

		// Mappings merge only once the tier has fully joined; the next
		// tier's dependency attachment gates on them.
		for i, recipe := range members {
			if created[i] != "" {
				recipeTable[recipe.ID] = created[i]
			}
		}
		log.Debug().Int("tier", depth).Int("recipes", len(members)).Msg("maintenance.Clone tier complete")
	}
	return rep, nil
}

// replayIngredients creates every referenced ingredient on dst, carrying
// classification flags over from the source records, and returns the
// resulting translation table. Remotes deduplicate ingredients by name;
// the table records whatever id dst answered with.
func replayIngredients(ctx context.Context, src, dst Gateway, recipes []ladle.Recipe, workers int, rep *Report) Table {
	refs := ingredientRefs(recipes)
	destIDs := make([]string, len(refs))

	eg := new(errgroup.Group)
	eg.SetLimit(workers)
	for i, r := range refs {
		eg.Go(func() error {
			var class ladle.Classifications
			if full, err := src.IngredientGet(ctx, r.ID); err != nil {
				rep.Warnf("ingredient %q (%s): classifications unavailable: %v", r.Name, r.ID, err)
			} else {
				class = full.Classifications
			}

			created, err := dst.IngredientCreate(ctx, r.Name, class)
			if err != nil {
				rep.Warnf("ingredient %q not created on destination: %v", r.Name, err)
				return nil
			}
			destIDs[i] = created.ID
			return nil
		})
	}
	_ = eg.Wait()

	table := make(Table, len(refs))
	for i, r := range refs {
		if destIDs[i] != "" {
			table[r.ID] = destIDs[i]
		}
	}
	return table
}

// replayRecipe creates one recipe on dst and attaches its tags,
// requirements and dependencies, rewriting references through tables.
// References without a table entry are dropped with a warning; only the
// recipe creation itself is fatal, since every attachment hangs off the
// new id.
func replayRecipe(ctx context.Context, dst Gateway, recipe ladle.Recipe, tables Tables, workers int, rep *Report) (string, error) {
	created, err := dst.RecipeCreate(ctx, ladle.RecipeDraft{
		Name:        recipe.Name,
		Author:      recipe.Author,
		Directions:  recipe.Directions,
		Information: recipe.Information,
	})
	if err != nil {
		return "", err
	}

	eg := new(errgroup.Group)
	eg.SetLimit(workers)

	for _, tag := range recipe.Tags {
		eg.Go(func() error {
			if err := dst.RecipeTag(ctx, created.ID, tag.Name); err != nil {
				rep.Warnf("recipe %q: tag %q not attached: %v", recipe.Name, tag.Name, err)
			}
			return nil
		})
	}

	for _, req := range recipe.Requirements {
		mapped, found := tables.Ingredients[req.Ingredient.ID]
		if !found {
			rep.Warnf("recipe %q: requirement on %q dropped: no ingredient mapping", recipe.Name, req.Ingredient.Name)
			continue
		}
		eg.Go(func() error {
			if err := dst.RequirementCreate(ctx, created.ID, mapped, req.Quantity, req.Optional); err != nil {
				rep.Warnf("recipe %q: requirement on %q not attached: %v", recipe.Name, req.Ingredient.Name, err)
			}
			return nil
		})
	}

	for _, dep := range recipe.Dependencies {
		mapped, found := tables.Recipes[dep.Recipe.ID]
		if !found {
			rep.Warnf("recipe %q: dependency on %q dropped: no recipe mapping", recipe.Name, dep.Recipe.Name)
			continue
		}
		eg.Go(func() error {
			if err := dst.DependencyCreate(ctx, created.ID, mapped, dep.Quantity, dep.Optional); err != nil {
				rep.Warnf("recipe %q: dependency on %q not attached: %v", recipe.Name, dep.Recipe.Name, err)
			}
			return nil
		})
	}

	_ = eg.Wait()
	return created.ID, nil
}
