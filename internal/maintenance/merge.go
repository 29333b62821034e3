package maintenance

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"chopstick/internal/ladle"
)

var ErrMergeIncomplete = errors.New("maintenance: merge incomplete")

// MergeIngredients redirects every requirement naming the obsolete
// ingredient to the target ingredient, then deletes the obsolete one.
// Recipes are redirected concurrently, but within each recipe the
// replacement requirement is created and confirmed before the old one is
// deleted, so a failed creation leaves that recipe intact. The obsolete
// ingredient survives if any recipe could not be redirected.
func MergeIngredients(ctx context.Context, g Gateway, targetID, obsoleteID string, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	rep := NewReport()

	if targetID == obsoleteID {
		return rep, fmt.Errorf("maintenance: merge target and obsolete are the same ingredient: %s", targetID)
	}

	obsolete, err := g.IngredientGet(ctx, obsoleteID)
	if err != nil {
		return rep, fmt.Errorf("maintenance: obsolete ingredient: %w", err)
	}

	var failures atomic.Int64
	eg := new(errgroup.Group)
	eg.SetLimit(opts.Workers)
	for _, use := range obsolete.UsedIn {
		eg.Go(func() error {
			if !redirectRecipe(ctx, g, use, targetID, obsoleteID, rep) {
				failures.Add(1)
			}
			return nil
		})
	}
	_ = eg.Wait()

	if n := failures.Load(); n > 0 {
		return rep, fmt.Errorf("%w: %d recipes still reference %q", ErrMergeIncomplete, n, obsolete.Name)
	}
	if err := g.IngredientDelete(ctx, obsoleteID); err != nil {
		return rep, fmt.Errorf("maintenance: delete obsolete ingredient %q: %w", obsolete.Name, err)
	}
	return rep, nil
}

// redirectRecipe swaps the obsolete requirement of one recipe for an
// equivalent requirement on the target ingredient, preserving the
// quantity. Reports success.
func redirectRecipe(ctx context.Context, g Gateway, use ladle.RecipeIndex, targetID, obsoleteID string, rep *Report) bool {
	recipe, err := g.RecipeGet(ctx, use.ID)
	if err != nil {
		rep.Warnf("recipe %q (%s) not redirected: %v", use.Name, use.ID, err)
		return false
	}

	var current *ladle.Requirement
	for i := range recipe.Requirements {
		if recipe.Requirements[i].Ingredient.ID == obsoleteID {
			current = &recipe.Requirements[i]
			break
		}
	}
	if current == nil {
		// Stale back-reference; nothing on this recipe points at the
		// obsolete ingredient anymore.
		rep.Warnf("recipe %q (%s): no requirement on obsolete ingredient", use.Name, use.ID)
		return true
	}

	if err := g.RequirementCreate(ctx, use.ID, targetID, current.Quantity, false); err != nil {
		rep.Warnf("recipe %q (%s): replacement requirement not created, original kept: %v", use.Name, use.ID, err)
		return false
	}
	if err := g.RequirementDelete(ctx, use.ID, obsoleteID); err != nil {
		rep.Warnf("recipe %q (%s): obsolete requirement not deleted: %v", use.Name, use.ID, err)
		return false
	}
	return true
}
