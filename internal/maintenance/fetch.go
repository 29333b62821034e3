package maintenance

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"chopstick/internal/ladle"
)

// fetchRecipeSet pulls the complete recipe index from src and hydrates
// every record with bounded concurrency. Records that fail to fetch are
// skipped with a warning; an index failure is gating.
func fetchRecipeSet(ctx context.Context, src Gateway, workers int, rep *Report) ([]ladle.Recipe, error) {
	index, err := src.RecipeIndex(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("maintenance: recipe index: %w", err)
	}

	fetched := make([]ladle.Recipe, len(index))
	hit := make([]bool, len(index))

	eg := new(errgroup.Group)
	eg.SetLimit(workers)
	for i, entry := range index {
		eg.Go(func() error {
			recipe, err := src.RecipeGet(ctx, entry.ID)
			if err != nil {
				rep.Warnf("recipe %q (%s) skipped: %v", entry.Name, entry.ID, err)
				return nil
			}
			fetched[i] = recipe
			hit[i] = true
			return nil
		})
	}
	_ = eg.Wait()

	recipes := make([]ladle.Recipe, 0, len(index))
	for i := range index {
		if hit[i] {
			recipes = append(recipes, fetched[i])
		}
	}
	return recipes, nil
}
