package maintenance

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Clean deletes every ingredient and label of src that no recipe
// references. The two passes are independent; an entity whose record
// cannot be fetched is left alone for this run.
func Clean(ctx context.Context, src Gateway, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	rep := NewReport()

	if err := cleanIngredients(ctx, src, opts.Workers, rep); err != nil {
		return rep, err
	}
	if err := cleanLabels(ctx, src, opts.Workers, rep); err != nil {
		return rep, err
	}
	return rep, nil
}

func cleanIngredients(ctx context.Context, src Gateway, workers int, rep *Report) error {
	index, err := src.IngredientIndex(ctx, "")
	if err != nil {
		return fmt.Errorf("maintenance: ingredient index: %w", err)
	}

	orphaned := make([]bool, len(index))
	eg := new(errgroup.Group)
	eg.SetLimit(workers)
	for i, entry := range index {
		eg.Go(func() error {
			full, err := src.IngredientGet(ctx, entry.ID)
			if err != nil {
				rep.Warnf("ingredient %q (%s) not inspected: %v", entry.Name, entry.ID, err)
				return nil
			}
			orphaned[i] = len(full.UsedIn) == 0
			return nil
		})
	}
	_ = eg.Wait()

	eg = new(errgroup.Group)
	eg.SetLimit(workers)
	seen := make(map[string]bool, len(index))
	removed := 0
	for i, entry := range index {
		if !orphaned[i] || seen[entry.ID] {
			continue
		}
		seen[entry.ID] = true
		removed++
		eg.Go(func() error {
			if err := src.IngredientDelete(ctx, entry.ID); err != nil {
				rep.Warnf("orphaned ingredient %q (%s) not deleted: %v", entry.Name, entry.ID, err)
			}
			return nil
		})
	}
	_ = eg.Wait()

	log.Info().Int("orphans", removed).Msg("maintenance.Clean ingredients pass complete")
	return nil
}

func cleanLabels(ctx context.Context, src Gateway, workers int, rep *Report) error {
	index, err := src.LabelIndex(ctx, "")
	if err != nil {
		return fmt.Errorf("maintenance: label index: %w", err)
	}

	orphaned := make([]bool, len(index))
	eg := new(errgroup.Group)
	eg.SetLimit(workers)
	for i, entry := range index {
		eg.Go(func() error {
			full, err := src.LabelGet(ctx, entry.ID)
			if err != nil {
				rep.Warnf("label %q (%s) not inspected: %v", entry.Name, entry.ID, err)
				return nil
			}
			orphaned[i] = len(full.TaggedRecipes) == 0
			return nil
		})
	}
	_ = eg.Wait()

	eg = new(errgroup.Group)
	eg.SetLimit(workers)
	seen := make(map[string]bool, len(index))
	removed := 0
	for i, entry := range index {
		if !orphaned[i] || seen[entry.ID] {
			continue
		}
		seen[entry.ID] = true
		removed++
		eg.Go(func() error {
			if err := src.LabelDelete(ctx, entry.ID); err != nil {
				rep.Warnf("orphaned label %q (%s) not deleted: %v", entry.Name, entry.ID, err)
			}
			return nil
		})
	}
	_ = eg.Wait()

	log.Info().Int("orphans", removed).Msg("maintenance.Clean labels pass complete")
	return nil
}
