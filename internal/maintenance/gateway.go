package maintenance

import (
	"context"

	"chopstick/internal/ladle"
)

// Gateway is the remote surface maintenance operations consume. It is the
// subset of *ladle.Client these flows touch; tests substitute in-memory
// remotes.
type Gateway interface {
	RecipeIndex(ctx context.Context, pattern string) ([]ladle.RecipeIndex, error)
	RecipeGet(ctx context.Context, id string) (ladle.Recipe, error)
	RecipeCreate(ctx context.Context, draft ladle.RecipeDraft) (ladle.Recipe, error)

	RequirementCreate(ctx context.Context, recipeID, ingredientID, quantity string, optional bool) error
	RequirementDelete(ctx context.Context, recipeID, ingredientID string) error
	DependencyCreate(ctx context.Context, recipeID, requiredID, quantity string, optional bool) error
	RecipeTag(ctx context.Context, recipeID, labelName string) error

	IngredientIndex(ctx context.Context, pattern string) ([]ladle.IngredientIndex, error)
	IngredientGet(ctx context.Context, id string) (ladle.Ingredient, error)
	IngredientCreate(ctx context.Context, name string, class ladle.Classifications) (ladle.Ingredient, error)
	IngredientDelete(ctx context.Context, id string) error

	LabelIndex(ctx context.Context, pattern string) ([]ladle.LabelIndex, error)
	LabelGet(ctx context.Context, id string) (ladle.Label, error)
	LabelDelete(ctx context.Context, id string) error
}

var _ Gateway = (*ladle.Client)(nil)

// Options tune a maintenance run.
type Options struct {
	// Workers caps in-flight remote calls per fan-out batch.
	Workers int
}

const defaultWorkers = 8

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = defaultWorkers
	}
	return o
}
