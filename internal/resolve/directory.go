package resolve

import (
	"context"

	"chopstick/internal/ladle"
)

// RecipeDirectory adapts a ladle client to the recipe kind.
type RecipeDirectory struct {
	Client *ladle.Client
}

func (d RecipeDirectory) Kind() string { return "recipe" }

func (d RecipeDirectory) GetByID(ctx context.Context, id string) (Entity, error) {
	recipe, err := d.Client.RecipeGet(ctx, id)
	if err != nil {
		return Entity{}, err
	}
	return Entity{ID: recipe.ID, Name: recipe.Name}, nil
}

func (d RecipeDirectory) ListByPattern(ctx context.Context, pattern string) ([]Entity, error) {
	index, err := d.Client.RecipeIndex(ctx, pattern)
	if err != nil {
		return nil, err
	}
	entities := make([]Entity, 0, len(index))
	for _, ref := range index {
		entities = append(entities, Entity{ID: ref.ID, Name: ref.Name})
	}
	return entities, nil
}

func (d RecipeDirectory) Create(ctx context.Context, name string) (Entity, error) {
	recipe, err := d.Client.RecipeCreate(ctx, ladle.RecipeDraft{Name: name})
	if err != nil {
		return Entity{}, err
	}
	return Entity{ID: recipe.ID, Name: recipe.Name}, nil
}

// IngredientDirectory adapts a ladle client to the ingredient kind.
type IngredientDirectory struct {
	Client *ladle.Client
}

func (d IngredientDirectory) Kind() string { return "ingredient" }

func (d IngredientDirectory) GetByID(ctx context.Context, id string) (Entity, error) {
	ingredient, err := d.Client.IngredientGet(ctx, id)
	if err != nil {
		return Entity{}, err
	}
	return Entity{ID: ingredient.ID, Name: ingredient.Name}, nil
}

func (d IngredientDirectory) ListByPattern(ctx context.Context, pattern string) ([]Entity, error) {
	index, err := d.Client.IngredientIndex(ctx, pattern)
	if err != nil {
		return nil, err
	}
	entities := make([]Entity, 0, len(index))
	for _, ref := range index {
		entities = append(entities, Entity{ID: ref.ID, Name: ref.Name})
	}
	return entities, nil
}

func (d IngredientDirectory) Create(ctx context.Context, name string) (Entity, error) {
	ingredient, err := d.Client.IngredientCreate(ctx, name, ladle.Classifications{})
	if err != nil {
		return Entity{}, err
	}
	return Entity{ID: ingredient.ID, Name: ingredient.Name}, nil
}

// LabelDirectory adapts a ladle client to the label kind.
type LabelDirectory struct {
	Client *ladle.Client
}

func (d LabelDirectory) Kind() string { return "label" }

func (d LabelDirectory) GetByID(ctx context.Context, id string) (Entity, error) {
	label, err := d.Client.LabelGet(ctx, id)
	if err != nil {
		return Entity{}, err
	}
	return Entity{ID: label.ID, Name: label.Name}, nil
}

func (d LabelDirectory) ListByPattern(ctx context.Context, pattern string) ([]Entity, error) {
	index, err := d.Client.LabelIndex(ctx, pattern)
	if err != nil {
		return nil, err
	}
	entities := make([]Entity, 0, len(index))
	for _, ref := range index {
		entities = append(entities, Entity{ID: ref.ID, Name: ref.Name})
	}
	return entities, nil
}

func (d LabelDirectory) Create(ctx context.Context, name string) (Entity, error) {
	label, err := d.Client.LabelCreate(ctx, name)
	if err != nil {
		return Entity{}, err
	}
	return Entity{ID: label.ID, Name: label.Name}, nil
}
