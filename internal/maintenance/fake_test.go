package maintenance

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"chopstick/internal/ladle"
)

// fakeRemote is an in-memory ladle server. It maintains the same
// back-references the real one does (used_in, tagged_recipes) and
// deduplicates ingredients and labels by name, so maintenance flows can
// be asserted end to end without HTTP.
type fakeRemote struct {
	mu          sync.Mutex
	nextID      int
	idPrefix    string
	recipes     map[string]*ladle.Recipe
	ingredients map[string]*ladle.Ingredient
	labels      map[string]*ladle.Label

	failRecipeGet         map[string]error
	failIngredientGet     map[string]error
	failLabelGet          map[string]error
	failRecipeCreate      map[string]error // keyed by recipe name
	failRequirementCreate map[string]error // keyed by recipe id
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		recipes:               map[string]*ladle.Recipe{},
		ingredients:           map[string]*ladle.Ingredient{},
		labels:                map[string]*ladle.Label{},
		failRecipeGet:         map[string]error{},
		failIngredientGet:     map[string]error{},
		failLabelGet:          map[string]error{},
		failRecipeCreate:      map[string]error{},
		failRequirementCreate: map[string]error{},
	}
}

func (f *fakeRemote) genID(kind string) string {
	f.nextID++
	return fmt.Sprintf("%s%s-%d", f.idPrefix, kind, f.nextID)
}

func copyRecipe(r *ladle.Recipe) ladle.Recipe {
	out := *r
	out.Requirements = append([]ladle.Requirement(nil), r.Requirements...)
	out.Dependencies = append([]ladle.Dependency(nil), r.Dependencies...)
	out.Tags = append([]ladle.LabelIndex(nil), r.Tags...)
	return out
}

func copyIngredient(i *ladle.Ingredient) ladle.Ingredient {
	out := *i
	out.UsedIn = append([]ladle.RecipeIndex(nil), i.UsedIn...)
	return out
}

func copyLabel(l *ladle.Label) ladle.Label {
	out := *l
	out.TaggedRecipes = append([]ladle.RecipeIndex(nil), l.TaggedRecipes...)
	return out
}

func (f *fakeRemote) RecipeIndex(ctx context.Context, pattern string) ([]ladle.RecipeIndex, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var index []ladle.RecipeIndex
	for _, r := range f.recipes {
		if pattern == "" || strings.Contains(r.Name, pattern) {
			index = append(index, r.Index())
		}
	}
	sort.Slice(index, func(i, j int) bool { return index[i].ID < index[j].ID })
	return index, nil
}

func (f *fakeRemote) RecipeGet(ctx context.Context, id string) (ladle.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failRecipeGet[id]; err != nil {
		return ladle.Recipe{}, err
	}
	r, ok := f.recipes[id]
	if !ok {
		return ladle.Recipe{}, fmt.Errorf("unknown recipe %q", id)
	}
	return copyRecipe(r), nil
}

func (f *fakeRemote) RecipeCreate(ctx context.Context, draft ladle.RecipeDraft) (ladle.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failRecipeCreate[draft.Name]; err != nil {
		return ladle.Recipe{}, err
	}
	r := &ladle.Recipe{
		ID:          f.genID("r"),
		Name:        draft.Name,
		Author:      draft.Author,
		Directions:  draft.Directions,
		Information: draft.Information,
	}
	f.recipes[r.ID] = r
	return copyRecipe(r), nil
}

func (f *fakeRemote) RequirementCreate(ctx context.Context, recipeID, ingredientID, quantity string, optional bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failRequirementCreate[recipeID]; err != nil {
		return err
	}
	r, ok := f.recipes[recipeID]
	if !ok {
		return fmt.Errorf("unknown recipe %q", recipeID)
	}
	ingredient, ok := f.ingredients[ingredientID]
	if !ok {
		return fmt.Errorf("unknown ingredient %q", ingredientID)
	}
	for _, req := range r.Requirements {
		if req.Ingredient.ID == ingredientID {
			return fmt.Errorf("recipe %q already requires %q", recipeID, ingredientID)
		}
	}
	r.Requirements = append(r.Requirements, ladle.Requirement{
		Ingredient: ingredient.Index(),
		Quantity:   quantity,
		Optional:   optional,
	})
	ingredient.UsedIn = append(ingredient.UsedIn, r.Index())
	return nil
}

func (f *fakeRemote) RequirementDelete(ctx context.Context, recipeID, ingredientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[recipeID]
	if !ok {
		return fmt.Errorf("unknown recipe %q", recipeID)
	}
	kept := r.Requirements[:0]
	found := false
	for _, req := range r.Requirements {
		if req.Ingredient.ID == ingredientID {
			found = true
			continue
		}
		kept = append(kept, req)
	}
	if !found {
		return fmt.Errorf("recipe %q has no requirement on %q", recipeID, ingredientID)
	}
	r.Requirements = kept

	if ingredient, ok := f.ingredients[ingredientID]; ok {
		uses := ingredient.UsedIn[:0]
		for _, use := range ingredient.UsedIn {
			if use.ID != recipeID {
				uses = append(uses, use)
			}
		}
		ingredient.UsedIn = uses
	}
	return nil
}

func (f *fakeRemote) DependencyCreate(ctx context.Context, recipeID, requiredID, quantity string, optional bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[recipeID]
	if !ok {
		return fmt.Errorf("unknown recipe %q", recipeID)
	}
	required, ok := f.recipes[requiredID]
	if !ok {
		return fmt.Errorf("unknown dependency target %q", requiredID)
	}
	r.Dependencies = append(r.Dependencies, ladle.Dependency{
		Recipe:   required.Index(),
		Quantity: quantity,
		Optional: optional,
	})
	return nil
}

func (f *fakeRemote) RecipeTag(ctx context.Context, recipeID, labelName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[recipeID]
	if !ok {
		return fmt.Errorf("unknown recipe %q", recipeID)
	}
	label := f.labelByNameLocked(labelName)
	if label == nil {
		label = &ladle.Label{ID: f.genID("l"), Name: labelName}
		f.labels[label.ID] = label
	}
	r.Tags = append(r.Tags, label.Index())
	label.TaggedRecipes = append(label.TaggedRecipes, r.Index())
	return nil
}

func (f *fakeRemote) IngredientIndex(ctx context.Context, pattern string) ([]ladle.IngredientIndex, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var index []ladle.IngredientIndex
	for _, i := range f.ingredients {
		if pattern == "" || strings.Contains(i.Name, pattern) {
			index = append(index, i.Index())
		}
	}
	sort.Slice(index, func(i, j int) bool { return index[i].ID < index[j].ID })
	return index, nil
}

func (f *fakeRemote) IngredientGet(ctx context.Context, id string) (ladle.Ingredient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failIngredientGet[id]; err != nil {
		return ladle.Ingredient{}, err
	}
	i, ok := f.ingredients[id]
	if !ok {
		return ladle.Ingredient{}, fmt.Errorf("unknown ingredient %q", id)
	}
	return copyIngredient(i), nil
}

// IngredientCreate deduplicates by name, like the real server.
func (f *fakeRemote) IngredientCreate(ctx context.Context, name string, class ladle.Classifications) (ladle.Ingredient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, i := range f.ingredients {
		if i.Name == name {
			return copyIngredient(i), nil
		}
	}
	i := &ladle.Ingredient{ID: f.genID("i"), Name: name, Classifications: class}
	f.ingredients[i.ID] = i
	return copyIngredient(i), nil
}

func (f *fakeRemote) IngredientDelete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.ingredients[id]
	if !ok {
		return fmt.Errorf("unknown ingredient %q", id)
	}
	if len(i.UsedIn) > 0 {
		return fmt.Errorf("ingredient %q still referenced", id)
	}
	delete(f.ingredients, id)
	return nil
}

func (f *fakeRemote) LabelIndex(ctx context.Context, pattern string) ([]ladle.LabelIndex, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var index []ladle.LabelIndex
	for _, l := range f.labels {
		if pattern == "" || strings.Contains(l.Name, pattern) {
			index = append(index, l.Index())
		}
	}
	sort.Slice(index, func(i, j int) bool { return index[i].ID < index[j].ID })
	return index, nil
}

func (f *fakeRemote) LabelGet(ctx context.Context, id string) (ladle.Label, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failLabelGet[id]; err != nil {
		return ladle.Label{}, err
	}
	l, ok := f.labels[id]
	if !ok {
		return ladle.Label{}, fmt.Errorf("unknown label %q", id)
	}
	return copyLabel(l), nil
}

func (f *fakeRemote) LabelDelete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.labels[id]
	if !ok {
		return fmt.Errorf("unknown label %q", id)
	}
	if len(l.TaggedRecipes) > 0 {
		return fmt.Errorf("label %q still referenced", id)
	}
	delete(f.labels, id)
	return nil
}

func (f *fakeRemote) labelByNameLocked(name string) *ladle.Label {
	for _, l := range f.labels {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Lookup helpers for assertions.

func (f *fakeRemote) recipeByName(name string) *ladle.Recipe {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.recipes {
		if r.Name == name {
			return r
		}
	}
	return nil
}

func (f *fakeRemote) ingredientByName(name string) *ladle.Ingredient {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, i := range f.ingredients {
		if i.Name == name {
			return i
		}
	}
	return nil
}

func (f *fakeRemote) labelByName(name string) *ladle.Label {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.labelByNameLocked(name)
}

func (f *fakeRemote) recipeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.recipes)
}

// Seed helpers; they go through the Gateway surface so back-references
// stay consistent.

func (f *fakeRemote) seedIngredient(name string, class ladle.Classifications) string {
	i, err := f.IngredientCreate(context.Background(), name, class)
	if err != nil {
		panic(err)
	}
	return i.ID
}

func (f *fakeRemote) seedRecipe(draft ladle.RecipeDraft) string {
	r, err := f.RecipeCreate(context.Background(), draft)
	if err != nil {
		panic(err)
	}
	return r.ID
}

func (f *fakeRemote) seedRequirement(recipeID, ingredientID, quantity string) {
	if err := f.RequirementCreate(context.Background(), recipeID, ingredientID, quantity, false); err != nil {
		panic(err)
	}
}

func (f *fakeRemote) seedDependency(recipeID, requiredID string) {
	if err := f.DependencyCreate(context.Background(), recipeID, requiredID, "", false); err != nil {
		panic(err)
	}
}

func (f *fakeRemote) seedTag(recipeID, labelName string) {
	if err := f.RecipeTag(context.Background(), recipeID, labelName); err != nil {
		panic(err)
	}
}

func (f *fakeRemote) seedLabel(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing := f.labelByNameLocked(name); existing != nil {
		return existing.ID
	}
	l := &ladle.Label{ID: f.genID("l"), Name: name}
	f.labels[l.ID] = l
	return l.ID
}
