package ladle

// RecipeIndex is one element of a recipe listing.
type RecipeIndex struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IngredientIndex is one element of an ingredient listing.
type IngredientIndex struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LabelIndex is one element of a label listing.
type LabelIndex struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Classifications are the dietary flags carried by ingredients and
// aggregated onto recipes by the server.
type Classifications struct {
	Dairy         bool `json:"dairy"`
	Meat          bool `json:"meat"`
	Gluten        bool `json:"gluten"`
	AnimalProduct bool `json:"animal_product"`
}

// Requirement is an (ingredient, quantity) edge from a recipe. A recipe
// holds at most one requirement per ingredient id.
type Requirement struct {
	Ingredient IngredientIndex `json:"ingredient"`
	Quantity   string          `json:"quantity"`
	Optional   bool            `json:"optional"`
}

// Dependency is a prerequisite edge from a recipe to another recipe,
// keyed by the target recipe id.
type Dependency struct {
	Recipe   RecipeIndex `json:"recipe"`
	Quantity string      `json:"quantity"`
	Optional bool        `json:"optional"`
}

// Recipe is a full recipe record.
type Recipe struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Author          string          `json:"author"`
	Directions      string          `json:"directions"`
	Information     string          `json:"information"`
	Classifications Classifications `json:"classifications"`
	Requirements    []Requirement   `json:"requirements"`
	Dependencies    []Dependency    `json:"dependencies"`
	Tags            []LabelIndex    `json:"tags"`
}

// Ingredient is a full ingredient record. UsedIn is the server-maintained
// back-reference list of recipes requiring this ingredient; it is
// authoritative on the remote that returned it and nowhere else.
type Ingredient struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Classifications Classifications `json:"classifications"`
	UsedIn          []RecipeIndex   `json:"used_in"`
}

// Label is a full label record. TaggedRecipes is server-maintained, same
// caveat as Ingredient.UsedIn.
type Label struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	TaggedRecipes []RecipeIndex `json:"tagged_recipes"`
}

// RecipeDraft carries the writable scalar fields of a recipe create call.
type RecipeDraft struct {
	Name        string
	Author      string
	Directions  string
	Information string
}

// Index returns the lightweight reference for r.
func (r Recipe) Index() RecipeIndex {
	return RecipeIndex{ID: r.ID, Name: r.Name}
}

// Index returns the lightweight reference for i.
func (i Ingredient) Index() IngredientIndex {
	return IngredientIndex{ID: i.ID, Name: i.Name}
}

// Index returns the lightweight reference for l.
func (l Label) Index() LabelIndex {
	return LabelIndex{ID: l.ID, Name: l.Name}
}
