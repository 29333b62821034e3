package tier

import (
	"errors"
	"testing"

	"chopstick/internal/ladle"
)

func recipe(id string, deps ...string) ladle.Recipe {
	r := ladle.Recipe{ID: id, Name: id}
	for _, dep := range deps {
		r.Dependencies = append(r.Dependencies, ladle.Dependency{Recipe: ladle.RecipeIndex{ID: dep, Name: dep}})
	}
	return r
}

func tierIDs(tiers [][]ladle.Recipe) [][]string {
	out := make([][]string, 0, len(tiers))
	for _, members := range tiers {
		ids := make([]string, 0, len(members))
		for _, r := range members {
			ids = append(ids, r.ID)
		}
		out = append(out, ids)
	}
	return out
}

func TestLayerChain(t *testing.T) {
	// C depends on B, B depends on A.
	tiers, err := Layer([]ladle.Recipe{recipe("C", "B"), recipe("A"), recipe("B", "A")})
	if err != nil {
		t.Fatalf("layer: %v", err)
	}
	got := tierIDs(tiers)
	want := [][]string{{"A"}, {"B"}, {"C"}}
	if len(got) != len(want) {
		t.Fatalf("tiers = %v, want %v", got, want)
	}
	for i := range want {
		if len(got[i]) != len(want[i]) || got[i][0] != want[i][0] {
			t.Fatalf("tiers = %v, want %v", got, want)
		}
	}
}

func TestLayerPartitionsInput(t *testing.T) {
	recipes := []ladle.Recipe{
		recipe("stock"),
		recipe("sauce", "stock"),
		recipe("garnish"),
		recipe("plate", "sauce", "garnish"),
	}
	tiers, err := Layer(recipes)
	if err != nil {
		t.Fatalf("layer: %v", err)
	}

	seen := map[string]int{}
	position := map[string]int{}
	for depth, members := range tiers {
		for _, r := range members {
			seen[r.ID]++
			position[r.ID] = depth
		}
	}
	if len(seen) != len(recipes) {
		t.Fatalf("tiers cover %d recipes, want %d", len(seen), len(recipes))
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("recipe %s placed %d times", id, count)
		}
	}
	for _, r := range recipes {
		for _, dep := range r.Dependencies {
			if position[dep.Recipe.ID] >= position[r.ID] {
				t.Errorf("recipe %s at tier %d does not follow dependency %s at tier %d",
					r.ID, position[r.ID], dep.Recipe.ID, position[dep.Recipe.ID])
			}
		}
	}
}

func TestLayerIgnoresOutOfSetDependencies(t *testing.T) {
	tiers, err := Layer([]ladle.Recipe{recipe("A", "elsewhere")})
	if err != nil {
		t.Fatalf("layer: %v", err)
	}
	if len(tiers) != 1 || len(tiers[0]) != 1 {
		t.Fatalf("tiers = %v", tierIDs(tiers))
	}
}

func TestLayerDetectsCycle(t *testing.T) {
	_, err := Layer([]ladle.Recipe{recipe("A", "B"), recipe("B", "A"), recipe("C")})
	if !errors.Is(err, ErrDependencyCycle) {
		t.Fatalf("expected ErrDependencyCycle, got %v", err)
	}
}

func TestLayerSelfDependencyIsACycle(t *testing.T) {
	_, err := Layer([]ladle.Recipe{recipe("A", "A")})
	if !errors.Is(err, ErrDependencyCycle) {
		t.Fatalf("expected ErrDependencyCycle, got %v", err)
	}
}

func TestLayerEmptyInput(t *testing.T) {
	tiers, err := Layer(nil)
	if err != nil {
		t.Fatalf("layer: %v", err)
	}
	if len(tiers) != 0 {
		t.Fatalf("tiers = %v", tierIDs(tiers))
	}
}
