package resolve

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"chopstick/internal/names"
)

var ErrNoMatch = errors.New("resolve: no match")

// Entity is the canonical reference a clue resolves to.
type Entity struct {
	ID   string
	Name string
}

// Directory is the per-kind capability surface resolution runs against.
type Directory interface {
	// Kind names the entity family for logs and errors.
	Kind() string
	// GetByID performs a point lookup treating the clue as an id.
	GetByID(ctx context.Context, id string) (Entity, error)
	// ListByPattern queries the kind's listing endpoint with the clue as a
	// name-pattern filter.
	ListByPattern(ctx context.Context, pattern string) ([]Entity, error)
	// Create registers a new entity named after the clue.
	Create(ctx context.Context, name string) (Entity, error)
}

// MatchKind states how a clue was matched.
type MatchKind int

const (
	// MatchExact is an id hit or a candidate whose name equals the clue.
	MatchExact MatchKind = iota
	// MatchFuzzy is a unique pattern hit whose name differs from the clue.
	MatchFuzzy
	// MatchCreated means no candidate was acceptable and create-if-missing
	// registered a new entity.
	MatchCreated
)

// Match is a successful resolution.
type Match struct {
	Entity Entity
	Kind   MatchKind
}

// AmbiguityError reports a clue matching several names, none exactly.
type AmbiguityError struct {
	Kind       string
	Clue       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("resolve: ambiguous %s %q: candidates [%s]",
		e.Kind, e.Clue, strings.Join(e.Candidates, ", "))
}

// Resolve maps a clue to a canonical entity through dir.
//
// Order: id point lookup, then pattern listing. A single listing hit is
// accepted; among several, a candidate whose folded name equals the clue
// wins. Anything else fails with the candidate list, unless createMissing
// is set, in which case a new entity named after the clue is created.
func Resolve(ctx context.Context, dir Directory, clue string, createMissing bool) (Match, error) {
	clue = strings.TrimSpace(clue)
	if clue == "" {
		return Match{}, fmt.Errorf("%w: empty %s clue", ErrNoMatch, dir.Kind())
	}

	if entity, err := dir.GetByID(ctx, clue); err == nil {
		return Match{Entity: entity, Kind: MatchExact}, nil
	}

	candidates, err := dir.ListByPattern(ctx, clue)
	if err != nil {
		return Match{}, fmt.Errorf("resolve: list %s %q: %w", dir.Kind(), clue, err)
	}

	switch len(candidates) {
	case 1:
		match := candidates[0]
		if match.Name != clue {
			log.Info().
				Str("kind", dir.Kind()).
				Str("clue", clue).
				Str("name", match.Name).
				Msg("resolve.Resolve fuzzy accept")
			return Match{Entity: match, Kind: MatchFuzzy}, nil
		}
		return Match{Entity: match, Kind: MatchExact}, nil
	default:
		exact := exactCandidates(clue, candidates)
		if len(exact) == 1 {
			return Match{Entity: exact[0], Kind: MatchExact}, nil
		}
	}

	if createMissing {
		created, err := dir.Create(ctx, clue)
		if err != nil {
			return Match{}, fmt.Errorf("resolve: create %s %q: %w", dir.Kind(), clue, err)
		}
		log.Info().
			Str("kind", dir.Kind()).
			Str("name", created.Name).
			Str("id", created.ID).
			Msg("resolve.Resolve created missing entity")
		return Match{Entity: created, Kind: MatchCreated}, nil
	}

	if len(candidates) == 0 {
		return Match{}, fmt.Errorf("%w: %s %q", ErrNoMatch, dir.Kind(), clue)
	}
	return Match{}, &AmbiguityError{
		Kind:       dir.Kind(),
		Clue:       clue,
		Candidates: candidateNames(candidates),
	}
}

func exactCandidates(clue string, candidates []Entity) []Entity {
	var exact []Entity
	for _, candidate := range candidates {
		if names.Equal(candidate.Name, clue) {
			exact = append(exact, candidate)
		}
	}
	return exact
}

func candidateNames(candidates []Entity) []string {
	out := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		out = append(out, candidate.Name)
	}
	sort.Strings(out)
	return out
}
