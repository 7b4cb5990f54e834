package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dfsline/contest-tracker/internal/domain/player"
)

// Resolution strategies, tried in order. The first strategy that yields
// exactly one player wins; more than one match is an immediate ambiguity
// error rather than a fallthrough.
const (
	strategyExact      = "exact"
	strategyFold       = "case-insensitive"
	strategyAccentFold = "accent-insensitive"
	strategySubstring  = "substring"
)

// ResolutionError reports a last-name lookup that could not be narrowed to a
// single player. Strategy names the step that failed.
type ResolutionError struct {
	Name       string
	Sport      string
	Strategy   string
	Candidates []string
}

func (e *ResolutionError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("resolve player %q (%s): no match", e.Name, e.Sport)
	}
	return fmt.Sprintf("resolve player %q (%s): %s matched %d players: %s",
		e.Name, e.Sport, e.Strategy, len(e.Candidates), strings.Join(e.Candidates, ", "))
}

// PlayerResolver maps last names from standings exports onto stored players
// for one sport. The roster is loaded once at construction so a parse pass
// over a large export never touches the database.
type PlayerResolver struct {
	sport   string
	players []player.Player
	byName  map[string]int64
}

func NewPlayerResolver(ctx context.Context, repo player.Repository, sport string) (*PlayerResolver, error) {
	players, err := repo.ListBySport(ctx, sport)
	if err != nil {
		return nil, fmt.Errorf("load %s roster: %w", sport, err)
	}

	byName := make(map[string]int64, len(players))
	for _, p := range players {
		byName[p.Name] = p.ID
	}

	return &PlayerResolver{
		sport:   sport,
		players: players,
		byName:  byName,
	}, nil
}

// Resolve returns the player ID for a name as it appears in an export. An
// exact hit short-circuits; otherwise the fold, accent-fold and substring
// strategies run in order until one yields a single player.
func (r *PlayerResolver) Resolve(name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, &ResolutionError{Name: name, Sport: r.sport, Strategy: strategyExact}
	}

	if id, ok := r.byName[name]; ok {
		return id, nil
	}

	type strategy struct {
		name  string
		match func(stored, wanted string) bool
	}
	strategies := []strategy{
		{strategyFold, func(stored, wanted string) bool {
			return strings.EqualFold(stored, wanted)
		}},
		{strategyAccentFold, func(stored, wanted string) bool {
			return strings.EqualFold(stripAccents(stored), stripAccents(wanted))
		}},
		{strategySubstring, func(stored, wanted string) bool {
			return strings.Contains(strings.ToLower(stored), strings.ToLower(wanted))
		}},
	}

	for _, s := range strategies {
		var ids []int64
		var matched []string
		for _, p := range r.players {
			if s.match(p.Name, name) {
				ids = append(ids, p.ID)
				matched = append(matched, p.Name)
			}
		}
		switch len(ids) {
		case 0:
			continue
		case 1:
			return ids[0], nil
		default:
			return 0, &ResolutionError{Name: name, Sport: r.sport, Strategy: s.name, Candidates: matched}
		}
	}

	return 0, &ResolutionError{Name: name, Sport: r.sport, Strategy: strategySubstring}
}

var accentStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

func stripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}
