package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dfsline/contest-tracker/internal/domain/player"
)

type playerKey struct {
	name  string
	sport string
	team  string
}

type PlayerRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]player.Player
	byKey  map[playerKey]int64
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{
		nextID: 1,
		byID:   make(map[int64]player.Player),
		byKey:  make(map[playerKey]int64),
	}
	for _, p := range players {
		if p.ID == 0 {
			p.ID = r.nextID
		}
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
		r.byID[p.ID] = p
		r.byKey[playerKey{name: p.Name, sport: p.Sport, team: p.TeamAbbv}] = p.ID
	}
	return r
}

func (r *PlayerRepository) ListBySport(_ context.Context, sport string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.byID))
	for _, p := range r.byID {
		if p.Sport == sport {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayerRepository) GetOrCreate(_ context.Context, p player.Player) (player.Player, bool, error) {
	if err := p.Validate(); err != nil {
		return player.Player{}, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := playerKey{name: p.Name, sport: p.Sport, team: p.TeamAbbv}
	if id, ok := r.byKey[key]; ok {
		return r.byID[id], false, nil
	}

	p.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.byID[p.ID] = p
	r.byKey[key] = p.ID
	return p, true, nil
}

func (r *PlayerRepository) UpdateDKPosition(_ context.Context, playerID int64, dkPosition string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[playerID]
	if !ok {
		return nil
	}
	p.DKPosition = dkPosition
	p.UpdatedAt = time.Now().UTC()
	r.byID[playerID] = p
	return nil
}
