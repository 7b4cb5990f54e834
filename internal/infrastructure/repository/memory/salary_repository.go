package memory

import (
	"context"
	"sync"

	"github.com/dfsline/contest-tracker/internal/domain/salary"
)

type salaryKey struct {
	playerID     int64
	draftGroupID int
}

type SalaryRepository struct {
	mu       sync.RWMutex
	salaries map[salaryKey]salary.Salary
}

func NewSalaryRepository() *SalaryRepository {
	return &SalaryRepository{salaries: make(map[salaryKey]salary.Salary)}
}

func (r *SalaryRepository) GetOrCreate(_ context.Context, s salary.Salary) (salary.Salary, bool, error) {
	if err := s.Validate(); err != nil {
		return salary.Salary{}, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := salaryKey{playerID: s.PlayerID, draftGroupID: s.DraftGroupID}
	if existing, ok := r.salaries[key]; ok {
		return existing, false, nil
	}
	r.salaries[key] = s
	return s, true, nil
}
