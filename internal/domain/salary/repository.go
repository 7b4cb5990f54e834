package salary

import "context"

// Repository describes salary persistence needs from use cases.
type Repository interface {
	// GetOrCreate returns the stored salary for (player, draft group),
	// creating it when absent. Existing amounts are never overwritten.
	GetOrCreate(ctx context.Context, s Salary) (Salary, bool, error)
}
