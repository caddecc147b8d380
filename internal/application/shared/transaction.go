// Package shared holds contracts common to all application use cases.
package shared

import "context"

// TransactionManager is the transactional boundary use cases run their
// read-check-write sequences in. db.TransactionManager is the production
// implementation.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
