package account

import "context"

type Repository interface {
	// FindOrCreate returns the account matching acc's unique key, inserting
	// acc when none exists. created is false when an existing row was returned,
	// including when a concurrent insert won the race.
	FindOrCreate(ctx context.Context, acc *Account) (result *Account, created bool, err error)
	GetByID(ctx context.Context, id uint) (*Account, error)
}
