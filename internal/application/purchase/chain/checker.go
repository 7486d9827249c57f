// Package chain defines the on-chain registry lookup used before any sale.
package chain

import "context"

// RegistrationChecker answers whether a name is already registered on chain.
// Its answer overrides any local ledger state.
type RegistrationChecker interface {
	IsRegistered(ctx context.Context, name string) (bool, error)
}
