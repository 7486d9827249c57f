package models

// All lists the models managed by this service, in dependency order.
func All() []any {
	return []any{
		&WalletModel{},
		&AccountModel{},
		&PaymentModel{},
		&PaymentEventModel{},
		&CreditEntryModel{},
	}
}
