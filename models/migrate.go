package models

// All returns every model in migration order: parents before children so
// foreign keys resolve.
func All() []any {
	return []any{
		&User{},
		&UserProfile{},
		&ContractTemplate{},
		&Contract{},
		&ContractParty{},
		&ContractSignature{},
		&ContractApproval{},
		&ContractComment{},
		&Notification{},
		&SubscriptionPlan{},
		&UserSubscription{},
	}
}
