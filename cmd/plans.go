package cmd

import (
	"gorm.io/gorm"

	"github.com/doganiot/mywordismyword/models"
)

var subscriptionPlans = []models.SubscriptionPlan{
	{PlanType: "free", Name: "Free", MonthlyPrice: 0, ContractQuota: 5, IsActive: true},
	{PlanType: "basic", Name: "Basic", MonthlyPrice: 4.99, ContractQuota: 50, IsActive: true},
	{PlanType: "premium", Name: "Premium", MonthlyPrice: 9.99, ContractQuota: 0, IsActive: true},
}

func seedPlans(db *gorm.DB) error {
	for i := range subscriptionPlans {
		plan := subscriptionPlans[i]
		err := firstOrCreate(db, map[string]any{"plan_type": plan.PlanType}, &plan)
		if err != nil {
			return err
		}
	}
	return nil
}
