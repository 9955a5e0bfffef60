package cmd

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/doganiot/mywordismyword/config"
)

func init() {
	RootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load system templates and subscription plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := seedTemplates(config.DB); err != nil {
			return err
		}
		if err := seedPlans(config.DB); err != nil {
			return err
		}
		slog.Info("Seed data loaded")
		return nil
	},
}

// upsert by natural key so re-running the seed is harmless.
func firstOrCreate[T any](db *gorm.DB, where map[string]any, record *T) error {
	var existing T
	err := db.Where(where).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(record).Error
}
