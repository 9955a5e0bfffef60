package cmd

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/doganiot/mywordismyword/config"
	"github.com/doganiot/mywordismyword/internal/handlers"
	"github.com/doganiot/mywordismyword/internal/lifecycle"
	"github.com/doganiot/mywordismyword/internal/mailer"
	"github.com/doganiot/mywordismyword/internal/notify"
	"github.com/doganiot/mywordismyword/internal/routes"
)

func init() {
	RootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		config.ConnectRedis()

		var mail mailer.Mailer = mailer.Disabled{}
		if config.App.EmailEnabled {
			mail = mailer.NewSMTP(
				config.App.SMTPHost, config.App.SMTPPort,
				config.App.SMTPUser, config.App.SMTPPassword,
				config.App.EmailFrom,
			)
		}

		notifier := notify.NewEmitter(config.DB, config.RDB)
		ctrl := lifecycle.NewController(config.DB, notifier, mail, lifecycle.Options{
			BaseURL:               config.App.BaseURL,
			AutoAcceptInvitations: config.App.AutoAcceptInvitations,
			SignatureCodeLength:   config.App.SignatureCodeLength,
		})
		handlers.Init(ctrl, notifier)

		r := gin.Default()
		routes.SetupRoutes(r)

		slog.Info("Starting HTTP server", "addr", config.App.HTTPAddr)
		if err := r.Run(config.App.HTTPAddr); err != nil {
			slog.Error("HTTP server stopped", "error", err)
			os.Exit(1)
		}
	},
}
