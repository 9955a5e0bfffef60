package config

import (
	"github.com/spf13/viper"
)

// Settings holds everything the application reads from the environment.
type Settings struct {
	HTTPAddr string
	BaseURL  string

	DatabaseURL string
	RedisAddr   string

	JWTSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string
	EmailEnabled bool

	// AutoAcceptInvitations flips invited parties straight to "accepted"
	// without waiting for them to act. Meant for local setups without a
	// real mail gateway.
	AutoAcceptInvitations bool

	SignatureCodeLength int
	TemplateShareDays   int
}

// App is the process-wide configuration, populated by Load.
var App Settings

// JwtKey is the HMAC secret used to sign and verify session tokens.
var JwtKey []byte

// Load reads configuration from the environment with sane defaults.
func Load() {
	viper.AutomaticEnv()

	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("DB_URL", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("JWT_SECRET", "dev-only-secret")
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("EMAIL_FROM", "noreply@mywordismyword.app")
	viper.SetDefault("EMAIL_ENABLED", false)
	viper.SetDefault("AUTO_ACCEPT_INVITATIONS", false)
	viper.SetDefault("SIGNATURE_CODE_LENGTH", 6)
	viper.SetDefault("TEMPLATE_SHARE_DAYS", 30)

	App = Settings{
		HTTPAddr:              viper.GetString("HTTP_ADDR"),
		BaseURL:               viper.GetString("BASE_URL"),
		DatabaseURL:           viper.GetString("DB_URL"),
		RedisAddr:             viper.GetString("REDIS_ADDR"),
		JWTSecret:             viper.GetString("JWT_SECRET"),
		SMTPHost:              viper.GetString("SMTP_HOST"),
		SMTPPort:              viper.GetInt("SMTP_PORT"),
		SMTPUser:              viper.GetString("SMTP_USER"),
		SMTPPassword:          viper.GetString("SMTP_PASSWORD"),
		EmailFrom:             viper.GetString("EMAIL_FROM"),
		EmailEnabled:          viper.GetBool("EMAIL_ENABLED"),
		AutoAcceptInvitations: viper.GetBool("AUTO_ACCEPT_INVITATIONS"),
		SignatureCodeLength:   viper.GetInt("SIGNATURE_CODE_LENGTH"),
		TemplateShareDays:     viper.GetInt("TEMPLATE_SHARE_DAYS"),
	}
	JwtKey = []byte(App.JWTSecret)
}
