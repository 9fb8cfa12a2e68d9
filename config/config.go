package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// App holds process configuration resolved from the environment.
type App struct {
	Port      string
	JWTSecret string

	SendGridKey string
	FromEmail   string

	// UploadDir is where company logos land; served under /uploads.
	UploadDir string

	// Payment-application policy knobs (see ledger.Policy).
	RejectOverpayment bool
	AutoMarkPaid      bool
}

var Cfg App

// Load reads .env (if present) and resolves the app configuration.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using process environment")
	}

	Cfg = App{
		Port:        getenv("PORT", "8080"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		SendGridKey: os.Getenv("SENDGRID_API_KEY"),
		FromEmail:   getenv("FROM_EMAIL", "noreply@buildledger.app"),
		UploadDir:   getenv("UPLOAD_DIR", "./uploads"),

		RejectOverpayment: os.Getenv("REJECT_OVERPAYMENT") == "true",
		AutoMarkPaid:      os.Getenv("AUTO_MARK_PAID") == "true",
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
