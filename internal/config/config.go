package config

import (
	"os"
	"strconv"
	"time"

	"github.com/cedarkey/leasing-service/utils"
)

// Config holds all application configuration.
type Config struct {
	AppName        string
	AppPort        string
	AppUrl         string
	DBUrl          string
	SweepCron      string
	ReconcileCron  string
	SweepTxTimeout time.Duration
}

const (
	AppName = "leasing-service"

	// DefaultSweepCron runs the expiration sweep nightly, shortly after
	// midnight so end dates crossed during the day are picked up once.
	DefaultSweepCron = "15 0 * * *"

	// DefaultReconcileCron backfills maintenance tickets the post-transition
	// hook failed to create.
	DefaultReconcileCron = "@every 1h"

	DefaultSweepTxTimeoutSeconds = 5
)

// LoadConfig reads configuration from the environment and returns a *Config.
// Missing required variables are fatal.
func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	appUrl := os.Getenv("APP_URL_FROM_ANYWHERE")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	utils.Logger.Debugf("App can be accessed at: %s", appUrl)

	sweepCron := os.Getenv("SWEEP_CRON")
	if sweepCron == "" {
		sweepCron = DefaultSweepCron
	}
	reconcileCron := os.Getenv("RECONCILE_CRON")
	if reconcileCron == "" {
		reconcileCron = DefaultReconcileCron
	}

	sweepTxTimeout := DefaultSweepTxTimeoutSeconds
	if raw := os.Getenv("SWEEP_TX_TIMEOUT_SECONDS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.Logger.Fatalf("SWEEP_TX_TIMEOUT_SECONDS is not a positive integer: %q", raw)
		}
		sweepTxTimeout = parsed
	}

	return &Config{
		AppName:        AppName,
		AppPort:        appPort,
		AppUrl:         appUrl,
		DBUrl:          dbUrl,
		SweepCron:      sweepCron,
		ReconcileCron:  reconcileCron,
		SweepTxTimeout: time.Duration(sweepTxTimeout) * time.Second,
	}
}
