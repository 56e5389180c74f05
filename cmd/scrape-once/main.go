// scrape-once runs a single pipeline cycle and exits. Useful for cron-style
// deployments and for checking a configuration against live channels.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/app"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/config"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	}

	_ = godotenv.Load()

	ctx := context.Background()

	rootCfg, err := config.LoadRoot(configPath("SCRAPER_CONFIG", "configs/scraper.yaml"))
	if err != nil {
		logrus.WithError(err).Fatal("load scraper config")
	}

	channelsCfg, err := config.LoadChannels(configPath("CHANNELS_CONFIG", "configs/channels.yaml"))
	if err != nil {
		logrus.WithError(err).Fatal("load channels config")
	}

	envCfg, err := config.LoadEnvConfig()
	if err != nil {
		logrus.WithError(err).Fatal("load env config")
	}

	pipeline, cleanup, err := app.Build(ctx, rootCfg, channelsCfg.Channels, envCfg)
	if err != nil {
		logrus.WithError(err).Fatal("build pipeline")
	}
	defer cleanup()

	if err := pipeline.RunCycle(ctx); err != nil {
		logrus.WithError(err).Fatal("cycle failed")
	}
	logrus.Info("cycle completed")
}

func configPath(envName, fallback string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return fallback
}
