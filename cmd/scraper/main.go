package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/app"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/config"
)

func main() {
	setupLogging()

	// Local development keeps credentials in .env; in production the
	// variables come from the environment directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	logrus.WithFields(logrus.Fields{
		"channels": len(channelsCfg.Channels),
		"interval": rootCfg.Pipeline.CheckInterval(),
		"window":   rootCfg.Pipeline.MaxTimeDiff(),
	}).Info("starting perpetual scraper")

	scheduler := app.NewScheduler(pipeline, rootCfg.Pipeline.CheckInterval())
	if err := scheduler.Run(ctx); err != nil && ctx.Err() == nil {
		logrus.WithError(err).Fatal("scheduler stopped")
	}
	logrus.Info("scraper shut down")
}

func setupLogging() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	}
}

func configPath(envName, fallback string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return fallback
}
