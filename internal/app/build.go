package app

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/bunny"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/config"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/cursor"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/enricher"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/feed"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/gemini"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/publisher"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/snapshot"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/telegram"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/validator"
)

// Build assembles the full pipeline from configuration. The returned cleanup
// closes the cursor store. Missing Gemini credentials degrade the oracles
// instead of failing; everything else missing is a startup error.
func Build(ctx context.Context, rootCfg config.Root, channels []config.Channel, envCfg *config.EnvConfig) (*Pipeline, func(), error) {
	timeout := rootCfg.Pipeline.RequestTimeout()

	gateway := telegram.NewGatewayClient(envCfg.GatewayURL, envCfg.GatewayToken, timeout)
	poller := telegram.NewPoller(gateway, rootCfg.Pipeline.ScanLimit)

	cursorStore, err := cursor.Open(rootCfg.Pipeline.CursorPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := cursorStore.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close cursor store")
		}
	}

	// AI oracles are optional; a missing credential means "run without".
	var (
		classifier validator.Classifier
		translator enricher.Translator
		titler     enricher.Titler
	)
	geminiClient, err := gemini.NewClient(ctx, envCfg.GeminiAPIKey, rootCfg.Gemini.Model, timeout)
	switch {
	case err == nil:
		translator = gemini.NewTranslator(geminiClient)
		titler = gemini.NewTitler(geminiClient)
		if rootCfg.Pipeline.EnableClassifier {
			classifier = gemini.NewClassifier(geminiClient)
		}
	case errors.Is(err, feed.ErrOracleUnavailable):
		logrus.Warn("GEMINI_API_KEY not set, running without AI oracles")
	default:
		cleanup()
		return nil, nil, err
	}

	var store bunny.Store
	var pub Publisher
	if !envCfg.DryRun {
		store = bunny.NewClient(envCfg.BunnyUploadEndpoint, envCfg.BunnyPullZone, timeout)
		pub = publisher.New(envCfg.APIBaseURL, timeout)
	} else {
		logrus.Info("dry run: media stay local and posts are not upserted")
	}

	enrich := enricher.New(rootCfg.Pipeline, gateway, store, translator, titler, cursorStore, nil)

	p := NewPipeline(PipelineDeps{
		Channels:  channels,
		Resolver:  gateway,
		Poller:    poller,
		Validator: validator.New(rootCfg.Pipeline, classifier),
		Enricher:  enrich,
		Publisher: pub,
		Cursor:    cursorStore,
		Snapshots: snapshot.NewWriter(rootCfg.Pipeline.SnapshotDir),
		Config:    rootCfg.Pipeline,
	})
	return p, cleanup, nil
}
