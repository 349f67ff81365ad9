package main

import (
	"context"

	"deloconnect/cmd/delo/ui"
	"deloconnect/internal/api"
	"deloconnect/internal/config"
	"deloconnect/internal/logging"
	"deloconnect/internal/store"
)

// runDashboard starts the interactive dashboard. Unlike the one-shot
// commands there is no token gate up front: without a token the app
// opens on the sign-in page and makes no backend calls.
func runDashboard(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := api.NewClient(cfg)

	log := logging.Get(logging.CategoryBoot)

	// Preferences are best-effort; the dashboard runs without them.
	var prefs *store.PrefsStore
	if dir, derr := config.Dir(); derr == nil {
		if prefs, err = store.Open(dir); err != nil {
			log.Warn("preferences store unavailable: %v", err)
			prefs = nil
		}
	}
	if prefs != nil {
		defer prefs.Close()
	}

	// A token written by `delo login` in another terminal reaches the
	// running dashboard through the config watcher. URL changes still
	// need a restart.
	if path, perr := config.Path(); perr == nil {
		watcher, werr := config.NewWatcher(path, func(next *config.Config) {
			client.SetToken(next.AccessToken)
		})
		if werr == nil {
			if serr := watcher.Start(); serr == nil {
				defer watcher.Stop()
			}
		}
	}

	log.Info("starting dashboard")
	return ui.Run(ctx, cfg, client, prefs)
}
