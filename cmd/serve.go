package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/hlieber45/harrisonlieber-site/internal/covers"
	"github.com/hlieber45/harrisonlieber-site/internal/server"
	"github.com/hlieber45/harrisonlieber-site/internal/shared"
	"github.com/hlieber45/harrisonlieber-site/internal/store"
	"github.com/hlieber45/harrisonlieber-site/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Serve loads the catalog, starts the enrichment passes in the background and serves the API until
// interrupted. Requests are answered while enrichment is still running.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := r.buildCatalog()
	if err != nil {
		return err
	}

	cache, closeCache := r.openCoverCache(cmd.Bool("no-cache"))
	defer closeCache()

	var wg sync.WaitGroup
	if r.config.Enrichment.Enabled && !cmd.Bool("no-enrich") {
		r.enrichInBackground(ctx, &wg, catalog, cache)
	}

	addr := r.config.Server.Addr()
	if a := cmd.String("addr"); a != "" {
		addr = a
	}

	r.checkCoverFiles(r.config.Server.CoversDir)

	srv := server.New(catalog, server.Options{
		Addr:           addr,
		CoversDir:      r.config.Server.CoversDir,
		AllowedOrigins: r.config.Server.AllowedOrigins,
	}, r.logger)

	err = srv.ListenAndServe(ctx)
	stop()
	wg.Wait()
	return err
}

// checkCoverFiles warns about manually mapped covers the covers directory does not hold.
func (r *Runner) checkCoverFiles(dir string) []string {
	if dir == "" {
		return nil
	}
	missing := covers.MissingFiles(dir)
	for _, f := range missing {
		r.logger.Warn("mapped cover file missing", "dir", dir, "file", f)
	}
	return missing
}

// enrichInBackground runs both passes concurrently. Failures are logged and never stop the server.
func (r *Runner) enrichInBackground(ctx context.Context, wg *sync.WaitGroup, catalog *store.Store, cache tasks.CoverCacher) {
	passes := map[string]func(context.Context, chan<- tasks.ProgressUpdate) (tasks.Result, error){
		"albums": r.albumEnricher(catalog, cache).Run,
		"movies": r.movieEnricher(catalog, cache).Run,
	}

	for name, run := range passes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := run(ctx, nil)
			switch {
			case err == nil:
			case errors.Is(err, shared.ErrServiceUnavailable):
				r.logger.Warn("enrichment skipped, credentials not configured", "pass", name)
			case errors.Is(err, context.Canceled):
				r.logger.Info("enrichment interrupted", "pass", name)
			default:
				r.logger.Error("enrichment failed", "pass", name, "error", err)
			}
		}()
	}
}
