package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/guidebook/internal/app"
	"github.com/ziadkadry99/guidebook/internal/config"
	"github.com/ziadkadry99/guidebook/internal/db"
	"github.com/ziadkadry99/guidebook/internal/guide"
	"github.com/ziadkadry99/guidebook/internal/logging"
	"github.com/ziadkadry99/guidebook/internal/server"
)

var (
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the guides with a live control panel",
	Long: `Starts an HTTP server that renders each guide on request. Mode toggles are
applied by the server and remembered per visitor. With --watch, edits to the
guides directory are pushed to open pages.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload guides when files change")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	mode, err := defaultMode(cfg)
	if err != nil {
		return err
	}

	guides, err := loadGuides(cfg)
	if err != nil {
		return err
	}

	// Open database.
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	rt := app.NewRuntime(db.NewModeStore(database), guides, mode)
	srv := server.New(server.Config{
		Port:          cfg.Port,
		SiteTitle:     cfg.SiteTitle,
		SessionSecret: cfg.SessionSecret,
		AllowAll:      cfg.AllowAllOrigins,
	}, rt, guide.NewRenderer())

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "guidebook %s serving %d guides from %s\n", Version, len(guides), cfg.GuidesDir)
	fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
	fmt.Fprintf(os.Stderr, "  Open http://localhost:%d\n", cfg.Port)

	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return rt.Run(egctx) })
	eg.Go(func() error { return srv.Serve(egctx) })
	if serveWatch {
		eg.Go(func() error { return watchGuides(egctx, cfg, rt) })
	}

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Fprintln(os.Stderr, "\nServer stopped.")
	return nil
}

// watchGuides reloads the guide list on every change under the guides dir.
// A reload that fails keeps the previous list.
func watchGuides(ctx context.Context, cfg *config.Config, rt *app.Runtime) error {
	log := logging.Component("serve")
	return guide.Watch(ctx, cfg.GuidesDir, func() {
		guides, err := guide.Load(cfg.GuidesDir, loadOptions(cfg))
		if err != nil {
			log.Warn().Err(err).Msg("reload failed, keeping previous guides")
			return
		}
		rt.SetGuides(guides)
		log.Info().Int("guides", len(guides)).Msg("guides reloaded")
	})
}
