package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/five82/vitrine/internal/config"
	"github.com/five82/vitrine/internal/favorites"
	"github.com/five82/vitrine/internal/logging"
	"github.com/five82/vitrine/internal/prefs"
	"github.com/five82/vitrine/internal/shop"
	"github.com/five82/vitrine/internal/state"
	"github.com/five82/vitrine/internal/storefront"
	"github.com/five82/vitrine/internal/ui"
)

// Options configure the Vitrine application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/vitrine/prefs.toml

	// ExportWishlist, when set, writes the wishlist to this .xlsx file and
	// returns without starting the UI.
	ExportWishlist string
	// ImportWishlist, when set, merges favorites from this .xlsx file and
	// returns without starting the UI.
	ImportWishlist string

	// Out receives one-line reports from the export and import commands.
	// Nil uses os.Stdout.
	Out io.Writer
}

// services holds the long-lived dependencies shared by the UI and the
// one-shot commands.
type services struct {
	log       zerolog.Logger
	logFile   *os.File
	prefs     *prefs.Store
	favorites *favorites.Store
	gateway   *shop.Gateway
}

// Run boots Vitrine until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	svc, err := open(cfg, opts.PrefsPath)
	if err != nil {
		return err
	}
	defer svc.Close()

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	switch {
	case opts.ExportWishlist != "":
		n, err := ExportWishlist(ctx, svc.favorites, opts.ExportWishlist)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "exported %d favorites to %s\n", n, opts.ExportWishlist)
		return nil

	case opts.ImportWishlist != "":
		n, err := ImportWishlist(ctx, svc.favorites, opts.ImportWishlist)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "imported %d favorites from %s\n", n, opts.ImportWishlist)
		return nil
	}

	return svc.runUI(ctx)
}

// open wires logging, local stores and the storefront gateway.
func open(cfg config.Config, prefsPath string) (*services, error) {
	endpoint, err := cfg.Endpoint()
	if err != nil {
		return nil, fmt.Errorf("resolve endpoint: %w", err)
	}

	log, logFile, err := logging.OpenFile(cfg.LogPath(), logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	if err != nil {
		return nil, err
	}
	svc := &services{log: log, logFile: logFile}

	svc.prefs = prefs.Open(prefsPath)

	svc.favorites, err = favorites.Open(cfg.FavoritesPath(), log)
	if err != nil {
		svc.Close()
		return nil, err
	}

	client, err := storefront.NewClient(storefront.Options{
		Endpoint:        endpoint,
		StorefrontToken: cfg.StorefrontToken,
		Tokens:          svc.prefs,
		Timeout:         cfg.RequestTimeout,
		Logger:          log,
	})
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("init storefront client: %w", err)
	}

	svc.gateway, err = shop.NewGateway(shop.Options{
		API:      client,
		Prefs:    svc.prefs,
		Wishlist: svc.favorites,
		PageSize: cfg.PageSize,
		Logger:   log,
	})
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("init gateway: %w", err)
	}

	log.Info().
		Str("endpoint", endpoint).
		Str("prefs", svc.prefs.Path()).
		Str("favorites", cfg.FavoritesPath()).
		Msg("vitrine started")
	return svc, nil
}

// Close releases the favorites database and the log file.
func (s *services) Close() error {
	var errs []error
	if s.favorites != nil {
		errs = append(errs, s.favorites.Close())
	}
	if s.logFile != nil {
		errs = append(errs, s.logFile.Close())
	}
	return errors.Join(errs...)
}

// runUI starts the coordinators and blocks in the TUI. On return every
// in-flight action has finished.
func (s *services) runUI(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	catalog := state.NewCatalog(s.gateway, s.log)
	synced := catalog.Start(ctx)
	auth := state.NewAuth(s.gateway, s.log)
	theme := state.NewTheme(s.prefs, s.log)

	err := ui.Run(ui.Options{
		Context:    ctx,
		Catalog:    catalog,
		Auth:       auth,
		Theme:      theme,
		Categories: shop.DefaultCategories(),
		Logger:     s.log.With().Str("component", "ui").Logger(),
	})

	cancel()
	<-synced
	catalog.Wait()
	auth.Wait()
	theme.Wait()

	if err != nil {
		s.log.Error().Err(err).Msg("ui exited with error")
		return fmt.Errorf("run ui: %w", err)
	}
	s.log.Info().Msg("vitrine stopped")
	return nil
}
