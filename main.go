package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"

	"mandate-engine/internal/catalog"
	"mandate-engine/internal/config"
	"mandate-engine/internal/engine"
	"mandate-engine/internal/handler"
	"mandate-engine/internal/model"
	"mandate-engine/internal/selection"
	"mandate-engine/internal/store"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "mandate",
		Short:         "Budget and policy simulation engine for public transport mandates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(simulateCmd(&configPath))
	rootCmd.AddCommand(catalogCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mandate:", err)
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP calculation server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")
	return cmd
}

func simulateCmd(configPath *string) *cobra.Command {
	var presetID, in, out string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Evaluate a selection state and print its budget report",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runSimulate(cfg, presetID, in, out)
		},
	}

	cmd.Flags().StringVarP(&presetID, "preset", "p", "", "apply a preset before evaluating")
	cmd.Flags().StringVar(&in, "in", "", "start from a zstd state snapshot")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the resulting state as a zstd snapshot")
	return cmd
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect project catalogs",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a YAML catalog; without a path the built-in catalog is checked",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			c, err := catalog.Load(path)
			if err != nil {
				return err
			}
			if err := c.Validate(); err != nil {
				return err
			}
			fmt.Printf("catalog ok: %d projects, %d presets\n", len(c.Projects), len(c.Presets))
			return nil
		},
	})
	return cmd
}

func loadCatalog(cfg config.Config, logger *log.Logger) (*catalog.Catalog, error) {
	if cfg.CatalogPath != "" {
		return catalog.Load(cfg.CatalogPath)
	}
	if cfg.RegistryURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c, err := catalog.FetchRemote(ctx, cfg.RegistryURL)
		if err != nil {
			logger.Printf("catalog registry unavailable, using built-in catalog: %v", err)
		}
		return c, nil
	}
	return catalog.Default(), nil
}

func runServe(cfg config.Config) error {
	logger := log.New(os.Stdout, "[mandate] ", log.LstdFlags|log.Lmicroseconds)

	cat, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}

	var sessions handler.SessionStore
	if cfg.DBPath != "" {
		db, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		sessions = db
	} else {
		logger.Printf("db_path empty, sessions disabled")
	}

	h := handler.New(cat, sessions, logger)
	srv := &fasthttp.Server{
		Handler:            h.Serve,
		Name:               "mandate-engine",
		ReadTimeout:        cfg.ReadTimeout,
		WriteTimeout:       cfg.WriteTimeout,
		MaxRequestBodySize: cfg.MaxBodyBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s (%d projects)", cfg.Addr, len(cat.Projects))
		errCh <- srv.ListenAndServe(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.ShutdownWithContext(shutdownCtx)
}

func runSimulate(cfg config.Config, presetID, in, out string) error {
	logger := log.New(os.Stderr, "[mandate] ", log.LstdFlags)

	cat, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}

	st := model.NewSelectionState()
	if in != "" {
		if st, err = store.ReadSnapshot(in); err != nil {
			return err
		}
		if err := selection.Normalize(cat, st); err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
	}
	if presetID != "" && !selection.ApplyPreset(cat, st, presetID) {
		return errors.New("unknown preset " + presetID)
	}

	report := engine.Evaluate(cat, st)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(struct {
		State  *model.SelectionState `json:"state"`
		Report model.Report          `json:"report"`
	}{st, report}); err != nil {
		return err
	}

	if out != "" {
		if err := store.WriteSnapshot(out, st); err != nil {
			return err
		}
		logger.Printf("state written to %s", out)
	}
	return nil
}
