package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpin "laundry/internal/adapters/in/http"
	"laundry/internal/adapters/out/postgres"
	"laundry/internal/core/domain/model/kernel"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

var envFile string

var rootCmd = &cobra.Command{
	Use:   "laundry",
	Short: "Laundry order lifecycle and fulfillment service",
	Long: `Tracks laundry orders from cart to completion, coordinates staff claims
and driver trips, and manages driver absences.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and background jobs",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE:  runMigrate,
}

var tokenCmd = &cobra.Command{
	Use:   "token <actor-id> <role>",
	Short: "Issue an access token for local testing",
	Args:  cobra.ExactArgs(2),
	RunE:  runToken,
}

var tokenTTL time.Duration

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd)
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}

func openDatabase(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpg.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(envFile)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	if err = postgres.Migrate(db.WithContext(cmd.Context())); err != nil {
		return err
	}
	cfg.NewLogger().InfoContext(cmd.Context(), "Schema migrated", "database", cfg.DBName)
	return nil
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(envFile)
	if err != nil {
		return err
	}
	log := cfg.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	if err = postgres.Migrate(db); err != nil {
		return err
	}

	root, err := NewCompositionRoot(cfg, db, log)
	if err != nil {
		return err
	}
	defer root.Close()
	if err = root.Ping(ctx); err != nil {
		log.WarnContext(ctx, "Redis is unreachable, history reads fall back to the database", "error", err)
	}

	manager, err := root.Jobs()
	if err != nil {
		return err
	}
	if err = manager.StartAll(); err != nil {
		return err
	}
	defer manager.StopAll()

	e := httpin.NewEcho(root.HTTPServer(), root.HTTPOptions(), log)
	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "HTTP server listening", "port", cfg.HTTPPort)
		if startErr := e.Start("0.0.0.0:" + cfg.HTTPPort); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			errCh <- startErr
		}
	}()

	select {
	case <-ctx.Done():
	case err = <-errCh:
		return err
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(envFile)
	if err != nil {
		return err
	}
	id, err := kernel.UUIDFromString(args[0])
	if err != nil {
		return err
	}
	tok, err := httpin.SignToken(cfg.JWTSecret, httpin.Actor{ID: id, Role: httpin.Role(args[1])}, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
	return err
}
