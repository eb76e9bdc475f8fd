package main

import (
	"artifacts/internal/commands"
	"artifacts/internal/config"
	"artifacts/internal/runner"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sagikazarmark/slog-shim"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	exitOnError := errorHandler(cancel)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Println("signal caught, stopping")
			cancel()
		case <-ctx.Done():
		}
	}()

	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append([]string{filepath.Join(home, ".artifactsmmo")}, dirs...)
	}

	cfg, err := config.Load(viper.GetViper(), afero.NewOsFs(), dirs...)
	exitOnError(err)

	r, err := runner.NewRunner(runner.Config{
		Token:   cfg.Token,
		URL:     cfg.URL,
		Timeout: cfg.Timeout,
	})
	exitOnError(err)

	chain := commands.NewChain(
		commands.NewPositionQuery(cfg.Name),
		commands.NewMove(cfg.Name, cfg.Move.X, cfg.Move.Y),
		commands.NewPositionQuery(cfg.Name),
	)

	slog.Info("running chain", "character", cfg.Name, "x", cfg.Move.X, "y", cfg.Move.Y)
	exitOnError(chain.Execute(ctx, r))
	cancel()
}

func errorHandler(cancel context.CancelFunc) func(err error) {
	return func(err error) {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			cancel()
			os.Exit(1)
		}
	}
}
