package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/charsheet/internal/commands"
	"github.com/KirkDiggler/charsheet/internal/config"
	charerr "github.com/KirkDiggler/charsheet/internal/errors"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	l := cfg.Log.NewLogger()
	if envErr != nil {
		l.Debug("No .env file found")
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, commands.Usage())
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := commands.NewRunner(&commands.RunnerConfig{
		Store:  commands.NewFileStore(cfg.Dir),
		Out:    os.Stdout,
		Logger: l.WithField("dir", cfg.Dir),
	})

	if err := runner.Run(ctx, os.Args[1:]); err != nil {
		l.WithFields(logrus.Fields{
			"command": os.Args[1],
			"code":    charerr.GetCode(err),
		}).Error(err)
		if charerr.IsInvalidArgument(err) {
			fmt.Fprint(os.Stderr, commands.Usage())
		}
		stop()
		os.Exit(1)
	}
}
