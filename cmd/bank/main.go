package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jonanatree/yuganbank/bank"
	"golang.org/x/exp/slog"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout))

	app := bank.NewApp(logger, bank.LoadConfig())
	if err := app.Start(); err != nil {
		logger.Error("starting app", "err", err)
		os.Exit(1)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	app.Shutdown()
}
