package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"broker/internal/app/chat"
	"broker/internal/configs"
	"broker/internal/pkg/eventlog"
	"broker/internal/pkg/logx"
	"broker/internal/server"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := configs.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "broker: "+err.Error())
		return 1
	}

	logx.InitGlobalLogger(cfg.Environment == "development")

	events, err := eventlog.Open(cfg.LogPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "broker: "+err.Error())
		return 1
	}
	defer events.Close()

	broker := chat.NewBroker(events, cfg.BotPrefix)

	ln, err := server.Listen(cfg.Port, broker)
	if err != nil {
		fmt.Fprintln(os.Stderr, "broker: "+err.Error())
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logx.Info("broker listening", "port", cfg.Port, "log_path", cfg.LogPath)

	if err := ln.Serve(ctx); err != nil {
		logx.Error(err, "listener exited with error")
	}

	events.Log("server shutdown")
	logx.Info("broker shut down cleanly")
	return 0
}
