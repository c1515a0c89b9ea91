package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"elevbank/src/config"
	"elevbank/src/elev"
	"elevbank/src/network"
	"elevbank/src/timer"
	"elevbank/src/utils"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	envPath := flag.String("env", "", "Path to .env file with ELEVATOR_* overrides")
	flag.Parse()

	if err := run(*configPath, *envPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, envPath string) error {
	cfg, err := config.Load(configPath, envPath)
	if err != nil {
		return err
	}
	closeLog, err := utils.InitLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sys := elev.NewSystem(cfg.NumElevators, cfg.GroundFloor)
	defer sys.Close()
	slog.Info("Elevator bank started",
		"elevators", cfg.NumElevators,
		"groundFloor", cfg.GroundFloor,
		"tick", cfg.TickInterval)

	tickerDone := make(chan struct{})
	go func() {
		defer close(tickerDone)
		timer.Run(ctx, cfg.TickInterval, sys.Tick)
	}()

	err = network.Serve(ctx, cfg.ListenAddr, sys)
	stop()
	<-tickerDone
	slog.Info("Elevator bank stopped")
	return err
}
