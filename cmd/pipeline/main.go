package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"crack-detector/config"
	telegram "crack-detector/internal/api"
	"crack-detector/internal/container"
	"crack-detector/internal/domain/port"
	"crack-detector/internal/infrastructure/dataset"
	"crack-detector/internal/infrastructure/storage"
	"crack-detector/internal/infrastructure/ultralytics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	layout, err := cfg.Layout()
	if err != nil {
		log.Fatalf("Failed to resolve project root: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var notifier port.Notifier
	if cfg.NotificationsEnabled() {
		n, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("Telegram notifications disabled: %v", err)
		} else {
			notifier = n
		}
	}

	runner := ultralytics.NewRunner(cfg.Python, cfg.Task, layout.Root)

	c := container.New(container.Deps{
		Runs:     storage.NewMemoryRunRepository(),
		Loader:   ultralytics.NewLoader(runner),
		Datasets: dataset.NewReader(),
		Notifier: notifier,
		Out:      os.Stdout,
	})

	if err := c.PipelineService.Run(ctx, layout.Root, layout.TestImagesDir(), cfg.RunConfig(layout)); err != nil {
		stop()
		log.Fatalf("Pipeline failed: %v", err)
	}
}
