package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"crack-detector/config"
	"crack-detector/internal/container"
	"crack-detector/internal/domain/entity"
	"crack-detector/internal/infrastructure/storage"
	"crack-detector/internal/infrastructure/ultralytics"
	"crack-detector/internal/infrastructure/vision"
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

	image := cfg.ViewImage
	if len(os.Args) > 1 {
		image = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := ultralytics.NewRunner(cfg.Python, cfg.Task, layout.Root)

	c := container.New(container.Deps{
		Runs:   storage.NewMemoryRunRepository(),
		Loader: ultralytics.NewLoader(runner),
		Viewer: vision.NewWindowViewer("Detected cracks"),
		Out:    os.Stdout,
	})

	checkpoint := layout.BestCheckpoint(cfg.OutputRoot, cfg.RunName)
	err = c.ViewerService.View(ctx, checkpoint, image)
	if entity.IsKind(err, entity.KindMissingCheckpoint) {
		fmt.Printf("ERROR: Model file not found at %s\n", checkpoint)
		stop()
		os.Exit(1)
	}
	if err != nil {
		stop()
		log.Fatalf("Viewer failed: %v", err)
	}
}
