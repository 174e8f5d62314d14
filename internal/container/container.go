package container

import (
	"io"

	app "crack-detector/internal/application"
	"crack-detector/internal/domain/port"
)

type Container struct {
	RunService      *app.RunService
	PipelineService *app.PipelineService
	ViewerService   *app.ViewerService
}

// Deps внешние зависимости сервисов; Notifier и Datasets необязательны.
type Deps struct {
	Runs     port.RunRepository
	Loader   port.ModelLoader
	Datasets port.DatasetReader
	Viewer   port.Viewer
	Notifier port.Notifier
	Out      io.Writer
}

func New(deps Deps) *Container {
	runService := app.NewRunService(deps.Runs)
	pipelineService := app.NewPipelineService(runService, deps.Loader, deps.Datasets, deps.Notifier, deps.Out)
	viewerService := app.NewViewerService(deps.Loader, deps.Viewer, deps.Out)

	return &Container{
		RunService:      runService,
		PipelineService: pipelineService,
		ViewerService:   viewerService,
	}
}
