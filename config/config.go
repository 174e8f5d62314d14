package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"crack-detector/internal/domain/entity"
	"crack-detector/internal/infrastructure/project"
)

type Config struct {
	// Корень проекта; пусто — два уровня выше бинарника
	ProjectRoot string `env:"CRACK_PROJECT_ROOT"`

	CheckpointID string `env:"CRACK_CHECKPOINT" envDefault:"yolov8n-obb.pt"`
	Epochs       int    `env:"CRACK_EPOCHS" envDefault:"50"`
	ImageSize    int    `env:"CRACK_IMAGE_SIZE" envDefault:"640"`
	RunName      string `env:"CRACK_RUN_NAME" envDefault:"crack_detector_run_1"`
	OutputRoot   string `env:"CRACK_OUTPUT_ROOT" envDefault:"runs"`
	ExistOK      bool   `env:"CRACK_EXIST_OK" envDefault:"true"`

	Task   string `env:"CRACK_TASK" envDefault:"obb"`
	Python string `env:"CRACK_PYTHON" envDefault:"python3"`

	// Изображение для просмотрщика
	ViewImage string `env:"CRACK_VIEW_IMAGE"`

	TelegramToken  string `env:"TELEGRAM_TOKEN"`
	TelegramChatID int64  `env:"TELEGRAM_CHAT_ID"`
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// Layout возвращает структуру каталогов проекта
func (c *Config) Layout() (project.Layout, error) {
	if c.ProjectRoot != "" {
		return project.New(c.ProjectRoot)
	}
	return project.FromExecutable()
}

// RunConfig собирает параметры запуска; относительный OutputRoot привязывается к корню проекта.
func (c *Config) RunConfig(layout project.Layout) entity.RunConfig {
	return entity.RunConfig{
		CheckpointID: c.CheckpointID,
		DatasetPath:  layout.DatasetPath(),
		Epochs:       c.Epochs,
		ImageSize:    c.ImageSize,
		RunName:      c.RunName,
		OutputRoot:   layout.RunsDir(c.OutputRoot),
		ExistOK:      c.ExistOK,
	}
}

// NotificationsEnabled сообщает, заданы ли реквизиты Telegram
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
