package port

import "context"

// Notifier отправляет текстовые сводки о запуске
type Notifier interface {
	Notify(ctx context.Context, text string) error
}
