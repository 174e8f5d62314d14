package port

import (
	"context"

	"crack-detector/internal/domain/entity"
)

// DatasetReader читает описание датасета
type DatasetReader interface {
	Read(ctx context.Context, path string) (*entity.Dataset, error)
}
