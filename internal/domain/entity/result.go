package entity

// TrainResult итог обучения; из него нужен только каталог сохранения.
type TrainResult struct {
	SaveDir string
}

// BestCheckpoint возвращает путь к best.pt внутри каталога обучения
func (r TrainResult) BestCheckpoint() string {
	return BestCheckpointIn(r.SaveDir)
}

// Metrics mAP рамок по трём порогам IoU.
type Metrics struct {
	MAP50_95 float64 // mAP на диапазоне IoU 0.50:0.95
	MAP50    float64 // mAP при IoU 0.50
	MAP75    float64 // mAP при IoU 0.75
	SaveDir  string  // каталог с графиками валидации
}

// Prediction результат предсказания для одного изображения.
type Prediction struct {
	Source  string        // путь к исходному изображению
	SaveDir string        // каталог с аннотированными изображениями
	Width   int           // ширина исходного изображения
	Height  int           // высота исходного изображения
	Boxes   []OrientedBox // найденные трещины
}

// HasDetections сообщает, нашлась ли хотя бы одна рамка
func (p Prediction) HasDetections() bool {
	return len(p.Boxes) > 0
}

// TrainParams параметры вызова обучения
type TrainParams struct {
	Data      string
	Epochs    int
	ImageSize int
	Project   string
	Name      string
	ExistOK   bool
}

// PredictParams параметры вызова предсказания
type PredictParams struct {
	Source string // файл или каталог с изображениями
	Save   bool   // сохранять аннотированные изображения
}
