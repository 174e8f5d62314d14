package entity

// Dataset содержимое data.yaml, которое нужно для предварительной проверки.
type Dataset struct {
	Path  string   // корень датасета
	Train string   // изображения для обучения
	Val   string   // изображения для валидации
	Test  string   // изображения для теста, может быть пустым
	Names []string // имена классов по индексу
}

// ClassCount возвращает число классов
func (d Dataset) ClassCount() int {
	return len(d.Names)
}
