package entity

import (
	"errors"
	"fmt"
)

// ErrorKind различает ожидаемые и фатальные сбои конвейера
type ErrorKind string

const (
	KindUnknown           ErrorKind = "unknown"
	KindConfig            ErrorKind = "config"             // неверная конфигурация или data.yaml
	KindMissingCheckpoint ErrorKind = "missing_checkpoint" // нет файла весов
	KindSkipped           ErrorKind = "skipped"            // шаг пропущен, не фатально
	KindEngine            ErrorKind = "engine"             // сбой внутри фреймворка детекции
	KindEmptyResult       ErrorKind = "empty_result"       // фреймворк вернул пустой список
)

// Error ошибка конвейера с явным видом
type Error struct {
	Kind ErrorKind
	Op   string // шаг, на котором произошла ошибка
	Path string // путь, если ошибка связана с файлом
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s (%s)", msg, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf возвращает вид первой entity.Error в цепочке
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind сообщает, относится ли ошибка к указанному виду
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// Fatal сообщает, должна ли ошибка прервать конвейер
func Fatal(err error) bool {
	return err != nil && !IsKind(err, KindSkipped)
}
