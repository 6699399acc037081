// Package sl содержит вспомогательные функции для работы с логгером slog.
// Используется обработчиками и сервисами витрины для единообразного
// добавления ошибок в структурированные записи лога.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to confirm checkout", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
