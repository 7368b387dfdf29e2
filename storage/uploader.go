package storage

import (
	"context"
	"fmt"
	"io"
	"path"
)

// UploadResult описывает сохранённый объект. Location: публичный URL, если он настроен.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader хранит сгенерированные файлы (книги расписаний) по ключу.
// Delete нужен, чтобы новый экспорт турнира заменял предыдущий.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
}

// ExportKey возвращает ключ объекта для экспорта расписания турнира.
func ExportKey(tournamentID int, fileName string) string {
	return path.Join("exports", "tournaments", fmt.Sprint(tournamentID), path.Base(fileName))
}
