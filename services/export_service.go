package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/tournament-scheduler/export"
	"github.com/Dosada05/tournament-scheduler/storage"
)

// ExportResult: готовая книга расписания. URL заполнен, если файл загружен;
// Content заполнен всегда.
type ExportResult struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	URL         string `json:"url,omitempty"`
	MatchCount  int    `json:"matchCount"`
	Content     []byte `json:"-"`
}

type ExportService interface {
	ExportSchedule(ctx context.Context, tournamentID int) (*ExportResult, error)
}

type exportService struct {
	schedules ScheduleService
	uploader  storage.FileUploader // nil без R2
	logger    *slog.Logger
	now       func() time.Time

	mu      sync.Mutex
	lastKey map[int]string // последний загруженный файл турнира
}

func NewExportService(schedules ScheduleService, uploader storage.FileUploader, logger *slog.Logger) ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &exportService{
		schedules: schedules,
		uploader:  uploader,
		logger:    logger,
		now:       time.Now,
		lastKey:   make(map[int]string),
	}
}

func (s *exportService) ExportSchedule(ctx context.Context, tournamentID int) (*ExportResult, error) {
	matches, err := s.schedules.LoadTournamentMatches(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	content, err := export.Bytes(matches)
	if err != nil {
		return nil, fmt.Errorf("render schedule workbook: %w", err)
	}

	result := &ExportResult{
		FileName:    fmt.Sprintf("tournament-%d-schedule-%s.xlsx", tournamentID, s.now().UTC().Format("20060102-150405")),
		ContentType: export.ContentType,
		MatchCount:  len(matches),
		Content:     content,
	}

	if s.uploader != nil {
		key := storage.ExportKey(tournamentID, result.FileName)
		uploaded, err := s.uploader.Upload(ctx, key, export.ContentType, bytes.NewReader(content))
		if err != nil {
			s.logger.Error("schedule export upload failed", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
			return nil, err
		}
		result.URL = uploaded.Location
		s.logger.Info("schedule exported",
			slog.Int("tournament_id", tournamentID),
			slog.String("key", uploaded.Key),
			slog.String("etag", uploaded.ETag),
		)
		s.replacePrevious(ctx, tournamentID, uploaded.Key)
	}

	return result, nil
}

// replacePrevious удаляет прошлый экспорт турнира после успешной загрузки нового.
// Ошибка удаления только логируется: новый файл уже доступен.
func (s *exportService) replacePrevious(ctx context.Context, tournamentID int, key string) {
	s.mu.Lock()
	previous := s.lastKey[tournamentID]
	s.lastKey[tournamentID] = key
	s.mu.Unlock()

	if previous == "" || previous == key {
		return
	}
	if err := s.uploader.Delete(ctx, previous); err != nil {
		s.logger.Warn("failed to delete previous schedule export",
			slog.Int("tournament_id", tournamentID),
			slog.String("key", previous),
			slog.Any("error", err),
		)
	}
}
