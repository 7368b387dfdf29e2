// Package notifications доставляет результаты операций в UI.
package notifications

import (
	"context"
	"log/slog"

	"github.com/Dosada05/tournament-scheduler/brackets"
	"github.com/Dosada05/tournament-scheduler/models"
	"github.com/Dosada05/tournament-scheduler/services"
)

// Broadcaster: часть brackets.Hub, нужная уведомителям.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message any) (int, error)
}

// HubNotifier отправляет уведомления и обновления расписания в websocket-комнату турнира.
type HubNotifier struct {
	hub    Broadcaster
	logger *slog.Logger
}

func NewHubNotifier(hub Broadcaster, logger *slog.Logger) *HubNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &HubNotifier{hub: hub, logger: logger}
}

func (h *HubNotifier) Notify(_ context.Context, tournamentID int, n models.Notification) {
	h.send(tournamentID, brackets.MessageNotification, n)
}

func (h *HubNotifier) ScheduleUpdated(_ context.Context, tournamentID int, matches []models.CanonicalMatch) {
	h.send(tournamentID, brackets.MessageScheduleUpdated, matches)
}

// ConfigurationUpdated отправляет новую конфигурацию или null после удаления.
func (h *HubNotifier) ConfigurationUpdated(_ context.Context, tournamentID int, cfg *models.TournamentConfiguration) {
	h.send(tournamentID, brackets.MessageConfigUpdated, cfg)
}

func (h *HubNotifier) send(tournamentID int, msgType string, payload any) {
	room := brackets.TournamentRoom(tournamentID)
	msg := brackets.WebSocketMessage{Type: msgType, Payload: payload, RoomID: room}
	if _, err := h.hub.BroadcastToRoom(room, msg); err != nil {
		h.logger.Warn("broadcast failed",
			slog.Int("tournament_id", tournamentID),
			slog.String("type", msgType),
			slog.Any("error", err),
		)
	}
}

// LogNotifier пишет уведомления в лог.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(ctx context.Context, tournamentID int, n models.Notification) {
	level := slog.LevelInfo
	if n.Type == models.NotificationError {
		level = slog.LevelWarn
	}
	l.logger.Log(ctx, level, "notification",
		slog.Int("tournament_id", tournamentID),
		slog.String("type", string(n.Type)),
		slog.String("title", n.Title),
		slog.String("message", n.Message),
	)
}

// Multi рассылает уведомление всем уведомителям по порядку.
type Multi []services.Notifier

func (m Multi) Notify(ctx context.Context, tournamentID int, n models.Notification) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(ctx, tournamentID, n)
		}
	}
}

// ConfigurationUpdated передает изменение тем участникам, которые его слушают.
func (m Multi) ConfigurationUpdated(ctx context.Context, tournamentID int, cfg *models.TournamentConfiguration) {
	for _, notifier := range m {
		if l, ok := notifier.(services.ConfigurationListener); ok {
			l.ConfigurationUpdated(ctx, tournamentID, cfg)
		}
	}
}

// Func превращает обычную функцию в services.Notifier.
type Func func(ctx context.Context, tournamentID int, n models.Notification)

func (f Func) Notify(ctx context.Context, tournamentID int, n models.Notification) {
	f(ctx, tournamentID, n)
}

var (
	_ services.Notifier              = (*HubNotifier)(nil)
	_ services.ScheduleListener      = (*HubNotifier)(nil)
	_ services.ConfigurationListener = (*HubNotifier)(nil)
	_ services.Notifier              = (*LogNotifier)(nil)
	_ services.Notifier              = Multi(nil)
	_ services.ConfigurationListener = Multi(nil)
	_ services.Notifier              = Func(nil)
)
