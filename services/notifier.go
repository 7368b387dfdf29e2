package services

import (
	"context"

	"github.com/Dosada05/tournament-scheduler/models"
)

// Notifier получает результат изменяющей операции для пользователя.
// Реализации находятся в пакете notifications.
type Notifier interface {
	Notify(ctx context.Context, tournamentID int, n models.Notification)
}

// ConfigurationListener: необязательное расширение Notifier, получает итоговую
// конфигурацию турнира. После удаления cfg == nil.
type ConfigurationListener interface {
	ConfigurationUpdated(ctx context.Context, tournamentID int, cfg *models.TournamentConfiguration)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, int, models.Notification) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

func success(title, message string) models.Notification {
	return models.Notification{Type: models.NotificationSuccess, Title: title, Message: message}
}

func failure(title, message string) models.Notification {
	return models.Notification{Type: models.NotificationError, Title: title, Message: message}
}
