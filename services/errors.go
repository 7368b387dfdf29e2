package services

import (
	"errors"
	"strings"

	"github.com/Dosada05/tournament-scheduler/apiclient"
	"github.com/Dosada05/tournament-scheduler/repositories"
)

// Общие ошибки, используемые в сервисах и маппинге HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	ErrValidationFailed    = errors.New("validation failed")
	ErrInvalidGroupCount   = errors.New("number of groups must be between 1 and 8")
	ErrInvalidMatchEvent   = errors.New("invalid match event")
	ErrNothingToUpdate     = errors.New("no fields to update")
	ErrInvalidFixtureType  = errors.New("invalid fixture type")
	ErrOperationInProgress = errors.New("another operation is already running for this tournament")

	ErrArchiveDisabled = errors.New("schedule archive is not configured")

	// Пробрасываются из репозиториев, чтобы хендлерам хватало одного пакета.
	ErrConfigurationNotFound  = repositories.ErrConfigurationNotFound
	ErrMatchNotFound          = repositories.ErrMatchNotFound
	ErrMatchEventNotFound     = repositories.ErrMatchEventNotFound
	ErrSnapshotNotFound       = repositories.ErrSnapshotNotFound
	ErrInvalidFixtureResponse = repositories.ErrInvalidFixtureResponse
)

// ValidationError содержит все нарушенные правила конфигурации.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return ErrValidationFailed.Error() + ": " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

func newValidationError(messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: messages}
}

// userMessage выбирает текст для пользователя при ошибке: сообщение
// самого API, если оно есть.
func userMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return strings.Join(vErr.Messages, "\n")
	}
	for _, sentinel := range []error{ErrConfigurationNotFound, ErrOperationInProgress, ErrMatchNotFound} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return fallback
}
