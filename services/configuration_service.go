package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/tournament-scheduler/brackets"
	"github.com/Dosada05/tournament-scheduler/models"
	"github.com/Dosada05/tournament-scheduler/repositories"
)

type ConfigurationService interface {
	LoadConfiguration(ctx context.Context, tournamentID int) (*models.TournamentConfiguration, error)
	HasConfiguration(ctx context.Context, tournamentID int) bool
	// При totalTeams == nil проверяются только правила, не зависящие от числа команд.
	CreateConfiguration(ctx context.Context, tournamentID int, input models.ConfigurationInput, totalTeams *int) (*models.TournamentConfiguration, error)
	UpdateConfiguration(ctx context.Context, tournamentID int, update models.ConfigurationUpdate, totalTeams *int) (*models.TournamentConfiguration, error)
	DeleteConfiguration(ctx context.Context, tournamentID int) error
	ValidateConfiguration(input models.ConfigurationInput, totalTeams int) []string
	GenerateAssignments(teamIDs []int, numberOfGroups int, shuffle bool) ([]models.TeamAssignment, error)
}

type configurationService struct {
	repo     repositories.ConfigurationRepository
	notifier Notifier
	guard    *TournamentGuard
	logger   *slog.Logger
}

func NewConfigurationService(
	repo repositories.ConfigurationRepository,
	notifier Notifier,
	guard *TournamentGuard,
	logger *slog.Logger,
) ConfigurationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &configurationService{
		repo:     repo,
		notifier: notifierOrNop(notifier),
		guard:    guardOrNew(guard),
		logger:   logger,
	}
}

func (s *configurationService) LoadConfiguration(ctx context.Context, tournamentID int) (*models.TournamentConfiguration, error) {
	cfg, err := s.repo.Get(ctx, tournamentID)
	if err != nil {
		if !errors.Is(err, repositories.ErrConfigurationNotFound) {
			s.logger.Error("load configuration failed", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		}
		return nil, err
	}
	return cfg, nil
}

func (s *configurationService) HasConfiguration(ctx context.Context, tournamentID int) bool {
	_, err := s.repo.Get(ctx, tournamentID)
	return err == nil
}

func (s *configurationService) ValidateConfiguration(input models.ConfigurationInput, totalTeams int) []string {
	return brackets.ValidateConfiguration(input, totalTeams)
}

func (s *configurationService) GenerateAssignments(teamIDs []int, numberOfGroups int, shuffle bool) ([]models.TeamAssignment, error) {
	if numberOfGroups < 1 || numberOfGroups > brackets.MaxGroups {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGroupCount, numberOfGroups)
	}
	if shuffle {
		return brackets.GenerateShuffledAssignments(teamIDs, numberOfGroups)
	}
	return brackets.GenerateSequentialAssignments(teamIDs, numberOfGroups)
}

// validate собирает нарушения правил и структурные ошибки назначений.
// Правила, которым нужно число команд, проверяются только если оно известно.
func (s *configurationService) validate(input models.ConfigurationInput, totalTeams *int) error {
	var problems []string
	if totalTeams != nil {
		problems = append(problems, brackets.ValidateConfiguration(input, *totalTeams)...)
	} else {
		problems = append(problems, brackets.ValidateGroupShape(input)...)
	}
	if len(input.TeamAssignments) > 0 {
		problems = append(problems, brackets.ValidateAssignments(input.TeamAssignments, input.NumberOfGroups)...)
	}
	return newValidationError(problems)
}

func (s *configurationService) CreateConfiguration(ctx context.Context, tournamentID int, input models.ConfigurationInput, totalTeams *int) (*models.TournamentConfiguration, error) {
	release, err := s.guard.Acquire(tournamentID, "create configuration")
	if err != nil {
		return nil, err
	}
	defer release()

	cfg, err := s.create(ctx, tournamentID, input, totalTeams)
	if err != nil {
		s.notifier.Notify(ctx, tournamentID, failure("Error de Configuración", userMessage(err, "Error al crear configuración")))
		return nil, err
	}

	s.notifier.Notify(ctx, tournamentID, success("Configuración Creada", "La configuración del torneo se creó exitosamente"))
	s.configurationChanged(ctx, tournamentID, cfg)
	return cfg, nil
}

func (s *configurationService) create(ctx context.Context, tournamentID int, input models.ConfigurationInput, totalTeams *int) (*models.TournamentConfiguration, error) {
	if err := s.validate(input, totalTeams); err != nil {
		return nil, err
	}
	cfg, err := s.repo.Create(ctx, tournamentID, input)
	if err != nil {
		s.logger.Error("create configuration failed", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return nil, err
	}
	s.logger.Info("configuration created",
		slog.Int("tournament_id", tournamentID),
		slog.Int("groups", input.NumberOfGroups),
		slog.Int("assignments", len(input.TeamAssignments)),
	)
	return cfg, nil
}

func (s *configurationService) UpdateConfiguration(ctx context.Context, tournamentID int, update models.ConfigurationUpdate, totalTeams *int) (*models.TournamentConfiguration, error) {
	release, err := s.guard.Acquire(tournamentID, "update configuration")
	if err != nil {
		return nil, err
	}
	defer release()

	cfg, err := s.update(ctx, tournamentID, update, totalTeams)
	if err != nil {
		s.notifier.Notify(ctx, tournamentID, failure("Error de Actualización", userMessage(err, "Error al actualizar configuración")))
		return nil, err
	}

	s.notifier.Notify(ctx, tournamentID, success("Configuración Actualizada", "La configuración del torneo se actualizó exitosamente"))
	s.configurationChanged(ctx, tournamentID, cfg)
	return cfg, nil
}

func (s *configurationService) update(ctx context.Context, tournamentID int, update models.ConfigurationUpdate, totalTeams *int) (*models.TournamentConfiguration, error) {
	if update.NumberOfGroups == nil && update.TeamsPerGroup == nil && update.IsConfigured == nil && update.TeamAssignments == nil {
		return nil, ErrNothingToUpdate
	}

	// Обновление проверяется как целая конфигурация: текущая + изменения.
	// Только флаг isConfigured можно менять без проверки.
	if update.NumberOfGroups != nil || update.TeamsPerGroup != nil || update.TeamAssignments != nil || totalTeams != nil {
		current, err := s.repo.Get(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		if err := s.validate(update.Merge(current), totalTeams); err != nil {
			return nil, err
		}
	}

	cfg, err := s.repo.Update(ctx, tournamentID, update)
	if err != nil {
		s.logger.Error("update configuration failed", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return nil, err
	}
	s.logger.Info("configuration updated", slog.Int("tournament_id", tournamentID))
	return cfg, nil
}

func (s *configurationService) DeleteConfiguration(ctx context.Context, tournamentID int) error {
	release, err := s.guard.Acquire(tournamentID, "delete configuration")
	if err != nil {
		return err
	}
	defer release()

	if err := s.repo.Delete(ctx, tournamentID); err != nil {
		s.logger.Error("delete configuration failed", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		s.notifier.Notify(ctx, tournamentID, failure("Error de Eliminación", userMessage(err, "Error al eliminar configuración")))
		return err
	}

	s.logger.Info("configuration deleted", slog.Int("tournament_id", tournamentID))
	s.notifier.Notify(ctx, tournamentID, success("Configuración Eliminada", "La configuración del torneo se eliminó exitosamente"))
	s.configurationChanged(ctx, tournamentID, nil)
	return nil
}

func (s *configurationService) configurationChanged(ctx context.Context, tournamentID int, cfg *models.TournamentConfiguration) {
	if l, ok := s.notifier.(ConfigurationListener); ok {
		l.ConfigurationUpdated(ctx, tournamentID, cfg)
	}
}
