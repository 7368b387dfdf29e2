package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-scheduler/apiclient"
	"github.com/Dosada05/tournament-scheduler/models"
)

var ErrConfigurationNotFound = errors.New("Configuración de torneo no encontrada")

// ConfigurationRepository хранит конфигурации групп в API турниров.
type ConfigurationRepository interface {
	Get(ctx context.Context, tournamentID int) (*models.TournamentConfiguration, error)
	Create(ctx context.Context, tournamentID int, input models.ConfigurationInput) (*models.TournamentConfiguration, error)
	Update(ctx context.Context, tournamentID int, update models.ConfigurationUpdate) (*models.TournamentConfiguration, error)
	Delete(ctx context.Context, tournamentID int) error
}

type remoteConfigurationRepository struct {
	api RemoteAPI
}

func NewRemoteConfigurationRepository(api RemoteAPI) ConfigurationRepository {
	return &remoteConfigurationRepository{api: api}
}

func (r *remoteConfigurationRepository) Get(ctx context.Context, tournamentID int) (*models.TournamentConfiguration, error) {
	var cfg models.TournamentConfiguration
	err := r.api.Get(ctx, tournamentPath(tournamentID, "/configuration"), nil, &cfg)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, ErrConfigurationNotFound
		}
		return nil, fmt.Errorf("get configuration for tournament %d: %w", tournamentID, err)
	}
	return &cfg, nil
}

func (r *remoteConfigurationRepository) Create(ctx context.Context, tournamentID int, input models.ConfigurationInput) (*models.TournamentConfiguration, error) {
	var cfg models.TournamentConfiguration
	if err := r.api.Post(ctx, tournamentPath(tournamentID, "/configuration"), input, &cfg); err != nil {
		return nil, fmt.Errorf("create configuration for tournament %d: %w", tournamentID, err)
	}
	return &cfg, nil
}

func (r *remoteConfigurationRepository) Update(ctx context.Context, tournamentID int, update models.ConfigurationUpdate) (*models.TournamentConfiguration, error) {
	var cfg models.TournamentConfiguration
	err := r.api.Put(ctx, tournamentPath(tournamentID, "/configuration"), update, &cfg)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, ErrConfigurationNotFound
		}
		return nil, fmt.Errorf("update configuration for tournament %d: %w", tournamentID, err)
	}
	return &cfg, nil
}

func (r *remoteConfigurationRepository) Delete(ctx context.Context, tournamentID int) error {
	err := r.api.Delete(ctx, tournamentPath(tournamentID, "/configuration"), nil)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return ErrConfigurationNotFound
		}
		return fmt.Errorf("delete configuration for tournament %d: %w", tournamentID, err)
	}
	return nil
}
