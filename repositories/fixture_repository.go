package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/tournament-scheduler/models"
)

var ErrInvalidFixtureResponse = errors.New("Respuesta inválida del servidor: no se encontraron fixtures")

// FixtureRepository работает с fixture-эндпоинтами API. Генерация выполняется
// на стороне API, сюда приходят только готовые записи.
type FixtureRepository interface {
	Generate(ctx context.Context, req models.FixtureGenerationRequest) ([]models.RawScheduleRecord, error)
	Save(ctx context.Context, cfg models.FixtureConfiguration) ([]models.RawScheduleRecord, error)
	Delete(ctx context.Context, tournamentID int) error
}

type remoteFixtureRepository struct {
	api RemoteAPI
}

func NewRemoteFixtureRepository(api RemoteAPI) FixtureRepository {
	return &remoteFixtureRepository{api: api}
}

func (r *remoteFixtureRepository) Generate(ctx context.Context, req models.FixtureGenerationRequest) ([]models.RawScheduleRecord, error) {
	payload, err := r.api.Do(ctx, http.MethodPost, tournamentPath(req.TournamentID, "/matches/fixtures"), nil, req)
	if err != nil {
		return nil, fmt.Errorf("generate fixtures for tournament %d: %w", req.TournamentID, err)
	}
	return decodeFixtures(payload)
}

func (r *remoteFixtureRepository) Save(ctx context.Context, cfg models.FixtureConfiguration) ([]models.RawScheduleRecord, error) {
	payload, err := r.api.Do(ctx, http.MethodPost, tournamentPath(cfg.TournamentID, "/matches/fixtures"), nil, cfg)
	if err != nil {
		return nil, fmt.Errorf("save fixtures for tournament %d: %w", cfg.TournamentID, err)
	}
	return decodeFixtures(payload)
}

func (r *remoteFixtureRepository) Delete(ctx context.Context, tournamentID int) error {
	if err := r.api.Delete(ctx, tournamentPath(tournamentID, "/matches/fixtures"), nil); err != nil {
		return fmt.Errorf("delete fixtures for tournament %d: %w", tournamentID, err)
	}
	return nil
}

// decodeFixtures требует, чтобы ответ был списком записей.
func decodeFixtures(payload json.RawMessage) ([]models.RawScheduleRecord, error) {
	if !isJSONArray(payload) {
		return nil, ErrInvalidFixtureResponse
	}
	var records []models.RawScheduleRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixtureResponse, err)
	}
	return records, nil
}
