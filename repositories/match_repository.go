package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Dosada05/tournament-scheduler/apiclient"
	"github.com/Dosada05/tournament-scheduler/models"
)

var ErrMatchNotFound = errors.New("match not found")

// MatchRepository возвращает сырые записи расписания; нормализует вызывающий код.
type MatchRepository interface {
	Create(ctx context.Context, req models.CreateMatchRequest) (*models.RawScheduleRecord, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.RawScheduleRecord, error)
	GetByID(ctx context.Context, matchID int) (*models.RawScheduleRecord, error)
	Update(ctx context.Context, matchID int, update models.MatchUpdate) (*models.RawScheduleRecord, error)
	Delete(ctx context.Context, matchID int) error
}

type remoteMatchRepository struct {
	api RemoteAPI
}

func NewRemoteMatchRepository(api RemoteAPI) MatchRepository {
	return &remoteMatchRepository{api: api}
}

func (r *remoteMatchRepository) Create(ctx context.Context, req models.CreateMatchRequest) (*models.RawScheduleRecord, error) {
	var rec models.RawScheduleRecord
	if err := r.api.Post(ctx, "/matches", req, &rec); err != nil {
		return nil, fmt.Errorf("create match %d vs %d: %w", req.HomeTeamID, req.AwayTeamID, err)
	}
	return &rec, nil
}

// ListByTournament считает 404 отсутствием матчей.
func (r *remoteMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.RawScheduleRecord, error) {
	query := url.Values{"tournamentId": {strconv.Itoa(tournamentID)}}
	payload, err := r.api.Do(ctx, http.MethodGet, "/matches", query, nil)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return []models.RawScheduleRecord{}, nil
		}
		return nil, fmt.Errorf("list matches for tournament %d: %w", tournamentID, err)
	}
	return decodeList[models.RawScheduleRecord](payload)
}

func (r *remoteMatchRepository) GetByID(ctx context.Context, matchID int) (*models.RawScheduleRecord, error) {
	var rec models.RawScheduleRecord
	err := r.api.Get(ctx, matchPath(matchID, ""), nil, &rec)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("get match %d: %w", matchID, err)
	}
	return &rec, nil
}

func (r *remoteMatchRepository) Update(ctx context.Context, matchID int, update models.MatchUpdate) (*models.RawScheduleRecord, error) {
	var rec models.RawScheduleRecord
	err := r.api.Put(ctx, matchPath(matchID, ""), update, &rec)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("update match %d: %w", matchID, err)
	}
	return &rec, nil
}

func (r *remoteMatchRepository) Delete(ctx context.Context, matchID int) error {
	err := r.api.Delete(ctx, matchPath(matchID, ""), nil)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("delete match %d: %w", matchID, err)
	}
	return nil
}
