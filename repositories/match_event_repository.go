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

var ErrMatchEventNotFound = errors.New("match event not found")

type MatchEventRepository interface {
	List(ctx context.Context, matchID int, filter models.MatchEventFilter) ([]models.MatchEvent, error)
	ListByTeam(ctx context.Context, teamID int) ([]models.MatchEvent, error)
	GetByID(ctx context.Context, matchID, eventID int) (*models.MatchEvent, error)
	Create(ctx context.Context, input models.CreateMatchEventInput) (*models.MatchEvent, error)
	Update(ctx context.Context, matchID, eventID int, input models.UpdateMatchEventInput) (*models.MatchEvent, error)
	Delete(ctx context.Context, matchID, eventID int) error
}

type remoteMatchEventRepository struct {
	api RemoteAPI
}

func NewRemoteMatchEventRepository(api RemoteAPI) MatchEventRepository {
	return &remoteMatchEventRepository{api: api}
}

func eventFilterQuery(f models.MatchEventFilter) url.Values {
	q := url.Values{}
	if f.EventType != "" {
		q.Set("eventType", string(f.EventType))
	}
	if f.PlayerID != nil {
		q.Set("playerId", strconv.Itoa(*f.PlayerID))
	}
	if f.StartMinute != nil {
		q.Set("startMinute", strconv.Itoa(*f.StartMinute))
	}
	if f.EndMinute != nil {
		q.Set("endMinute", strconv.Itoa(*f.EndMinute))
	}
	return q
}

func (r *remoteMatchEventRepository) List(ctx context.Context, matchID int, filter models.MatchEventFilter) ([]models.MatchEvent, error) {
	payload, err := r.api.Do(ctx, http.MethodGet, matchPath(matchID, "/events"), eventFilterQuery(filter), nil)
	if err != nil {
		return nil, fmt.Errorf("list events of match %d: %w", matchID, err)
	}
	return decodeList[models.MatchEvent](payload)
}

func (r *remoteMatchEventRepository) ListByTeam(ctx context.Context, teamID int) ([]models.MatchEvent, error) {
	query := url.Values{"teamId": {strconv.Itoa(teamID)}}
	payload, err := r.api.Do(ctx, http.MethodGet, "/matches/events", query, nil)
	if err != nil {
		return nil, fmt.Errorf("list events of team %d: %w", teamID, err)
	}
	return decodeList[models.MatchEvent](payload)
}

func (r *remoteMatchEventRepository) GetByID(ctx context.Context, matchID, eventID int) (*models.MatchEvent, error) {
	var ev models.MatchEvent
	err := r.api.Get(ctx, matchPath(matchID, fmt.Sprintf("/events/%d", eventID)), nil, &ev)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, ErrMatchEventNotFound
		}
		return nil, fmt.Errorf("get event %d of match %d: %w", eventID, matchID, err)
	}
	return &ev, nil
}

func (r *remoteMatchEventRepository) Create(ctx context.Context, input models.CreateMatchEventInput) (*models.MatchEvent, error) {
	var ev models.MatchEvent
	if err := r.api.Post(ctx, matchPath(input.MatchID, "/events"), input, &ev); err != nil {
		return nil, fmt.Errorf("create event for match %d: %w", input.MatchID, err)
	}
	return &ev, nil
}

func (r *remoteMatchEventRepository) Update(ctx context.Context, matchID, eventID int, input models.UpdateMatchEventInput) (*models.MatchEvent, error) {
	var ev models.MatchEvent
	err := r.api.Put(ctx, matchPath(matchID, fmt.Sprintf("/events/%d", eventID)), input, &ev)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, ErrMatchEventNotFound
		}
		return nil, fmt.Errorf("update event %d of match %d: %w", eventID, matchID, err)
	}
	return &ev, nil
}

func (r *remoteMatchEventRepository) Delete(ctx context.Context, matchID, eventID int) error {
	err := r.api.Delete(ctx, matchPath(matchID, fmt.Sprintf("/events/%d", eventID)), nil)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return ErrMatchEventNotFound
		}
		return fmt.Errorf("delete event %d of match %d: %w", eventID, matchID, err)
	}
	return nil
}
