package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/tournament-scheduler/models"
	"github.com/Dosada05/tournament-scheduler/repositories"
)

// MaxEventMinute учитывает дополнительное время и пенальти.
const MaxEventMinute = 150

type MatchEventService interface {
	ListEvents(ctx context.Context, matchID int, filter models.MatchEventFilter) ([]models.MatchEvent, error)
	ListTeamEvents(ctx context.Context, teamID int) ([]models.MatchEvent, error)
	GetEvent(ctx context.Context, matchID, eventID int) (*models.MatchEvent, error)
	CreateEvent(ctx context.Context, input models.CreateMatchEventInput) (*models.MatchEvent, error)
	UpdateEvent(ctx context.Context, matchID, eventID int, input models.UpdateMatchEventInput) (*models.MatchEvent, error)
	DeleteEvent(ctx context.Context, matchID, eventID int) error
}

type matchEventService struct {
	repo repositories.MatchEventRepository
}

func NewMatchEventService(repo repositories.MatchEventRepository) MatchEventService {
	return &matchEventService{repo: repo}
}

func (s *matchEventService) ListEvents(ctx context.Context, matchID int, filter models.MatchEventFilter) ([]models.MatchEvent, error) {
	if filter.EventType != "" && !filter.EventType.Valid() {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidMatchEvent, filter.EventType)
	}
	if filter.StartMinute != nil && filter.EndMinute != nil && *filter.StartMinute > *filter.EndMinute {
		return nil, fmt.Errorf("%w: startMinute is after endMinute", ErrInvalidMatchEvent)
	}
	return s.repo.List(ctx, matchID, filter)
}

func (s *matchEventService) ListTeamEvents(ctx context.Context, teamID int) ([]models.MatchEvent, error) {
	return s.repo.ListByTeam(ctx, teamID)
}

func (s *matchEventService) GetEvent(ctx context.Context, matchID, eventID int) (*models.MatchEvent, error) {
	return s.repo.GetByID(ctx, matchID, eventID)
}

func (s *matchEventService) CreateEvent(ctx context.Context, input models.CreateMatchEventInput) (*models.MatchEvent, error) {
	if err := validateNewEvent(input); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, input)
}

func (s *matchEventService) UpdateEvent(ctx context.Context, matchID, eventID int, input models.UpdateMatchEventInput) (*models.MatchEvent, error) {
	if input.EventType == nil && input.Minute == nil && input.ExtraTime == nil && input.Description == nil && input.AssistPlayerID == nil {
		return nil, ErrNothingToUpdate
	}
	if input.EventType != nil && !input.EventType.Valid() {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidMatchEvent, *input.EventType)
	}
	if input.Minute != nil {
		if err := validateMinute(*input.Minute); err != nil {
			return nil, err
		}
	}
	if input.ExtraTime != nil && *input.ExtraTime < 0 {
		return nil, fmt.Errorf("%w: extraTime must not be negative", ErrInvalidMatchEvent)
	}
	return s.repo.Update(ctx, matchID, eventID, input)
}

func (s *matchEventService) DeleteEvent(ctx context.Context, matchID, eventID int) error {
	return s.repo.Delete(ctx, matchID, eventID)
}

func validateNewEvent(in models.CreateMatchEventInput) error {
	switch {
	case in.MatchID <= 0:
		return fmt.Errorf("%w: matchId is required", ErrInvalidMatchEvent)
	case in.PlayerID <= 0:
		return fmt.Errorf("%w: playerId is required", ErrInvalidMatchEvent)
	case in.TeamID <= 0:
		return fmt.Errorf("%w: teamId is required", ErrInvalidMatchEvent)
	case !in.EventType.Valid():
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidMatchEvent, in.EventType)
	case in.ExtraTime != nil && *in.ExtraTime < 0:
		return fmt.Errorf("%w: extraTime must not be negative", ErrInvalidMatchEvent)
	case in.AssistPlayerID != nil && *in.AssistPlayerID == in.PlayerID:
		return fmt.Errorf("%w: a player cannot assist themselves", ErrInvalidMatchEvent)
	}
	return validateMinute(in.Minute)
}

func validateMinute(m int) error {
	if m < 0 || m > MaxEventMinute {
		return fmt.Errorf("%w: minute must be between 0 and %d", ErrInvalidMatchEvent, MaxEventMinute)
	}
	return nil
}
