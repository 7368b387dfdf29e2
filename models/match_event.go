package models

type MatchEventType string

const (
	EventGoal         MatchEventType = "goal"
	EventYellowCard   MatchEventType = "yellow_card"
	EventRedCard      MatchEventType = "red_card"
	EventSubstitution MatchEventType = "substitution"
	EventOwnGoal      MatchEventType = "own_goal"
	EventPenaltyGoal  MatchEventType = "penalty_goal"
	EventPenaltyMiss  MatchEventType = "penalty_miss"
)

// Valid сообщает, известен ли тип события.
func (t MatchEventType) Valid() bool {
	switch t {
	case EventGoal, EventYellowCard, EventRedCard, EventSubstitution,
		EventOwnGoal, EventPenaltyGoal, EventPenaltyMiss:
		return true
	}
	return false
}

type PlayerRef struct {
	ID           int    `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	JerseyNumber *int   `json:"jerseyNumber,omitempty"`
}

type MatchRef struct {
	ID         int `json:"id"`
	HomeTeamID int `json:"homeTeamId"`
	AwayTeamID int `json:"awayTeamId"`
}

// MatchEvent: событие матча вместе со связанными объектами, если API их вернул.
type MatchEvent struct {
	ID             int            `json:"id"`
	MatchID        int            `json:"matchId"`
	PlayerID       int            `json:"playerId"`
	TeamID         int            `json:"teamId"`
	EventType      MatchEventType `json:"eventType"`
	Minute         int            `json:"minute"`
	ExtraTime      *int           `json:"extraTime,omitempty"`
	Description    string         `json:"description,omitempty"`
	AssistPlayerID *int           `json:"assistPlayerId,omitempty"`
	CreatedAt      string         `json:"createdAt,omitempty"`

	Match        *MatchRef  `json:"match,omitempty"`
	Player       *PlayerRef `json:"player,omitempty"`
	Team         *TeamRef   `json:"team,omitempty"`
	AssistPlayer *PlayerRef `json:"assistPlayer,omitempty"`
}

type CreateMatchEventInput struct {
	MatchID        int            `json:"matchId"`
	PlayerID       int            `json:"playerId"`
	TeamID         int            `json:"teamId"`
	EventType      MatchEventType `json:"eventType"`
	Minute         int            `json:"minute"`
	ExtraTime      *int           `json:"extraTime,omitempty"`
	Description    string         `json:"description,omitempty"`
	AssistPlayerID *int           `json:"assistPlayerId,omitempty"`
}

type UpdateMatchEventInput struct {
	EventType      *MatchEventType `json:"eventType,omitempty"`
	Minute         *int            `json:"minute,omitempty"`
	ExtraTime      *int            `json:"extraTime,omitempty"`
	Description    *string         `json:"description,omitempty"`
	AssistPlayerID *int            `json:"assistPlayerId,omitempty"`
}

// MatchEventFilter сужает GET /matches/{id}/events. Нулевые значения не отправляются.
type MatchEventFilter struct {
	EventType   MatchEventType
	PlayerID    *int
	StartMinute *int
	EndMinute   *int
}
