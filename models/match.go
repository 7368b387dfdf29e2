package models

import (
	"encoding/json"
	"time"
)

type MatchStatus string

// Канонические статусы. Все, что показывает UI, сводится к одному из них.
const (
	StatusScheduled MatchStatus = "scheduled"
	StatusCompleted MatchStatus = "completed"
	StatusCancelled MatchStatus = "cancelled"
)

// Подробные статусы API (формат match). Сохраняются в SourceStatus.
const (
	StatusNotStarted       MatchStatus = "not_started"
	StatusInProgress       MatchStatus = "in_progress"
	StatusInProgressFirst  MatchStatus = "in_progress_1_half"
	StatusFinishedFirst    MatchStatus = "finished_1_half"
	StatusInProgressSecond MatchStatus = "in_progress_2_half"
	StatusFinishedSecond   MatchStatus = "finished_2_half"
	StatusPenalties        MatchStatus = "penalties"
	StatusFinished         MatchStatus = "finished"
)

// TeamRef: вложенный объект команды, который приходит в некоторых ответах.
type TeamRef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	LogoPath string `json:"logoPath,omitempty"`
}

// CanonicalMatch: единый формат расписания для UI.
// ScheduledDate всегда одна строка с датой и временем.
type CanonicalMatch struct {
	ID               *int             `json:"id,omitempty"`
	TournamentID     int              `json:"tournamentId"`
	GroupID          *int             `json:"groupId,omitempty"`
	HomeTeamID       int              `json:"homeTeamId"`
	AwayTeamID       int              `json:"awayTeamId"`
	ScheduledDate    string           `json:"scheduledDate"`
	Venue            string           `json:"venue,omitempty"`
	Status           MatchStatus      `json:"status"`
	SourceStatus     string           `json:"sourceStatus,omitempty"`
	HomeScore        *int             `json:"homeScore,omitempty"`
	AwayScore        *int             `json:"awayScore,omitempty"`
	CreatedAt        string           `json:"createdAt,omitempty"`
	UpdatedAt        string           `json:"updatedAt,omitempty"`
	HomeTeam         *TeamRef         `json:"homeTeam,omitempty"`
	AwayTeam         *TeamRef         `json:"awayTeam,omitempty"`
	Group            json.RawMessage  `json:"group,omitempty"`
	Round            json.RawMessage  `json:"round,omitempty"`
	MatchNumber      *int             `json:"matchNumber,omitempty"`
	StartTime        string           `json:"startTime,omitempty"`
	EndTime          string           `json:"endTime,omitempty"`
	AttendingPlayers map[string][]int `json:"attendingPlayers,omitempty"`
	Tournament       json.RawMessage  `json:"tournament,omitempty"`
}

// AsRaw представляет канонический матч как сырую запись, например когда
// список повторно проходит через нормализацию.
func (m CanonicalMatch) AsRaw() RawScheduleRecord {
	raw := RawScheduleRecord{
		ID:               m.ID,
		TournamentID:     m.TournamentID,
		HomeTeamID:       m.HomeTeamID,
		AwayTeamID:       m.AwayTeamID,
		ScheduledDate:    m.ScheduledDate,
		Venue:            m.Venue,
		Status:           string(m.Status),
		SourceStatus:     m.SourceStatus,
		HomeScore:        m.HomeScore,
		AwayScore:        m.AwayScore,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		HomeTeam:         m.HomeTeam,
		AwayTeam:         m.AwayTeam,
		Group:            m.Group,
		Round:            m.Round,
		MatchNumber:      m.MatchNumber,
		StartTime:        m.StartTime,
		EndTime:          m.EndTime,
		AttendingPlayers: m.AttendingPlayers,
		Tournament:       m.Tournament,
	}
	if m.GroupID != nil {
		raw.GroupID, _ = json.Marshal(*m.GroupID)
	}
	return raw
}

// CreateMatchRequest: тело POST /matches.
type CreateMatchRequest struct {
	TournamentID int       `json:"tournamentId"`
	GroupID      *int      `json:"groupId,omitempty"`
	HomeTeamID   int       `json:"homeTeamId"`
	AwayTeamID   int       `json:"awayTeamId"`
	MatchDate    time.Time `json:"matchDate"`
	Location     string    `json:"location,omitempty"`
	Round        string    `json:"round,omitempty"`
	MatchNumber  int       `json:"matchNumber"`
}

// MatchUpdate: частичное обновление матча (PUT /matches/{id}).
type MatchUpdate struct {
	GroupID          *int             `json:"groupId,omitempty"`
	HomeTeamID       *int             `json:"homeTeamId,omitempty"`
	AwayTeamID       *int             `json:"awayTeamId,omitempty"`
	MatchDate        *time.Time       `json:"matchDate,omitempty"`
	Location         *string          `json:"location,omitempty"`
	Status           *MatchStatus     `json:"status,omitempty"`
	HomeScore        *int             `json:"homeScore,omitempty"`
	AwayScore        *int             `json:"awayScore,omitempty"`
	Round            *string          `json:"round,omitempty"`
	StartTime        *string          `json:"startTime,omitempty"`
	EndTime          *string          `json:"endTime,omitempty"`
	AttendingPlayers map[string][]int `json:"attendingPlayers,omitempty"`
}

// IsEmpty сообщает, что ни одно поле не передано.
func (u MatchUpdate) IsEmpty() bool {
	return u.GroupID == nil && u.HomeTeamID == nil && u.AwayTeamID == nil && u.MatchDate == nil &&
		u.Location == nil && u.Status == nil && u.HomeScore == nil && u.AwayScore == nil &&
		u.Round == nil && u.StartTime == nil && u.EndTime == nil && u.AttendingPlayers == nil
}
