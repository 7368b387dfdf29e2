package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// ScheduleShape: какой контракт API у сырой записи.
type ScheduleShape string

const (
	// ShapeFixture: отдельные date/time, location, статусы scheduled/completed/cancelled.
	ShapeFixture ScheduleShape = "fixture"
	// ShapeMatch: единый scheduledDate, venue, расширенный словарь статусов.
	ShapeMatch ScheduleShape = "match"
)

// RawScheduleRecord объединяет записи формата fixture и match, которые может
// вернуть API. Пустая строка означает, что поля не было.
type RawScheduleRecord struct {
	ID           *int            `json:"id,omitempty"`
	TournamentID int             `json:"tournamentId"`
	GroupID      json.RawMessage `json:"groupId,omitempty"`
	HomeTeamID   int             `json:"homeTeamId"`
	AwayTeamID   int             `json:"awayTeamId"`

	// fixture-like
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	Location string `json:"location,omitempty"`

	// match-like
	ScheduledDate string `json:"scheduledDate,omitempty"`
	MatchDate     string `json:"matchDate,omitempty"`
	Venue         string `json:"venue,omitempty"`

	Status       string `json:"status,omitempty"`
	SourceStatus string `json:"sourceStatus,omitempty"`

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

// UnmarshalJSON разбирает запись по полям. Поле неверного типа отбрасывается,
// запись целиком не падает; целые поля принимают и числовые строки ("3").
// Ошибка только если это не JSON-объект.
func (r *RawScheduleRecord) UnmarshalJSON(data []byte) error {
	type plain RawScheduleRecord

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var rec plain
	if err := json.Unmarshal(data, &rec); err == nil {
		*r = RawScheduleRecord(rec)
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	rec = plain{}
	for key, value := range fields {
		for _, candidate := range [][]byte{value, numericString(value)} {
			if candidate == nil {
				continue
			}
			one, err := json.Marshal(map[string]json.RawMessage{key: candidate})
			if err != nil {
				continue
			}
			next := rec
			if err := json.Unmarshal(one, &next); err == nil {
				rec = next
				break
			}
		}
	}
	*r = RawScheduleRecord(rec)
	return nil
}

// numericString возвращает число из строки вида "3" или nil.
func numericString(value json.RawMessage) json.RawMessage {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil
	}
	if _, err := strconv.Atoi(s); err != nil {
		return nil
	}
	return json.RawMessage(s)
}

// ScheduleSnapshot: сохранённая копия нормализованного расписания.
type ScheduleSnapshot struct {
	ID           int              `json:"id" db:"id"`
	TournamentID int              `json:"tournamentId" db:"tournament_id"`
	MatchCount   int              `json:"matchCount" db:"match_count"`
	Matches      []CanonicalMatch `json:"matches,omitempty" db:"matches"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`
}
