package schedule

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/tournament-scheduler/models"
)

var (
	ErrInvalidScheduledDate = errors.New("scheduled date is not a recognised timestamp")
	ErrUnrecognisedPayload  = errors.New("payload is neither a record list nor an envelope")
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
}

// ParseScheduledDate разбирает общую метку времени канонического матча.
// Время без зоны читается как UTC.
func ParseScheduledDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidScheduledDate, s)
}

// ToCreateMatchRequest готовит канонический матч для POST /matches.
func ToCreateMatchRequest(m models.CanonicalMatch, matchNumber int) (models.CreateMatchRequest, error) {
	when, err := ParseScheduledDate(m.ScheduledDate)
	if err != nil {
		return models.CreateMatchRequest{}, err
	}
	return models.CreateMatchRequest{
		TournamentID: m.TournamentID,
		GroupID:      m.GroupID,
		HomeTeamID:   m.HomeTeamID,
		AwayTeamID:   m.AwayTeamID,
		MatchDate:    when,
		Location:     m.Venue,
		Round:        RoundName(m.Round),
		MatchNumber:  matchNumber,
	}, nil
}

// ToFixtureEntry раскладывает канонический матч обратно в fixture-формат.
func ToFixtureEntry(m models.CanonicalMatch) models.FixtureEntry {
	date, clock := splitScheduledDate(m.ScheduledDate)
	entry := models.FixtureEntry{
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		Date:       date,
		Time:       clock,
		Location:   m.Venue,
		Round:      RoundName(m.Round),
		Group:      GroupName(m.Group),
		Status:     m.Status,
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
	}
	if m.GroupID != nil {
		entry.GroupID = strconv.Itoa(*m.GroupID)
	}
	return entry
}

// splitScheduledDate: обратная операция к date + "T" + time.
func splitScheduledDate(s string) (string, string) {
	date, clock, found := strings.Cut(s, "T")
	if !found {
		return s, ""
	}
	return date, clock
}

// RoundName достает название тура из сквозного поля round: это строка
// или объект с полем name.
func RoundName(raw json.RawMessage) string {
	return nameOf(raw, "name", "roundName")
}

// GroupName достает обозначение группы из сквозного поля group.
func GroupName(raw json.RawMessage) string {
	return nameOf(raw, "groupName", "name")
}

func nameOf(raw json.RawMessage, keys ...string) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	for _, k := range keys {
		if v, ok := obj[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// DecodeRecords декодирует массив записей или конверт {success, data, message}
// с таким массивом в data. Записи разбираются по одной: поля неверного типа
// отбрасываются, а элемент, который не является объектом, дает ошибку с его индексом.
func DecodeRecords(data []byte) ([]models.RawScheduleRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrUnrecognisedPayload
	}

	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		records := make([]models.RawScheduleRecord, len(items))
		for i, item := range items {
			if err := json.Unmarshal(item, &records[i]); err != nil {
				return nil, fmt.Errorf("decode record %d: %w", i, err)
			}
		}
		return records, nil
	case '{':
		var envelope struct {
			Success *bool           `json:"success"`
			Message string          `json:"message"`
			Data    json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("decode envelope: %w", err)
		}
		if envelope.Success != nil && !*envelope.Success {
			return nil, fmt.Errorf("%w: %s", ErrUnrecognisedPayload, envelope.Message)
		}
		inner := bytes.TrimSpace(envelope.Data)
		if len(inner) == 0 || inner[0] != '[' {
			return nil, ErrUnrecognisedPayload
		}
		return DecodeRecords(inner)
	default:
		return nil, ErrUnrecognisedPayload
	}
}
