// Package schedule сводит два формата записей расписания, которые возвращает
// API турниров (fixture и match), к models.CanonicalMatch.
package schedule

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/Dosada05/tournament-scheduler/models"
)

// DetectShape определяет формат записи. Запись в формате match, если у нее есть
// непустой scheduledDate и нет date; все остальное считается fixture.
func DetectShape(raw models.RawScheduleRecord) models.ScheduleShape {
	if raw.ScheduledDate != "" && raw.Date == "" {
		return models.ShapeMatch
	}
	return models.ShapeFixture
}

// MapStatus сводит любой статус API к каноническому словарю.
// Неизвестные и пустые значения становятся scheduled.
func MapStatus(status string) models.MatchStatus {
	switch models.MatchStatus(status) {
	case models.StatusScheduled:
		return models.StatusScheduled
	case models.StatusCompleted:
		return models.StatusCompleted
	case models.StatusCancelled:
		return models.StatusCancelled
	default:
		return models.StatusScheduled
	}
}

// ParseGroupID читает id группы, пришедший числом JSON или строкой.
// Из строки берется ведущее целое ("12", " 7 ", "3abc"). Диапазон у обеих форм
// один: ноль, значения вне int32, null и нечисловой текст дают nil.
func ParseGroupID(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return leadingInt(s)
	}

	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	return groupID(int64(f))
}

func leadingInt(s string) *int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return nil
	}
	n, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		return nil
	}
	return groupID(n)
}

// groupID: 0 означает "группы нет".
func groupID(n int64) *int {
	if n == 0 {
		return nil
	}
	v := int(n)
	return &v
}

// ToCanonicalMatch преобразует запись любого формата. Не падает и не меняет raw;
// повторный вызов на собственном результате возвращает то же значение.
func ToCanonicalMatch(raw models.RawScheduleRecord) models.CanonicalMatch {
	m := models.CanonicalMatch{
		ID:               raw.ID,
		TournamentID:     raw.TournamentID,
		GroupID:          ParseGroupID(raw.GroupID),
		HomeTeamID:       raw.HomeTeamID,
		AwayTeamID:       raw.AwayTeamID,
		Status:           MapStatus(raw.Status),
		SourceStatus:     raw.SourceStatus,
		HomeScore:        raw.HomeScore,
		AwayScore:        raw.AwayScore,
		CreatedAt:        raw.CreatedAt,
		UpdatedAt:        raw.UpdatedAt,
		HomeTeam:         raw.HomeTeam,
		AwayTeam:         raw.AwayTeam,
		Group:            raw.Group,
		Round:            raw.Round,
		MatchNumber:      raw.MatchNumber,
		StartTime:        raw.StartTime,
		EndTime:          raw.EndTime,
		AttendingPlayers: raw.AttendingPlayers,
		Tournament:       raw.Tournament,
	}

	// Подробные статусы API (in_progress_1_half, penalties, ...) сохраняются здесь.
	if m.SourceStatus == "" && raw.Status != "" && raw.Status != string(m.Status) {
		m.SourceStatus = raw.Status
	}

	switch DetectShape(raw) {
	case models.ShapeMatch:
		m.ScheduledDate = raw.ScheduledDate
		m.Venue = firstNonEmpty(raw.Venue, raw.Location)
	default:
		m.ScheduledDate = fixtureDate(raw)
		m.Venue = firstNonEmpty(raw.Location, raw.Venue)
	}

	return m
}

// ToCanonicalMatchList применяет ToCanonicalMatch к каждой записи, порядок сохраняется.
func ToCanonicalMatchList(raws []models.RawScheduleRecord) []models.CanonicalMatch {
	out := make([]models.CanonicalMatch, len(raws))
	for i, raw := range raws {
		out[i] = ToCanonicalMatch(raw)
	}
	return out
}

func fixtureDate(raw models.RawScheduleRecord) string {
	switch {
	case raw.ScheduledDate != "":
		return raw.ScheduledDate
	case raw.Date != "" && raw.Time != "":
		return raw.Date + "T" + raw.Time
	case raw.Date != "":
		return raw.Date
	default:
		return raw.MatchDate
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
