package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Dosada05/tournament-scheduler/models"
	"github.com/Dosada05/tournament-scheduler/repositories"
	"github.com/Dosada05/tournament-scheduler/schedule"
	"github.com/Dosada05/tournament-scheduler/services"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
	exportService   services.ExportService
}

func NewScheduleHandler(ss services.ScheduleService, es services.ExportService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: ss, exportService: es}
}

// Записи расписания в любом из двух форматов; разбираются schedule.DecodeRecords.
type createMatchesRequest struct {
	Matches json.RawMessage `json:"matches"`
}

type saveFixturesRequest struct {
	FixtureType models.FixtureType `json:"fixtureType"`
	StartDate   string             `json:"startDate"`
	Location    string             `json:"location,omitempty"`
	Fixtures    json.RawMessage    `json:"fixtures"`
}

type generateFixturesRequest struct {
	FixtureType models.FixtureType `json:"fixtureType"`
	StartDate   string             `json:"startDate"`
	Location    string             `json:"location,omitempty"`
}

// decodeCanonical нормализует список записей, присланный UI.
func decodeCanonical(raw json.RawMessage, tournamentID int) ([]models.CanonicalMatch, error) {
	if len(raw) == 0 {
		return nil, errors.New("schedule records are required")
	}
	records, err := schedule.DecodeRecords(raw)
	if err != nil {
		return nil, err
	}
	matches := schedule.ToCanonicalMatchList(records)
	for i := range matches {
		if matches[i].TournamentID == 0 {
			matches[i].TournamentID = tournamentID
		}
	}
	return matches, nil
}

// GetTournamentMatches godoc
// @Summary Расписание турнира
// @Tags schedule
// @Description Возвращает матчи турнира в едином нормализованном формате.
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "matches"
// @Failure 502 {object} map[string]string "Ошибка удалённого API"
// @Router /tournaments/{tournamentID}/matches [get]
func (h *ScheduleHandler) GetTournamentMatches(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.scheduleService.LoadTournamentMatches(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateTournamentMatches godoc
// @Summary Создать матчи пакетом
// @Tags schedule
// @Description Матчи создаются по одному; на первой ошибке создание останавливается.
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param body body createMatchesRequest true "Записи расписания"
// @Success 201 {object} map[string]interface{} "matches"
// @Failure 400 {object} map[string]string "Некорректные данные"
// @Failure 409 {object} map[string]string "Для турнира уже выполняется операция"
// @Router /tournaments/{tournamentID}/matches [post]
func (h *ScheduleHandler) CreateTournamentMatches(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input createMatchesRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matches, err := decodeCanonical(input.Matches, tournamentID)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	reqs := make([]models.CreateMatchRequest, 0, len(matches))
	for i, m := range matches {
		number := i + 1
		if m.MatchNumber != nil {
			number = *m.MatchNumber
		}
		req, err := schedule.ToCreateMatchRequest(m, number)
		if err != nil {
			badRequestResponse(w, r, fmt.Errorf("match %d: %w", i+1, err))
			return
		}
		reqs = append(reqs, req)
	}

	created, err := h.scheduleService.CreateMultipleMatches(r.Context(), tournamentID, reqs)
	if err != nil {
		if len(created) > 0 {
			slog.Default().WarnContext(r.Context(), "batch create stopped early",
				slog.Int("tournament_id", tournamentID),
				slog.Int("created", len(created)),
				slog.Int("requested", len(reqs)),
			)
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": created}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteTournamentMatches godoc
// @Summary Удалить все матчи турнира
// @Tags schedule
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "deleted"
// @Failure 409 {object} map[string]string "Для турнира уже выполняется операция"
// @Router /tournaments/{tournamentID}/matches [delete]
func (h *ScheduleHandler) DeleteTournamentMatches(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	deleted, err := h.scheduleService.DeleteTournamentMatches(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"deleted": deleted}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetOverview godoc
// @Summary Конфигурация и расписание турнира
// @Tags schedule
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} models.TournamentOverview
// @Router /tournaments/{tournamentID}/overview [get]
func (h *ScheduleHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	overview, err := h.scheduleService.GetOverview(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, overview, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SaveFixtures godoc
// @Summary Сохранить расписание (fixtures)
// @Tags fixtures
// @Description Принимает записи в любом формате, приводит их к fixture-формату и сохраняет. Сохранённое расписание архивируется и рассылается подписчикам.
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param body body saveFixturesRequest true "Тип, дата начала и записи"
// @Success 201 {object} map[string]interface{} "matches"
// @Failure 400 {object} map[string]string "Некорректные данные"
// @Failure 409 {object} map[string]string "Для турнира уже выполняется операция"
// @Failure 502 {object} map[string]string "Некорректный ответ удалённого API"
// @Router /tournaments/{tournamentID}/fixtures [post]
func (h *ScheduleHandler) SaveFixtures(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input saveFixturesRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matches, err := decodeCanonical(input.Fixtures, tournamentID)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	cfg := models.FixtureConfiguration{
		TournamentID: tournamentID,
		FixtureType:  input.FixtureType,
		StartDate:    input.StartDate,
		Location:     input.Location,
		Fixtures:     make([]models.FixtureEntry, 0, len(matches)),
	}
	for _, m := range matches {
		cfg.Fixtures = append(cfg.Fixtures, schedule.ToFixtureEntry(m))
	}

	saved, err := h.scheduleService.SaveFixtures(r.Context(), cfg)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": saved}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateFixtures godoc
// @Summary Сгенерировать расписание
// @Tags fixtures
// @Description Генерация выполняется удалённым API; ответ нормализуется.
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param body body generateFixturesRequest true "Тип и дата начала"
// @Success 201 {object} map[string]interface{} "matches"
// @Failure 400 {object} map[string]string "Некорректные данные"
// @Failure 409 {object} map[string]string "Для турнира уже выполняется операция"
// @Router /tournaments/{tournamentID}/fixtures/generate [post]
func (h *ScheduleHandler) GenerateFixtures(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input generateFixturesRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.scheduleService.GenerateFixtures(r.Context(), models.FixtureGenerationRequest{
		TournamentID: tournamentID,
		FixtureType:  input.FixtureType,
		StartDate:    input.StartDate,
		Location:     input.Location,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteFixtures godoc
// @Summary Удалить расписание турнира
// @Tags fixtures
// @Param tournamentID path int true "Tournament ID"
// @Success 204 "Удалено"
// @Failure 409 {object} map[string]string "Для турнира уже выполняется операция"
// @Router /tournaments/{tournamentID}/fixtures [delete]
func (h *ScheduleHandler) DeleteFixtures(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.scheduleService.DeleteFixtures(r.Context(), tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSnapshots godoc
// @Summary Архив сохранённых расписаний
// @Tags schedule
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param limit query int false "Сколько снимков вернуть (по умолчанию 20)"
// @Success 200 {object} map[string]interface{} "snapshots"
// @Failure 503 {object} map[string]string "Архив не настроен"
// @Router /tournaments/{tournamentID}/schedule/snapshots [get]
func (h *ScheduleHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	limit := repositories.DefaultSnapshotLimit
	if v, err := queryInt(r, "limit"); err != nil {
		badRequestResponse(w, r, err)
		return
	} else if v != nil && *v > 0 {
		limit = *v
	}

	snapshots, err := h.scheduleService.ListSnapshots(r.Context(), tournamentID, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if snapshots == nil {
		snapshots = []models.ScheduleSnapshot{}
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"snapshots": snapshots}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetSnapshot godoc
// @Summary Один снимок расписания
// @Tags schedule
// @Produce json
// @Param snapshotID path int true "Snapshot ID"
// @Success 200 {object} models.ScheduleSnapshot
// @Failure 404 {object} map[string]string "Снимок не найден"
// @Failure 503 {object} map[string]string "Архив не настроен"
// @Router /schedule/snapshots/{snapshotID} [get]
func (h *ScheduleHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshotID, err := getIDFromURL(r, "snapshotID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	snapshot, err := h.scheduleService.GetSnapshot(r.Context(), snapshotID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, snapshot, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteSnapshot godoc
// @Summary Удалить снимок расписания
// @Tags schedule
// @Param snapshotID path int true "Snapshot ID"
// @Success 204 "Удалено"
// @Failure 404 {object} map[string]string "Снимок не найден"
// @Failure 503 {object} map[string]string "Архив не настроен"
// @Router /schedule/snapshots/{snapshotID} [delete]
func (h *ScheduleHandler) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshotID, err := getIDFromURL(r, "snapshotID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.scheduleService.DeleteSnapshot(r.Context(), snapshotID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportSchedule godoc
// @Summary Выгрузить расписание в Excel
// @Tags schedule
// @Description Если хранилище настроено, файл загружается и возвращается ссылка; иначе отдаётся сам файл.
// @Produce json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} services.ExportResult
// @Router /tournaments/{tournamentID}/schedule/export [post]
func (h *ScheduleHandler) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.exportService.ExportSchedule(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if result.URL != "" {
		if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Content); err != nil {
		logRequestError(r, "write export failed", err)
	}
}

// GetMatch godoc
// @Summary Получить матч
// @Tags matches
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} models.CanonicalMatch
// @Failure 404 {object} map[string]string "Матч не найден"
// @Router /matches/{matchID} [get]
func (h *ScheduleHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.scheduleService.GetMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, match, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateMatch godoc
// @Summary Обновить матч
// @Tags matches
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param body body models.MatchUpdate true "Изменяемые поля"
// @Success 200 {object} models.CanonicalMatch
// @Failure 400 {object} map[string]string "Нет полей для обновления"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Router /matches/{matchID} [put]
func (h *ScheduleHandler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input models.MatchUpdate
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.scheduleService.UpdateMatch(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, match, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteMatch godoc
// @Summary Удалить матч
// @Tags matches
// @Param matchID path int true "Match ID"
// @Success 204 "Удалено"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Router /matches/{matchID} [delete]
func (h *ScheduleHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.scheduleService.DeleteMatch(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// NormalizeSchedule godoc
// @Summary Нормализовать записи расписания
// @Tags schedule
// @Description Без сохранения: принимает массив записей (или конверт {success, data}) в любом из двух форматов и возвращает единый формат.
// @Accept json
// @Produce json
// @Param body body []models.RawScheduleRecord true "Записи"
// @Success 200 {object} map[string]interface{} "matches"
// @Failure 400 {object} map[string]string "Нераспознанный формат"
// @Router /schedule/normalize [post]
func (h *ScheduleHandler) NormalizeSchedule(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	records, err := schedule.DecodeRecords(body)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches := schedule.ToCanonicalMatchList(records)
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
