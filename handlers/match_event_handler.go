package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/tournament-scheduler/models"
	"github.com/Dosada05/tournament-scheduler/services"
)

type MatchEventHandler struct {
	eventService services.MatchEventService
}

func NewMatchEventHandler(es services.MatchEventService) *MatchEventHandler {
	return &MatchEventHandler{eventService: es}
}

// ListEvents godoc
// @Summary События матча
// @Tags match-events
// @Produce json
// @Param matchID path int true "Match ID"
// @Param eventType query string false "goal, yellow_card, red_card, substitution, own_goal, penalty_goal, penalty_miss"
// @Param playerId query int false "Player ID"
// @Param startMinute query int false "С минуты"
// @Param endMinute query int false "По минуту"
// @Success 200 {object} map[string]interface{} "events"
// @Failure 400 {object} map[string]string "Некорректный фильтр"
// @Router /matches/{matchID}/events [get]
func (h *MatchEventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	filter := models.MatchEventFilter{EventType: models.MatchEventType(r.URL.Query().Get("eventType"))}
	for name, dst := range map[string]**int{
		"playerId":    &filter.PlayerID,
		"startMinute": &filter.StartMinute,
		"endMinute":   &filter.EndMinute,
	} {
		v, err := queryInt(r, name)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		*dst = v
	}

	events, err := h.eventService.ListEvents(r.Context(), matchID, filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"events": events}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListTeamEvents godoc
// @Summary События команды во всех матчах
// @Tags match-events
// @Produce json
// @Param teamID path int true "Team ID"
// @Success 200 {object} map[string]interface{} "events"
// @Router /teams/{teamID}/events [get]
func (h *MatchEventHandler) ListTeamEvents(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	events, err := h.eventService.ListTeamEvents(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"events": events}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetEvent godoc
// @Summary Одно событие матча
// @Tags match-events
// @Produce json
// @Param matchID path int true "Match ID"
// @Param eventID path int true "Event ID"
// @Success 200 {object} models.MatchEvent
// @Failure 404 {object} map[string]string "Событие не найдено"
// @Router /matches/{matchID}/events/{eventID} [get]
func (h *MatchEventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	matchID, eventID, ok := eventIDs(w, r)
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(r.Context(), matchID, eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, event, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateEvent godoc
// @Summary Добавить событие матча
// @Tags match-events
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param body body models.CreateMatchEventInput true "Событие"
// @Success 201 {object} models.MatchEvent
// @Failure 400 {object} map[string]string "Некорректное событие"
// @Router /matches/{matchID}/events [post]
func (h *MatchEventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input models.CreateMatchEventInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.MatchID != 0 && input.MatchID != matchID {
		badRequestResponse(w, r, errors.New("matchId in body does not match the URL"))
		return
	}
	input.MatchID = matchID

	event, err := h.eventService.CreateEvent(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, event, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateEvent godoc
// @Summary Изменить событие матча
// @Tags match-events
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param eventID path int true "Event ID"
// @Param body body models.UpdateMatchEventInput true "Изменяемые поля"
// @Success 200 {object} models.MatchEvent
// @Failure 400 {object} map[string]string "Некорректное событие"
// @Failure 404 {object} map[string]string "Событие не найдено"
// @Router /matches/{matchID}/events/{eventID} [put]
func (h *MatchEventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	matchID, eventID, ok := eventIDs(w, r)
	if !ok {
		return
	}

	var input models.UpdateMatchEventInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.eventService.UpdateEvent(r.Context(), matchID, eventID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, event, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteEvent godoc
// @Summary Удалить событие матча
// @Tags match-events
// @Param matchID path int true "Match ID"
// @Param eventID path int true "Event ID"
// @Success 204 "Удалено"
// @Failure 404 {object} map[string]string "Событие не найдено"
// @Router /matches/{matchID}/events/{eventID} [delete]
func (h *MatchEventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	matchID, eventID, ok := eventIDs(w, r)
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(r.Context(), matchID, eventID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func eventIDs(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return 0, 0, false
	}
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return 0, 0, false
	}
	return matchID, eventID, true
}
