package handlers

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/Dosada05/tournament-scheduler/brackets"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub      *brackets.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler принимает подключения только с allowedOrigins. Пустой
// список или "*" разрешают любой origin.
func NewWebSocketHandler(hub *brackets.Hub, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	anyOrigin := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")
	return &WebSocketHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return anyOrigin || origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// ServeWs godoc
// @Summary Подписка на обновления турнира
// @Tags websocket
// @Description WebSocket: уведомления (NOTIFICATION), новое расписание (SCHEDULE_UPDATED) и конфигурация групп (CONFIGURATION_UPDATED) для турнира.
// @Param tournamentID path int true "Tournament ID"
// @Success 101 "Switching Protocols"
// @Router /ws/tournaments/{tournamentID} [get]
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту ошибкой.
		h.logger.Warn("websocket upgrade failed", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return
	}

	room := brackets.TournamentRoom(tournamentID)
	client := brackets.NewClient(h.hub, conn, room)
	if !h.hub.Join(client) {
		// хаб остановлен: сервер завершает работу
		conn.Close()
		h.logger.Info("websocket client rejected: hub stopped", slog.String("room", room))
		return
	}

	go client.WritePump()
	go client.ReadPump()

	h.logger.Info("websocket client connected", slog.String("room", room))
}
