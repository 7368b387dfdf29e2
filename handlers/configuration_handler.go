package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-scheduler/models"
	"github.com/Dosada05/tournament-scheduler/services"
)

type ConfigurationHandler struct {
	configService services.ConfigurationService
}

func NewConfigurationHandler(cs services.ConfigurationService) *ConfigurationHandler {
	return &ConfigurationHandler{configService: cs}
}

// totalTeams опционален: без него проверяются только правила, не зависящие от числа команд.
type createConfigurationRequest struct {
	models.ConfigurationInput
	TotalTeams *int `json:"totalTeams,omitempty"`
}

type updateConfigurationRequest struct {
	models.ConfigurationUpdate
	TotalTeams *int `json:"totalTeams,omitempty"`
}

// GetConfiguration godoc
// @Summary Получить конфигурацию групп турнира
// @Tags configuration
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "configuration"
// @Failure 404 {object} map[string]string "Конфигурация не найдена"
// @Router /tournaments/{tournamentID}/configuration [get]
func (h *ConfigurationHandler) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	cfg, err := h.configService.LoadConfiguration(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"configuration": cfg}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateConfiguration godoc
// @Summary Создать конфигурацию групп
// @Tags configuration
// @Description Проверяет правила (зависящие от числа команд, только если передан totalTeams) и сохраняет конфигурацию. Результат рассылается в комнату турнира.
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param body body createConfigurationRequest true "Конфигурация"
// @Success 201 {object} map[string]interface{} "configuration"
// @Failure 400 {object} map[string]string "Некорректные данные"
// @Failure 409 {object} map[string]string "Для турнира уже выполняется операция"
// @Failure 422 {object} map[string]interface{} "Нарушены правила конфигурации"
// @Router /tournaments/{tournamentID}/configuration [post]
func (h *ConfigurationHandler) CreateConfiguration(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input createConfigurationRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	cfg, err := h.configService.CreateConfiguration(r.Context(), tournamentID, input.ConfigurationInput, input.TotalTeams)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"configuration": cfg}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateConfiguration godoc
// @Summary Обновить конфигурацию групп
// @Tags configuration
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param body body updateConfigurationRequest true "Изменяемые поля"
// @Success 200 {object} map[string]interface{} "configuration"
// @Failure 400 {object} map[string]string "Некорректные данные"
// @Failure 404 {object} map[string]string "Конфигурация не найдена"
// @Failure 409 {object} map[string]string "Для турнира уже выполняется операция"
// @Failure 422 {object} map[string]interface{} "Нарушены правила конфигурации"
// @Router /tournaments/{tournamentID}/configuration [put]
func (h *ConfigurationHandler) UpdateConfiguration(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input updateConfigurationRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	cfg, err := h.configService.UpdateConfiguration(r.Context(), tournamentID, input.ConfigurationUpdate, input.TotalTeams)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"configuration": cfg}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteConfiguration godoc
// @Summary Удалить конфигурацию групп
// @Tags configuration
// @Param tournamentID path int true "Tournament ID"
// @Success 204 "Удалено"
// @Failure 404 {object} map[string]string "Конфигурация не найдена"
// @Failure 409 {object} map[string]string "Для турнира уже выполняется операция"
// @Router /tournaments/{tournamentID}/configuration [delete]
func (h *ConfigurationHandler) DeleteConfiguration(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.configService.DeleteConfiguration(r.Context(), tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
