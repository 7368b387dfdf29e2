package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/tournament-scheduler/brackets"
	"github.com/Dosada05/tournament-scheduler/models"
	"github.com/Dosada05/tournament-scheduler/services"
)

type GroupHandler struct {
	configService services.ConfigurationService
}

func NewGroupHandler(cs services.ConfigurationService) *GroupHandler {
	return &GroupHandler{configService: cs}
}

type generateAssignmentsRequest struct {
	TeamIDs        []int `json:"teamIds"`
	NumberOfGroups int   `json:"numberOfGroups"`
	Shuffle        bool  `json:"shuffle"`
}

// GenerateAssignments godoc
// @Summary Распределить команды по группам
// @Tags groups
// @Description Раздаёт команды по группам A, B, C... по кругу. С shuffle=true порядок команд предварительно перемешивается.
// @Accept json
// @Produce json
// @Param body body generateAssignmentsRequest true "Команды и число групп"
// @Success 200 {object} map[string]interface{} "assignments, groups"
// @Failure 400 {object} map[string]string "Некорректные данные"
// @Router /groups/assignments [post]
func (h *GroupHandler) GenerateAssignments(w http.ResponseWriter, r *http.Request) {
	var input generateAssignmentsRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.TeamIDs) == 0 {
		badRequestResponse(w, r, errors.New("teamIds must not be empty"))
		return
	}

	assignments, err := h.configService.GenerateAssignments(input.TeamIDs, input.NumberOfGroups, input.Shuffle)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	resp := jsonResponse{
		"assignments": assignments,
		"groups":      brackets.GroupTeams(assignments),
	}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type validateConfigurationRequest struct {
	models.ConfigurationInput
	TotalTeams int `json:"totalTeams"`
}

// ValidateConfiguration godoc
// @Summary Проверить конфигурацию групп
// @Tags groups
// @Description Возвращает список нарушенных правил (пустой, если конфигурация корректна). Ничего не сохраняет.
// @Accept json
// @Produce json
// @Param body body validateConfigurationRequest true "Конфигурация и число зарегистрированных команд"
// @Success 200 {object} map[string]interface{} "valid, errors"
// @Failure 400 {object} map[string]string "Некорректный JSON"
// @Router /groups/validate [post]
func (h *GroupHandler) ValidateConfiguration(w http.ResponseWriter, r *http.Request) {
	var input validateConfigurationRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	problems := h.configService.ValidateConfiguration(input.ConfigurationInput, input.TotalTeams)
	if len(input.TeamAssignments) > 0 {
		problems = append(problems, brackets.ValidateAssignments(input.TeamAssignments, input.NumberOfGroups)...)
	}
	if problems == nil {
		problems = []string{}
	}

	resp := jsonResponse{"valid": len(problems) == 0, "errors": problems}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
