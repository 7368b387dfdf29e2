package brackets

import (
	"fmt"

	"github.com/Dosada05/tournament-scheduler/models"
)

// MaxGroups: потолок числа групп. Все группы обозначаются одной буквой.
const MaxGroups = 8

const (
	MsgGroupsMustBePositive  = "El número de grupos debe ser mayor a 0"
	MsgGroupsExceedTeams     = "El número de grupos no puede ser mayor al número de equipos"
	MsgTeamsPerGroupPositive = "El número de equipos por grupo debe ser mayor a 0"
	MsgMaxGroups             = "El número máximo de grupos es 8"
	MsgTooManyAssignments    = "No se pueden asignar más equipos de los que están registrados"
)

// ValidateConfiguration проверяет конфигурацию против числа зарегистрированных
// команд. Каждое нарушенное правило дает одно сообщение, порядок фиксирован.
// Пустой результат: конфигурация допустима.
func ValidateConfiguration(input models.ConfigurationInput, totalTeams int) []string {
	var errs []string

	if input.NumberOfGroups < 1 {
		errs = append(errs, MsgGroupsMustBePositive)
	}
	if input.NumberOfGroups > totalTeams {
		errs = append(errs, MsgGroupsExceedTeams)
	}
	if input.TeamsPerGroup < 1 {
		errs = append(errs, MsgTeamsPerGroupPositive)
	}
	if input.NumberOfGroups > MaxGroups {
		errs = append(errs, MsgMaxGroups)
	}
	if input.TeamAssignments != nil && len(input.TeamAssignments) > totalTeams {
		errs = append(errs, MsgTooManyAssignments)
	}

	return errs
}

// ValidateGroupShape проверяет правила, не зависящие от числа зарегистрированных
// команд: 1, 3 и 4 из ValidateConfiguration, в том же порядке и с теми же
// сообщениями.
func ValidateGroupShape(input models.ConfigurationInput) []string {
	var errs []string

	if input.NumberOfGroups < 1 {
		errs = append(errs, MsgGroupsMustBePositive)
	}
	if input.TeamsPerGroup < 1 {
		errs = append(errs, MsgTeamsPerGroupPositive)
	}
	if input.NumberOfGroups > MaxGroups {
		errs = append(errs, MsgMaxGroups)
	}

	return errs
}

// ValidateAssignments проверяет структуру списка назначений: команда встречается
// не больше одного раза, используются только первые numberOfGroups букв.
func ValidateAssignments(assignments []models.TeamAssignment, numberOfGroups int) []string {
	var errs []string

	allowed := make(map[string]bool, numberOfGroups)
	for i := 0; i < numberOfGroups && i < MaxGroupLabels; i++ {
		label, _ := GroupLabel(i)
		allowed[label] = true
	}

	seen := make(map[int]bool, len(assignments))
	for _, a := range assignments {
		if seen[a.TeamID] {
			errs = append(errs, fmt.Sprintf("El equipo %d está asignado a más de un grupo", a.TeamID))
		}
		seen[a.TeamID] = true

		if a.GroupLabel != "" && !allowed[a.GroupLabel] {
			errs = append(errs, fmt.Sprintf("El grupo %q no existe en esta configuración", a.GroupLabel))
		}
	}

	return errs
}
