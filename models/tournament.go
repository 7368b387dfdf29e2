package models

// TeamAssignment связывает команду с группой внутри одной конфигурации турнира.
// GroupLabel сериализуется как "groupName", так его называет удалённый API.
type TeamAssignment struct {
	TeamID       int    `json:"teamId"`
	GroupLabel   string `json:"groupName,omitempty"`
	GroupID      *int   `json:"groupId,omitempty"`
	ID           *int   `json:"id,omitempty"`
	TournamentID *int   `json:"tournamentId,omitempty"`
	AssignedAt   string `json:"assignedAt,omitempty"`
}

// TournamentGroup: группа в том виде, в каком ее возвращает API.
type TournamentGroup struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Teams        []int  `json:"teams"`
	GroupName    string `json:"groupName,omitempty"`
	GroupOrder   *int   `json:"groupOrder,omitempty"`
	TournamentID *int   `json:"tournamentId,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// TournamentConfiguration: конфигурация групп турнира. Заменяется целиком, частичных правок нет.
type TournamentConfiguration struct {
	NumberOfGroups  int               `json:"numberOfGroups"`
	TeamsPerGroup   int               `json:"teamsPerGroup"`
	Groups          []TournamentGroup `json:"groups"`
	IsConfigured    bool              `json:"isConfigured"`
	TeamAssignments []TeamAssignment  `json:"teamAssignments,omitempty"`
	ID              *int              `json:"id,omitempty"`
	TournamentID    *int              `json:"tournamentId,omitempty"`
	CreatedAt       string            `json:"createdAt,omitempty"`
	UpdatedAt       string            `json:"updatedAt,omitempty"`
}

// ConfigurationInput: тело запроса при создании конфигурации.
// TeamAssignments == nil означает, что поле не передано.
type ConfigurationInput struct {
	NumberOfGroups  int              `json:"numberOfGroups"`
	TeamsPerGroup   int              `json:"teamsPerGroup"`
	TeamAssignments []TeamAssignment `json:"teamAssignments,omitempty"`
}

// ConfigurationUpdate: все поля опциональны.
type ConfigurationUpdate struct {
	NumberOfGroups  *int             `json:"numberOfGroups,omitempty"`
	TeamsPerGroup   *int             `json:"teamsPerGroup,omitempty"`
	IsConfigured    *bool            `json:"isConfigured,omitempty"`
	TeamAssignments []TeamAssignment `json:"teamAssignments,omitempty"`
}

// Merge возвращает результат наложения u на current.
// Нужен, чтобы проверять обновление как целую конфигурацию.
func (u ConfigurationUpdate) Merge(current *TournamentConfiguration) ConfigurationInput {
	var in ConfigurationInput
	if current != nil {
		in.NumberOfGroups = current.NumberOfGroups
		in.TeamsPerGroup = current.TeamsPerGroup
		in.TeamAssignments = current.TeamAssignments
	}
	if u.NumberOfGroups != nil {
		in.NumberOfGroups = *u.NumberOfGroups
	}
	if u.TeamsPerGroup != nil {
		in.TeamsPerGroup = *u.TeamsPerGroup
	}
	if u.TeamAssignments != nil {
		in.TeamAssignments = u.TeamAssignments
	}
	return in
}

// TournamentOverview собирает конфигурацию и нормализованное расписание одного турнира.
type TournamentOverview struct {
	TournamentID  int                      `json:"tournamentId"`
	Configuration *TournamentConfiguration `json:"configuration,omitempty"`
	Matches       []CanonicalMatch         `json:"matches"`
}
