package models

// FixtureType: формат генерации, который запрашивается у API.
type FixtureType string

const (
	FixtureRoundRobin FixtureType = "round_robin"
	FixtureKnockout   FixtureType = "knockout"
	FixtureGroupStage FixtureType = "group_stage"
)

// Valid сообщает, поддерживается ли формат.
func (t FixtureType) Valid() bool {
	switch t {
	case FixtureRoundRobin, FixtureKnockout, FixtureGroupStage:
		return true
	}
	return false
}

// FixtureEntry: одна строка расписания в fixture-формате (date/time раздельно).
type FixtureEntry struct {
	HomeTeamID int         `json:"homeTeamId"`
	AwayTeamID int         `json:"awayTeamId"`
	Date       string      `json:"date"`
	Time       string      `json:"time"`
	Location   string      `json:"location,omitempty"`
	Round      string      `json:"round,omitempty"`
	Group      string      `json:"group,omitempty"`
	GroupID    string      `json:"groupId,omitempty"`
	Status     MatchStatus `json:"status,omitempty"`
	HomeScore  *int        `json:"homeScore,omitempty"`
	AwayScore  *int        `json:"awayScore,omitempty"`
}

// FixtureConfiguration: тело запроса для сохранения своего расписания.
type FixtureConfiguration struct {
	TournamentID int            `json:"tournamentId"`
	FixtureType  FixtureType    `json:"fixtureType"`
	StartDate    string         `json:"startDate"`
	Location     string         `json:"location,omitempty"`
	Fixtures     []FixtureEntry `json:"fixtures"`
}

// FixtureGenerationRequest просит API сгенерировать расписание.
type FixtureGenerationRequest struct {
	TournamentID int         `json:"tournamentId"`
	FixtureType  FixtureType `json:"fixtureType"`
	StartDate    string      `json:"startDate"`
	Location     string      `json:"location,omitempty"`
}
