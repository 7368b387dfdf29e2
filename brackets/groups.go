package brackets

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/Dosada05/tournament-scheduler/models"
)

// MaxGroupLabels: столько групп можно обозначить одной буквой.
const MaxGroupLabels = 26

var (
	ErrInvalidGroupCount    = errors.New("group count must be greater than zero")
	ErrGroupLabelOutOfRange = errors.New("group index has no single-letter label")
)

// GroupLabel возвращает букву группы по индексу с нуля: 0 -> "A", 25 -> "Z".
// После Z обозначений нет.
func GroupLabel(index int) (string, error) {
	if index < 0 || index >= MaxGroupLabels {
		return "", fmt.Errorf("%w: index %d", ErrGroupLabelOutOfRange, index)
	}
	return string(rune('A' + index)), nil
}

// GroupLabels возвращает первые n обозначений по порядку.
func GroupLabels(n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGroupCount, n)
	}
	labels := make([]string, n)
	for i := range labels {
		l, err := GroupLabel(i)
		if err != nil {
			return nil, err
		}
		labels[i] = l
	}
	return labels, nil
}

// GenerateSequentialAssignments раздает команды по groupCount группам по кругу
// в исходном порядке: команда i попадает в группу i mod groupCount.
func GenerateSequentialAssignments(teamIDs []int, groupCount int) ([]models.TeamAssignment, error) {
	labels, err := GroupLabels(groupCount)
	if err != nil {
		return nil, err
	}

	assignments := make([]models.TeamAssignment, 0, len(teamIDs))
	for i, teamID := range teamIDs {
		assignments = append(assignments, models.TeamAssignment{
			TeamID:     teamID,
			GroupLabel: labels[i%groupCount],
		})
	}
	return assignments, nil
}

// GenerateShuffledAssignments перемешивает копию teamIDs и раздает ее
// как GenerateSequentialAssignments.
func GenerateShuffledAssignments(teamIDs []int, groupCount int) ([]models.TeamAssignment, error) {
	return ShuffleAssignments(nil, teamIDs, groupCount)
}

// ShuffleAssignments: GenerateShuffledAssignments с явным источником случайности.
// При r == nil используется глобальный генератор.
func ShuffleAssignments(r *rand.Rand, teamIDs []int, groupCount int) ([]models.TeamAssignment, error) {
	if groupCount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGroupCount, groupCount)
	}

	shuffled := slices.Clone(teamIDs)
	swap := func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] }
	// Fisher–Yates
	if r != nil {
		r.Shuffle(len(shuffled), swap)
	} else {
		rand.Shuffle(len(shuffled), swap)
	}

	return GenerateSequentialAssignments(shuffled, groupCount)
}

// GroupSizes считает назначения по группам.
func GroupSizes(assignments []models.TeamAssignment) map[string]int {
	sizes := make(map[string]int)
	for _, a := range assignments {
		sizes[a.GroupLabel]++
	}
	return sizes
}

// GroupTeams собирает id команд по группам в порядке назначений.
func GroupTeams(assignments []models.TeamAssignment) map[string][]int {
	groups := make(map[string][]int)
	for _, a := range assignments {
		groups[a.GroupLabel] = append(groups[a.GroupLabel], a.TeamID)
	}
	return groups
}
