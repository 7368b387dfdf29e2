package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/Dosada05/tournament-scheduler/brackets"
	"github.com/Dosada05/tournament-scheduler/models"
)

// errInvalidDraw возвращается после того, как нарушения уже напечатаны.
var errInvalidDraw = errors.New("draw violates the group rules")

type drawTeam struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

type drawAssignment struct {
	Team  int    `yaml:"team"`
	Group string `yaml:"group"`
}

// drawFile: YAML-файл для команд groups.
type drawFile struct {
	Tournament     string           `yaml:"tournament,omitempty"`
	NumberOfGroups int              `yaml:"numberOfGroups"`
	TeamsPerGroup  int              `yaml:"teamsPerGroup"`
	TotalTeams     *int             `yaml:"totalTeams,omitempty"`
	Seed           *uint64          `yaml:"seed,omitempty"`
	Teams          []drawTeam       `yaml:"teams"`
	Assignments    []drawAssignment `yaml:"assignments,omitempty"`
}

type drawOptions struct {
	Seed       *uint64
	Sequential bool
	Output     string
}

func loadDrawFile(path string) (*drawFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading draw file: %w", err)
	}
	var f drawFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing draw file: %w", err)
	}
	if len(f.Teams) == 0 {
		return nil, errors.New("draw file has no teams")
	}
	return &f, nil
}

func (f *drawFile) totalTeams() int {
	if f.TotalTeams != nil {
		return *f.TotalTeams
	}
	return len(f.Teams)
}

func (f *drawFile) teamIDs() []int {
	ids := make([]int, len(f.Teams))
	for i, t := range f.Teams {
		ids[i] = t.ID
	}
	return ids
}

func (f *drawFile) teamName(id int) string {
	for _, t := range f.Teams {
		if t.ID == id && t.Name != "" {
			return t.Name
		}
	}
	return fmt.Sprintf("#%d", id)
}

func (f *drawFile) input() models.ConfigurationInput {
	in := models.ConfigurationInput{NumberOfGroups: f.NumberOfGroups, TeamsPerGroup: f.TeamsPerGroup}
	if f.Assignments != nil {
		in.TeamAssignments = make([]models.TeamAssignment, len(f.Assignments))
		for i, a := range f.Assignments {
			in.TeamAssignments[i] = models.TeamAssignment{TeamID: a.Team, GroupLabel: a.Group}
		}
	}
	return in
}

// problems проверяет правила конфигурации, а если в файле есть назначения,
// то и их структуру.
func (f *drawFile) problems() []string {
	in := f.input()
	out := brackets.ValidateConfiguration(in, f.totalTeams())
	if len(in.TeamAssignments) > 0 {
		out = append(out, brackets.ValidateAssignments(in.TeamAssignments, in.NumberOfGroups)...)
	}
	return out
}

func printProblems(w io.Writer, problems []string) {
	for _, p := range problems {
		fmt.Fprintf(w, "✗ %s\n", p)
	}
}

func runDraw(w io.Writer, path string, opts drawOptions) error {
	f, err := loadDrawFile(path)
	if err != nil {
		return err
	}
	// Существующие назначения перезаписываются жеребьёвкой.
	f.Assignments = nil
	if problems := f.problems(); len(problems) > 0 {
		printProblems(w, problems)
		return errInvalidDraw
	}

	var assignments []models.TeamAssignment
	if opts.Sequential {
		assignments, err = brackets.GenerateSequentialAssignments(f.teamIDs(), f.NumberOfGroups)
	} else {
		seed := opts.Seed
		if seed == nil {
			seed = f.Seed
		}
		var r *rand.Rand
		if seed != nil {
			r = rand.New(rand.NewPCG(*seed, *seed))
		}
		assignments, err = brackets.ShuffleAssignments(r, f.teamIDs(), f.NumberOfGroups)
	}
	if err != nil {
		return err
	}

	f.Assignments = make([]drawAssignment, len(assignments))
	for i, a := range assignments {
		f.Assignments[i] = drawAssignment{Team: a.TeamID, Group: a.GroupLabel}
	}

	groups := brackets.GroupTeams(assignments)
	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	for _, label := range labels {
		fmt.Fprintf(w, "Group %s\n", label)
		for _, id := range groups[label] {
			fmt.Fprintf(w, "  - %s\n", f.teamName(id))
		}
	}

	if opts.Output == "" {
		return nil
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding draw file: %w", err)
	}
	if err := os.WriteFile(opts.Output, data, 0644); err != nil {
		return fmt.Errorf("writing draw file: %w", err)
	}
	fmt.Fprintf(w, "✓ Wrote %s\n", opts.Output)
	return nil
}

func runValidate(w io.Writer, path string) error {
	f, err := loadDrawFile(path)
	if err != nil {
		return err
	}
	if problems := f.problems(); len(problems) > 0 {
		printProblems(w, problems)
		return errInvalidDraw
	}
	fmt.Fprintf(w, "✓ %d teams in %d groups: configuration is valid\n", len(f.Teams), f.NumberOfGroups)
	return nil
}
