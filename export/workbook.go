// Package export строит книгу Excel из нормализованного расписания.
package export

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Dosada05/tournament-scheduler/models"
	"github.com/Dosada05/tournament-scheduler/schedule"
	"github.com/xuri/excelize/v2"
)

const (
	ScheduleSheet = "Schedule"
	ContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var headers = []string{"Date", "Time", "Group", "Home", "Away", "Venue", "Status", "Score"}

// Workbook строит книгу: полное расписание по дате и по листу на группу.
func Workbook(matches []models.CanonicalMatch) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	sorted := slices.Clone(matches)
	slices.SortStableFunc(sorted, compareByDate)

	if err := writeSheet(f, ScheduleSheet, sorted); err != nil {
		return nil, fmt.Errorf("writing schedule sheet: %w", err)
	}

	groups, order := byGroup(sorted)
	for _, label := range order {
		if err := writeSheet(f, sheetName("Group "+label), groups[label]); err != nil {
			return nil, fmt.Errorf("writing group %s sheet: %w", label, err)
		}
	}

	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(ScheduleSheet); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// Bytes строит книгу в памяти.
func Bytes(matches []models.CanonicalMatch) ([]byte, error) {
	f, err := Workbook(matches)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, matches []models.CanonicalMatch) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	for i, h := range headers {
		if err := f.SetCellValue(sheet, cell(i+1, 1), h); err != nil {
			return err
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		f.SetCellStyle(sheet, cell(1, 1), cell(len(headers), 1), headerStyle)
	}

	for r, m := range matches {
		date, clock := splitDate(m.ScheduledDate)
		row := []any{
			date,
			clock,
			groupLabel(m),
			teamName(m.HomeTeam, m.HomeTeamID),
			teamName(m.AwayTeam, m.AwayTeamID),
			m.Venue,
			statusText(m),
			score(m),
		}
		if err := f.SetSheetRow(sheet, cell(1, r+2), &row); err != nil {
			return err
		}
	}

	f.SetColWidth(sheet, "A", "B", 12)
	f.SetColWidth(sheet, "C", "C", 10)
	f.SetColWidth(sheet, "D", "F", 24)
	f.SetColWidth(sheet, "G", "H", 14)
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func compareByDate(a, b models.CanonicalMatch) int {
	ta, errA := schedule.ParseScheduledDate(a.ScheduledDate)
	tb, errB := schedule.ParseScheduledDate(b.ScheduledDate)
	switch {
	case errA == nil && errB == nil:
		return ta.Compare(tb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return cmp.Compare(a.ScheduledDate, b.ScheduledDate)
	}
}

// byGroup раскладывает матчи по группам; матчи без группы пропускаются.
func byGroup(matches []models.CanonicalMatch) (map[string][]models.CanonicalMatch, []string) {
	groups := make(map[string][]models.CanonicalMatch)
	var order []string
	for _, m := range matches {
		label := groupLabel(m)
		if label == "" {
			continue
		}
		if _, ok := groups[label]; !ok {
			order = append(order, label)
		}
		groups[label] = append(groups[label], m)
	}
	slices.Sort(order)
	return groups, order
}

func groupLabel(m models.CanonicalMatch) string {
	if name := schedule.GroupName(m.Group); name != "" {
		return name
	}
	if m.GroupID != nil {
		return strconv.Itoa(*m.GroupID)
	}
	return ""
}

func splitDate(s string) (string, string) {
	date, clock, _ := strings.Cut(s, "T")
	return date, clock
}

func teamName(ref *models.TeamRef, id int) string {
	if ref != nil && ref.Name != "" {
		return ref.Name
	}
	return "#" + strconv.Itoa(id)
}

func statusText(m models.CanonicalMatch) string {
	if m.SourceStatus != "" {
		return m.SourceStatus
	}
	return string(m.Status)
}

func score(m models.CanonicalMatch) string {
	if m.HomeScore == nil || m.AwayScore == nil {
		return ""
	}
	return fmt.Sprintf("%d - %d", *m.HomeScore, *m.AwayScore)
}

// sheetName убирает символы, запрещенные Excel, и держит лимит в 31 символ.
func sheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, s)
	if r := []rune(s); len(r) > 31 {
		s = string(r[:31])
	}
	return s
}
