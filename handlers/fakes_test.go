package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/tournament-scheduler/models"
	"github.com/Dosada05/tournament-scheduler/services"
	"github.com/go-chi/chi/v5"
)

var errBoom = errors.New("boom")

// fakeConfigService records the arguments of the last call and returns canned values.
type fakeConfigService struct {
	cfg       *models.TournamentConfiguration
	err       error
	problems  []string
	assigned  []models.TeamAssignment
	lastInput models.ConfigurationInput
	lastTotal *int
	shuffle   bool
	deleted   int
}

func (f *fakeConfigService) LoadConfiguration(ctx context.Context, tournamentID int) (*models.TournamentConfiguration, error) {
	return f.cfg, f.err
}

func (f *fakeConfigService) HasConfiguration(ctx context.Context, tournamentID int) bool {
	return f.err == nil && f.cfg != nil
}

func (f *fakeConfigService) CreateConfiguration(ctx context.Context, tournamentID int, input models.ConfigurationInput, totalTeams *int) (*models.TournamentConfiguration, error) {
	f.lastInput = input
	f.lastTotal = totalTeams
	return f.cfg, f.err
}

func (f *fakeConfigService) UpdateConfiguration(ctx context.Context, tournamentID int, update models.ConfigurationUpdate, totalTeams *int) (*models.TournamentConfiguration, error) {
	f.lastTotal = totalTeams
	return f.cfg, f.err
}

func (f *fakeConfigService) DeleteConfiguration(ctx context.Context, tournamentID int) error {
	f.deleted = tournamentID
	return f.err
}

func (f *fakeConfigService) ValidateConfiguration(input models.ConfigurationInput, totalTeams int) []string {
	f.lastInput = input
	f.lastTotal = &totalTeams
	return f.problems
}

func (f *fakeConfigService) GenerateAssignments(teamIDs []int, numberOfGroups int, shuffle bool) ([]models.TeamAssignment, error) {
	f.shuffle = shuffle
	return f.assigned, f.err
}

type fakeScheduleService struct {
	matches    []models.CanonicalMatch
	match      *models.CanonicalMatch
	snapshots  []models.ScheduleSnapshot
	snapshot   *models.ScheduleSnapshot
	overview   *models.TournamentOverview
	deleted    int
	err        error
	createReqs []models.CreateMatchRequest
	fixtureCfg models.FixtureConfiguration
	genReq     models.FixtureGenerationRequest
	limit      int
}

func (f *fakeScheduleService) LoadTournamentMatches(ctx context.Context, tournamentID int) ([]models.CanonicalMatch, error) {
	return f.matches, f.err
}

func (f *fakeScheduleService) GetMatch(ctx context.Context, matchID int) (*models.CanonicalMatch, error) {
	return f.match, f.err
}

func (f *fakeScheduleService) CreateMultipleMatches(ctx context.Context, tournamentID int, reqs []models.CreateMatchRequest) ([]models.CanonicalMatch, error) {
	f.createReqs = reqs
	return f.matches, f.err
}

func (f *fakeScheduleService) UpdateMatch(ctx context.Context, matchID int, update models.MatchUpdate) (*models.CanonicalMatch, error) {
	return f.match, f.err
}

func (f *fakeScheduleService) DeleteMatch(ctx context.Context, matchID int) error {
	return f.err
}

func (f *fakeScheduleService) DeleteTournamentMatches(ctx context.Context, tournamentID int) (int, error) {
	return f.deleted, f.err
}

func (f *fakeScheduleService) GenerateFixtures(ctx context.Context, req models.FixtureGenerationRequest) ([]models.CanonicalMatch, error) {
	f.genReq = req
	return f.matches, f.err
}

func (f *fakeScheduleService) SaveFixtures(ctx context.Context, cfg models.FixtureConfiguration) ([]models.CanonicalMatch, error) {
	f.fixtureCfg = cfg
	return f.matches, f.err
}

func (f *fakeScheduleService) DeleteFixtures(ctx context.Context, tournamentID int) error {
	return f.err
}

func (f *fakeScheduleService) ListSnapshots(ctx context.Context, tournamentID, limit int) ([]models.ScheduleSnapshot, error) {
	f.limit = limit
	return f.snapshots, f.err
}

func (f *fakeScheduleService) GetSnapshot(ctx context.Context, snapshotID int) (*models.ScheduleSnapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeScheduleService) DeleteSnapshot(ctx context.Context, snapshotID int) error {
	return f.err
}

func (f *fakeScheduleService) GetOverview(ctx context.Context, tournamentID int) (*models.TournamentOverview, error) {
	return f.overview, f.err
}

type fakeExportService struct {
	result *services.ExportResult
	err    error
}

func (f *fakeExportService) ExportSchedule(ctx context.Context, tournamentID int) (*services.ExportResult, error) {
	return f.result, f.err
}

type fakeEventService struct {
	events      []models.MatchEvent
	event       *models.MatchEvent
	err         error
	filter      models.MatchEventFilter
	createInput models.CreateMatchEventInput
}

func (f *fakeEventService) ListEvents(ctx context.Context, matchID int, filter models.MatchEventFilter) ([]models.MatchEvent, error) {
	f.filter = filter
	return f.events, f.err
}

func (f *fakeEventService) ListTeamEvents(ctx context.Context, teamID int) ([]models.MatchEvent, error) {
	return f.events, f.err
}

func (f *fakeEventService) GetEvent(ctx context.Context, matchID, eventID int) (*models.MatchEvent, error) {
	return f.event, f.err
}

func (f *fakeEventService) CreateEvent(ctx context.Context, input models.CreateMatchEventInput) (*models.MatchEvent, error) {
	f.createInput = input
	return f.event, f.err
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, matchID, eventID int, input models.UpdateMatchEventInput) (*models.MatchEvent, error) {
	return f.event, f.err
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, matchID, eventID int) error {
	return f.err
}

// serve routes a single request through a chi router so URL params resolve.
func serve(t *testing.T, method, pattern, target, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func intPtr(v int) *int { return &v }
