package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/Dosada05/tournament-scheduler/models"
	"github.com/Dosada05/tournament-scheduler/repositories"
	"github.com/Dosada05/tournament-scheduler/services"
)

func TestGetTournamentMatches(t *testing.T) {
	svc := &fakeScheduleService{matches: []models.CanonicalMatch{
		{TournamentID: 4, HomeTeamID: 1, AwayTeamID: 2, ScheduledDate: "2025-03-01T15:00", Status: models.StatusScheduled},
	}}
	h := NewScheduleHandler(svc, &fakeExportService{})

	rec := serve(t, http.MethodGet, "/tournaments/{tournamentID}/matches", "/tournaments/4/matches", "", h.GetTournamentMatches)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Matches []models.CanonicalMatch `json:"matches"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Matches) != 1 || body.Matches[0].ScheduledDate != "2025-03-01T15:00" {
		t.Errorf("unexpected matches %+v", body.Matches)
	}
}

func TestCreateTournamentMatches(t *testing.T) {
	const pattern = "/tournaments/{tournamentID}/matches"

	t.Run("fixture records become create requests", func(t *testing.T) {
		svc := &fakeScheduleService{matches: []models.CanonicalMatch{{}, {}}}
		h := NewScheduleHandler(svc, &fakeExportService{})

		body := `{"matches":[
			{"homeTeamId":1,"awayTeamId":2,"date":"2025-03-01","time":"15:00","location":"Estadio Central"},
			{"homeTeamId":3,"awayTeamId":4,"scheduledDate":"2025-03-02T18:30:00Z","venue":"Arena","matchNumber":7}
		]}`
		rec := serve(t, http.MethodPost, pattern, "/tournaments/4/matches", body, h.CreateTournamentMatches)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		if len(svc.createReqs) != 2 {
			t.Fatalf("got %d requests, want 2", len(svc.createReqs))
		}
		first, second := svc.createReqs[0], svc.createReqs[1]
		if first.TournamentID != 4 || first.MatchNumber != 1 || first.Location != "Estadio Central" {
			t.Errorf("first request = %+v", first)
		}
		if first.MatchDate.Hour() != 15 {
			t.Errorf("first match date = %v", first.MatchDate)
		}
		if second.MatchNumber != 7 || second.Location != "Arena" {
			t.Errorf("second request = %+v", second)
		}
	})

	t.Run("unparseable date", func(t *testing.T) {
		svc := &fakeScheduleService{}
		h := NewScheduleHandler(svc, &fakeExportService{})
		body := `{"matches":[{"homeTeamId":1,"awayTeamId":2,"date":"mañana"}]}`
		rec := serve(t, http.MethodPost, pattern, "/tournaments/4/matches", body, h.CreateTournamentMatches)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if svc.createReqs != nil {
			t.Error("service must not be called")
		}
	})

	t.Run("missing records", func(t *testing.T) {
		h := NewScheduleHandler(&fakeScheduleService{}, &fakeExportService{})
		rec := serve(t, http.MethodPost, pattern, "/tournaments/4/matches", `{}`, h.CreateTournamentMatches)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("partial batch reports the failure", func(t *testing.T) {
		svc := &fakeScheduleService{matches: []models.CanonicalMatch{{}}, err: fmt.Errorf("create match 2: %w", errBoom)}
		h := NewScheduleHandler(svc, &fakeExportService{})
		body := `{"matches":[{"homeTeamId":1,"awayTeamId":2,"date":"2025-03-01"},{"homeTeamId":3,"awayTeamId":4,"date":"2025-03-01"}]}`
		rec := serve(t, http.MethodPost, pattern, "/tournaments/4/matches", body, h.CreateTournamentMatches)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}

func TestDeleteTournamentMatches(t *testing.T) {
	h := NewScheduleHandler(&fakeScheduleService{deleted: 5}, &fakeExportService{})
	rec := serve(t, http.MethodDelete, "/tournaments/{tournamentID}/matches", "/tournaments/4/matches", "", h.DeleteTournamentMatches)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"deleted": 5`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestSaveFixtures(t *testing.T) {
	const pattern = "/tournaments/{tournamentID}/fixtures"

	t.Run("match records are converted to fixtures", func(t *testing.T) {
		svc := &fakeScheduleService{matches: []models.CanonicalMatch{{}}}
		h := NewScheduleHandler(svc, &fakeExportService{})

		body := `{"fixtureType":"group_stage","startDate":"2025-03-01","fixtures":[
			{"homeTeamId":1,"awayTeamId":2,"scheduledDate":"2025-03-01T15:00:00Z","venue":"Arena","groupId":"3","status":"in_progress"}
		]}`
		rec := serve(t, http.MethodPost, pattern, "/tournaments/9/fixtures", body, h.SaveFixtures)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		cfg := svc.fixtureCfg
		if cfg.TournamentID != 9 || cfg.FixtureType != models.FixtureGroupStage {
			t.Errorf("unexpected configuration %+v", cfg)
		}
		if len(cfg.Fixtures) != 1 {
			t.Fatalf("got %d fixtures", len(cfg.Fixtures))
		}
		f := cfg.Fixtures[0]
		if f.Date != "2025-03-01" || f.Location != "Arena" || f.GroupID != "3" {
			t.Errorf("fixture = %+v", f)
		}
		if f.Status != models.StatusScheduled {
			t.Errorf("status = %q, want scheduled", f.Status)
		}
	})

	t.Run("bad backend answer", func(t *testing.T) {
		h := NewScheduleHandler(&fakeScheduleService{err: services.ErrInvalidFixtureResponse}, &fakeExportService{})
		body := `{"fixtureType":"round_robin","startDate":"2025-03-01","fixtures":[{"homeTeamId":1,"awayTeamId":2,"date":"2025-03-01"}]}`
		rec := serve(t, http.MethodPost, pattern, "/tournaments/9/fixtures", body, h.SaveFixtures)
		if rec.Code != http.StatusBadGateway {
			t.Errorf("status = %d, want 502", rec.Code)
		}
	})
}

func TestGenerateFixtures(t *testing.T) {
	svc := &fakeScheduleService{matches: []models.CanonicalMatch{{}, {}}}
	h := NewScheduleHandler(svc, &fakeExportService{})
	rec := serve(t, http.MethodPost, "/tournaments/{tournamentID}/fixtures/generate", "/tournaments/2/fixtures/generate",
		`{"fixtureType":"knockout","startDate":"2025-05-01","location":"Arena"}`, h.GenerateFixtures)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.genReq.TournamentID != 2 || svc.genReq.FixtureType != models.FixtureKnockout || svc.genReq.Location != "Arena" {
		t.Errorf("request = %+v", svc.genReq)
	}
}

func TestSnapshots(t *testing.T) {
	t.Run("default limit", func(t *testing.T) {
		svc := &fakeScheduleService{}
		h := NewScheduleHandler(svc, &fakeExportService{})
		rec := serve(t, http.MethodGet, "/tournaments/{tournamentID}/schedule/snapshots", "/tournaments/2/schedule/snapshots", "", h.ListSnapshots)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if svc.limit != repositories.DefaultSnapshotLimit {
			t.Errorf("limit = %d, want %d", svc.limit, repositories.DefaultSnapshotLimit)
		}
		if !strings.Contains(rec.Body.String(), `"snapshots": []`) {
			t.Errorf("body = %s", rec.Body.String())
		}
	})

	t.Run("explicit limit", func(t *testing.T) {
		svc := &fakeScheduleService{}
		h := NewScheduleHandler(svc, &fakeExportService{})
		serve(t, http.MethodGet, "/tournaments/{tournamentID}/schedule/snapshots", "/tournaments/2/schedule/snapshots?limit=3", "", h.ListSnapshots)
		if svc.limit != 3 {
			t.Errorf("limit = %d, want 3", svc.limit)
		}
	})

	t.Run("bad limit", func(t *testing.T) {
		h := NewScheduleHandler(&fakeScheduleService{}, &fakeExportService{})
		rec := serve(t, http.MethodGet, "/tournaments/{tournamentID}/schedule/snapshots", "/tournaments/2/schedule/snapshots?limit=x", "", h.ListSnapshots)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("archive disabled", func(t *testing.T) {
		h := NewScheduleHandler(&fakeScheduleService{err: services.ErrArchiveDisabled}, &fakeExportService{})
		rec := serve(t, http.MethodGet, "/schedule/snapshots/{snapshotID}", "/schedule/snapshots/1", "", h.GetSnapshot)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})

	t.Run("delete snapshot", func(t *testing.T) {
		h := NewScheduleHandler(&fakeScheduleService{}, &fakeExportService{})
		rec := serve(t, http.MethodDelete, "/schedule/snapshots/{snapshotID}", "/schedule/snapshots/1", "", h.DeleteSnapshot)
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})

	t.Run("snapshot not found", func(t *testing.T) {
		h := NewScheduleHandler(&fakeScheduleService{err: services.ErrSnapshotNotFound}, &fakeExportService{})
		rec := serve(t, http.MethodGet, "/schedule/snapshots/{snapshotID}", "/schedule/snapshots/1", "", h.GetSnapshot)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestExportSchedule(t *testing.T) {
	const pattern = "/tournaments/{tournamentID}/schedule/export"

	t.Run("inline workbook", func(t *testing.T) {
		h := NewScheduleHandler(&fakeScheduleService{}, &fakeExportService{result: &services.ExportResult{
			FileName:    "tournament-1-schedule.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     []byte("PK\x03\x04"),
		}})
		rec := serve(t, http.MethodPost, pattern, "/tournaments/1/schedule/export", "", h.ExportSchedule)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "tournament-1-schedule.xlsx") {
			t.Errorf("Content-Disposition = %q", got)
		}
		if rec.Body.String() != "PK\x03\x04" {
			t.Errorf("body = %q", rec.Body.String())
		}
	})

	t.Run("uploaded workbook", func(t *testing.T) {
		h := NewScheduleHandler(&fakeScheduleService{}, &fakeExportService{result: &services.ExportResult{
			FileName: "x.xlsx", URL: "https://cdn.example.com/x.xlsx", MatchCount: 4,
		}})
		rec := serve(t, http.MethodPost, pattern, "/tournaments/1/schedule/export", "", h.ExportSchedule)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var result services.ExportResult
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if result.URL != "https://cdn.example.com/x.xlsx" || result.MatchCount != 4 {
			t.Errorf("result = %+v", result)
		}
	})
}

func TestMatchEndpoints(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		h := NewScheduleHandler(&fakeScheduleService{match: &models.CanonicalMatch{ID: intPtr(11), Status: models.StatusCompleted}}, &fakeExportService{})
		rec := serve(t, http.MethodGet, "/matches/{matchID}", "/matches/11", "", h.GetMatch)
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"completed"`) {
			t.Errorf("status = %d, body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("get missing", func(t *testing.T) {
		h := NewScheduleHandler(&fakeScheduleService{err: services.ErrMatchNotFound}, &fakeExportService{})
		rec := serve(t, http.MethodGet, "/matches/{matchID}", "/matches/11", "", h.GetMatch)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("update", func(t *testing.T) {
		h := NewScheduleHandler(&fakeScheduleService{match: &models.CanonicalMatch{ID: intPtr(11)}}, &fakeExportService{})
		rec := serve(t, http.MethodPut, "/matches/{matchID}", "/matches/11", `{"homeScore":2,"awayScore":1}`, h.UpdateMatch)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		h := NewScheduleHandler(&fakeScheduleService{}, &fakeExportService{})
		rec := serve(t, http.MethodDelete, "/matches/{matchID}", "/matches/11", "", h.DeleteMatch)
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})
}

func TestNormalizeSchedule(t *testing.T) {
	h := NewScheduleHandler(&fakeScheduleService{}, &fakeExportService{})

	t.Run("envelope of match records", func(t *testing.T) {
		body := `{"success":true,"data":[{"id":1,"tournamentId":2,"homeTeamId":1,"awayTeamId":2,"scheduledDate":"2025-03-01T15:00:00Z","status":"finished","venue":"Arena"}]}`
		rec := serve(t, http.MethodPost, "/schedule/normalize", "/schedule/normalize", body, h.NormalizeSchedule)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Matches []models.CanonicalMatch `json:"matches"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Matches) != 1 {
			t.Fatalf("got %d matches", len(resp.Matches))
		}
		m := resp.Matches[0]
		if m.Status != models.StatusScheduled || m.SourceStatus != "finished" || m.Venue != "Arena" {
			t.Errorf("match = %+v", m)
		}
	})

	t.Run("unrecognised payload", func(t *testing.T) {
		rec := serve(t, http.MethodPost, "/schedule/normalize", "/schedule/normalize", `"hola"`, h.NormalizeSchedule)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		rec := serve(t, http.MethodPost, "/schedule/normalize", "/schedule/normalize", "", h.NormalizeSchedule)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}
