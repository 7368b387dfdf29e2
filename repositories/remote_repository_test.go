package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dosada05/tournament-scheduler/apiclient"
	"github.com/Dosada05/tournament-scheduler/models"
)

// fakeAPI answers a fixed set of "METHOD path" routes.
func fakeAPI(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) RemoteAPI {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"no route"}`))
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return apiclient.New(apiclient.Config{BaseURL: srv.URL, RequestsPerMinute: 6000})
}

func respond(body string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte(body)) }
}

func TestConfigurationRepository(t *testing.T) {
	api := fakeAPI(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /tournaments/1/configuration": respond(`{"numberOfGroups":2,"teamsPerGroup":4,"isConfigured":true,"teamAssignments":[{"teamId":5,"groupName":"A"}]}`),
		"POST /tournaments/1/configuration": func(w http.ResponseWriter, r *http.Request) {
			var in models.ConfigurationInput
			json.NewDecoder(r.Body).Decode(&in)
			if in.NumberOfGroups != 3 {
				t.Errorf("posted %+v", in)
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":7,"numberOfGroups":3,"teamsPerGroup":2}`))
		},
		"DELETE /tournaments/1/configuration": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
	})
	repo := NewRemoteConfigurationRepository(api)
	ctx := context.Background()

	cfg, err := repo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cfg.NumberOfGroups != 2 || len(cfg.TeamAssignments) != 1 || cfg.TeamAssignments[0].GroupLabel != "A" {
		t.Errorf("unexpected configuration %+v", cfg)
	}

	if _, err := repo.Get(ctx, 2); !errors.Is(err, ErrConfigurationNotFound) {
		t.Errorf("Get missing error = %v", err)
	}

	created, err := repo.Create(ctx, 1, models.ConfigurationInput{NumberOfGroups: 3, TeamsPerGroup: 2})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == nil || *created.ID != 7 {
		t.Errorf("created = %+v", created)
	}

	if err := repo.Delete(ctx, 1); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestMatchRepositoryList(t *testing.T) {
	t.Run("envelope", func(t *testing.T) {
		api := fakeAPI(t, map[string]func(http.ResponseWriter, *http.Request){
			"GET /matches": func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("tournamentId") != "4" {
					t.Errorf("query = %s", r.URL.RawQuery)
				}
				w.Write([]byte(`{"success":true,"statusCode":200,"data":[{"id":1,"date":"2024-05-01","time":"18:00"},{"id":2,"scheduledDate":"2024-05-02T10:00"}]}`))
			},
		})
		got, err := NewRemoteMatchRepository(api).ListByTournament(context.Background(), 4)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].Date != "2024-05-01" || got[1].ScheduledDate != "2024-05-02T10:00" {
			t.Errorf("unexpected records %+v", got)
		}
	})

	t.Run("mistyped record keeps the batch", func(t *testing.T) {
		api := fakeAPI(t, map[string]func(http.ResponseWriter, *http.Request){
			"GET /matches": respond(`[{"id":1,"homeTeamId":1,"awayTeamId":2,"date":"2024-05-01"},{"id":2,"homeTeamId":"3","awayTeamId":true,"date":"2024-05-02"}]`),
		})
		got, err := NewRemoteMatchRepository(api).ListByTournament(context.Background(), 4)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d records, want 2", len(got))
		}
		if got[1].HomeTeamID != 3 || got[1].AwayTeamID != 0 || got[1].Date != "2024-05-02" {
			t.Errorf("second record = %+v", got[1])
		}
	})

	t.Run("not found is empty", func(t *testing.T) {
		api := fakeAPI(t, nil)
		got, err := NewRemoteMatchRepository(api).ListByTournament(context.Background(), 4)
		if err != nil {
			t.Fatal(err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty list, got %v", got)
		}
	})

	t.Run("server error propagates", func(t *testing.T) {
		api := fakeAPI(t, map[string]func(http.ResponseWriter, *http.Request){
			"GET /matches": func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		})
		_, err := NewRemoteMatchRepository(api).ListByTournament(context.Background(), 4)
		if !apiclient.HasStatus(err, http.StatusInternalServerError) {
			t.Errorf("error = %v", err)
		}
	})
}

func TestMatchRepositoryGetByIDNotFound(t *testing.T) {
	api := fakeAPI(t, nil)
	if _, err := NewRemoteMatchRepository(api).GetByID(context.Background(), 99); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("error = %v", err)
	}
}

func TestFixtureRepositorySave(t *testing.T) {
	t.Run("list payload", func(t *testing.T) {
		api := fakeAPI(t, map[string]func(http.ResponseWriter, *http.Request){
			"POST /tournaments/3/matches/fixtures": respond(`{"success":true,"message":"ok","data":[{"homeTeamId":1,"awayTeamId":2,"date":"2024-05-01","time":"18:00","location":"A"}],"statusCode":201}`),
		})
		got, err := NewRemoteFixtureRepository(api).Save(context.Background(), models.FixtureConfiguration{TournamentID: 3, FixtureType: models.FixtureRoundRobin})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Location != "A" {
			t.Errorf("unexpected records %+v", got)
		}
	})

	t.Run("non list payload", func(t *testing.T) {
		api := fakeAPI(t, map[string]func(http.ResponseWriter, *http.Request){
			"POST /tournaments/3/matches/fixtures": respond(`{"success":true,"data":{"count":3}}`),
		})
		_, err := NewRemoteFixtureRepository(api).Save(context.Background(), models.FixtureConfiguration{TournamentID: 3})
		if !errors.Is(err, ErrInvalidFixtureResponse) {
			t.Errorf("error = %v", err)
		}
	})
}

func TestMatchEventRepository(t *testing.T) {
	api := fakeAPI(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /matches/8/events": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("eventType") != "goal" || q.Get("startMinute") != "10" || q.Get("endMinute") != "45" || q.Has("playerId") {
				t.Errorf("query = %s", r.URL.RawQuery)
			}
			w.Write([]byte(`{"success":true,"data":[{"id":1,"matchId":8,"eventType":"goal","minute":12}]}`))
		},
		"GET /matches/events": respond(`{"success":true,"data":null}`),
	})
	repo := NewRemoteMatchEventRepository(api)

	start, end := 10, 45
	events, err := repo.List(context.Background(), 8, models.MatchEventFilter{EventType: models.EventGoal, StartMinute: &start, EndMinute: &end})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Minute != 12 {
		t.Errorf("unexpected events %+v", events)
	}

	byTeam, err := repo.ListByTeam(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if byTeam == nil || len(byTeam) != 0 {
		t.Errorf("non-array data should degrade to empty list, got %v", byTeam)
	}

	if _, err := repo.GetByID(context.Background(), 8, 100); !errors.Is(err, ErrMatchEventNotFound) {
		t.Errorf("error = %v", err)
	}
}
