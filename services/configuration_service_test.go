package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Dosada05/tournament-scheduler/apiclient"
	"github.com/Dosada05/tournament-scheduler/brackets"
	"github.com/Dosada05/tournament-scheduler/models"
	"github.com/Dosada05/tournament-scheduler/repositories"
)

var errBoom = errors.New("boom")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

func assignmentsFor(teamIDs []int, groups int) []models.TeamAssignment {
	a, err := brackets.GenerateSequentialAssignments(teamIDs, groups)
	if err != nil {
		panic(err)
	}
	return a
}

func TestCreateConfiguration(t *testing.T) {
	ctx := context.Background()

	t.Run("valid configuration is stored and announced", func(t *testing.T) {
		repo := newFakeConfigRepo()
		notifier := &recordingNotifier{}
		svc := NewConfigurationService(repo, notifier, nil, discardLogger())

		input := models.ConfigurationInput{
			NumberOfGroups:  2,
			TeamsPerGroup:   4,
			TeamAssignments: assignmentsFor([]int{1, 2, 3, 4, 5, 6, 7, 8}, 2),
		}
		cfg, err := svc.CreateConfiguration(ctx, 7, input, intPtr(8))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.NumberOfGroups != 2 || len(cfg.TeamAssignments) != 8 {
			t.Errorf("unexpected configuration %+v", cfg)
		}
		if len(notifier.got) != 1 {
			t.Fatalf("got %d notifications, want 1", len(notifier.got))
		}
		n := notifier.got[0]
		if n.tournamentID != 7 || n.n.Type != models.NotificationSuccess || n.n.Title != "Configuración Creada" {
			t.Errorf("unexpected notification %+v", n)
		}
	})

	t.Run("rule violations are returned together", func(t *testing.T) {
		repo := newFakeConfigRepo()
		notifier := &recordingNotifier{}
		svc := NewConfigurationService(repo, notifier, nil, discardLogger())

		_, err := svc.CreateConfiguration(ctx, 7, models.ConfigurationInput{NumberOfGroups: 0, TeamsPerGroup: 0}, intPtr(3))
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
		if !errors.Is(err, ErrValidationFailed) {
			t.Error("ValidationError should unwrap to ErrValidationFailed")
		}
		if len(vErr.Messages) < 2 {
			t.Errorf("messages = %v, want at least two", vErr.Messages)
		}
		if len(repo.created) != 0 {
			t.Error("invalid configuration must not reach the repository")
		}
		if len(notifier.got) != 1 || notifier.got[0].n.Title != "Error de Configuración" {
			t.Errorf("unexpected notifications %+v", notifier.got)
		}
	})

	t.Run("unknown roster size keeps roster-free rules only", func(t *testing.T) {
		repo := newFakeConfigRepo()
		svc := NewConfigurationService(repo, nil, nil, discardLogger())

		_, err := svc.CreateConfiguration(ctx, 1, models.ConfigurationInput{NumberOfGroups: 3, TeamsPerGroup: 3}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("group ceiling holds without roster size", func(t *testing.T) {
		tests := []struct {
			name  string
			input models.ConfigurationInput
			want  []string
		}{
			{"too many groups", models.ConfigurationInput{NumberOfGroups: 50, TeamsPerGroup: 2}, []string{brackets.MsgMaxGroups}},
			{"zero sizes", models.ConfigurationInput{NumberOfGroups: 0, TeamsPerGroup: 0}, []string{brackets.MsgGroupsMustBePositive, brackets.MsgTeamsPerGroupPositive}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := newFakeConfigRepo()
				svc := NewConfigurationService(repo, nil, nil, discardLogger())

				_, err := svc.CreateConfiguration(ctx, 1, tt.input, nil)
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("error = %v, want *ValidationError", err)
				}
				if len(vErr.Messages) != len(tt.want) {
					t.Fatalf("messages = %v, want %v", vErr.Messages, tt.want)
				}
				for i := range tt.want {
					if vErr.Messages[i] != tt.want[i] {
						t.Errorf("message %d = %q, want %q", i, vErr.Messages[i], tt.want[i])
					}
				}
				if len(repo.created) != 0 {
					t.Error("invalid configuration must not reach the repository")
				}
			})
		}
	})

	t.Run("broken assignments are rejected without roster size", func(t *testing.T) {
		repo := newFakeConfigRepo()
		svc := NewConfigurationService(repo, nil, nil, discardLogger())

		input := models.ConfigurationInput{
			NumberOfGroups: 2,
			TeamsPerGroup:  2,
			TeamAssignments: []models.TeamAssignment{
				{TeamID: 1, GroupLabel: "A"},
				{TeamID: 1, GroupLabel: "B"},
			},
		}
		_, err := svc.CreateConfiguration(ctx, 1, input, nil)
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("error = %v, want ErrValidationFailed", err)
		}
	})

	t.Run("api message reaches the notification", func(t *testing.T) {
		repo := newFakeConfigRepo()
		repo.err = &apiclient.APIError{StatusCode: 400, Message: "Torneo cerrado"}
		notifier := &recordingNotifier{}
		svc := NewConfigurationService(repo, notifier, nil, discardLogger())

		_, err := svc.CreateConfiguration(ctx, 1, models.ConfigurationInput{NumberOfGroups: 1, TeamsPerGroup: 2}, nil)
		if err == nil {
			t.Fatal("expected error")
		}
		if got := notifier.got[0].n.Message; got != "Torneo cerrado" {
			t.Errorf("message = %q", got)
		}
	})
}

func TestConcurrentOperationIsRejected(t *testing.T) {
	ctx := context.Background()
	repo := newFakeConfigRepo()
	repo.block = make(chan struct{})
	notifier := &recordingNotifier{}
	guard := NewTournamentGuard()
	svc := NewConfigurationService(repo, notifier, guard, discardLogger())

	done := make(chan error, 1)
	go func() {
		_, err := svc.CreateConfiguration(ctx, 4, models.ConfigurationInput{NumberOfGroups: 1, TeamsPerGroup: 2}, nil)
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, busy := guard.Busy(4); busy {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("first operation never acquired the guard")
		}
		time.Sleep(time.Millisecond)
	}

	if err := svc.DeleteConfiguration(ctx, 4); !errors.Is(err, ErrOperationInProgress) {
		t.Errorf("error = %v, want ErrOperationInProgress", err)
	}
	// другой турнир не блокируется
	release, err := guard.Acquire(5, "other")
	if err != nil {
		t.Errorf("tournament 5 should be free: %v", err)
	} else {
		release()
	}

	close(repo.block)
	if err := <-done; err != nil {
		t.Fatalf("first operation failed: %v", err)
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	for _, n := range notifier.got {
		if n.tournamentID == 4 && n.n.Type == models.NotificationError {
			t.Errorf("rejected operation must not notify, got %+v", n)
		}
	}
}

func TestUpdateConfiguration(t *testing.T) {
	ctx := context.Background()

	t.Run("empty update", func(t *testing.T) {
		svc := NewConfigurationService(newFakeConfigRepo(), nil, nil, discardLogger())
		_, err := svc.UpdateConfiguration(ctx, 1, models.ConfigurationUpdate{}, nil)
		if !errors.Is(err, ErrNothingToUpdate) {
			t.Errorf("error = %v, want ErrNothingToUpdate", err)
		}
	})

	t.Run("merged configuration is validated", func(t *testing.T) {
		repo := newFakeConfigRepo()
		repo.configs[1] = &models.TournamentConfiguration{NumberOfGroups: 2, TeamsPerGroup: 4}
		notifier := &recordingNotifier{}
		svc := NewConfigurationService(repo, notifier, nil, discardLogger())

		groups := 9
		_, err := svc.UpdateConfiguration(ctx, 1, models.ConfigurationUpdate{NumberOfGroups: &groups}, intPtr(8))
		if !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("error = %v, want ErrValidationFailed", err)
		}
		if notifier.got[0].n.Title != "Error de Actualización" {
			t.Errorf("title = %q", notifier.got[0].n.Title)
		}
	})

	t.Run("group ceiling holds without roster size", func(t *testing.T) {
		repo := newFakeConfigRepo()
		repo.configs[1] = &models.TournamentConfiguration{NumberOfGroups: 2, TeamsPerGroup: 4}
		svc := NewConfigurationService(repo, nil, nil, discardLogger())

		groups := 40
		_, err := svc.UpdateConfiguration(ctx, 1, models.ConfigurationUpdate{NumberOfGroups: &groups}, nil)
		if !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("error = %v, want ErrValidationFailed", err)
		}
		if got := repo.configs[1].NumberOfGroups; got != 2 {
			t.Errorf("stored numberOfGroups = %d, want 2", got)
		}
	})

	t.Run("flag-only update is not validated", func(t *testing.T) {
		repo := newFakeConfigRepo()
		repo.configs[1] = &models.TournamentConfiguration{NumberOfGroups: 2, TeamsPerGroup: 4}
		svc := NewConfigurationService(repo, nil, nil, discardLogger())

		done := false
		if _, err := svc.UpdateConfiguration(ctx, 1, models.ConfigurationUpdate{IsConfigured: &done}, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		repo := newFakeConfigRepo()
		repo.configs[1] = &models.TournamentConfiguration{NumberOfGroups: 2, TeamsPerGroup: 4}
		notifier := &recordingNotifier{}
		svc := NewConfigurationService(repo, notifier, nil, discardLogger())

		per := 5
		cfg, err := svc.UpdateConfiguration(ctx, 1, models.ConfigurationUpdate{TeamsPerGroup: &per}, intPtr(10))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.TeamsPerGroup != 5 || cfg.NumberOfGroups != 2 {
			t.Errorf("unexpected configuration %+v", cfg)
		}
		if notifier.got[0].n.Title != "Configuración Actualizada" {
			t.Errorf("title = %q", notifier.got[0].n.Title)
		}
	})
}

func TestDeleteAndHasConfiguration(t *testing.T) {
	ctx := context.Background()
	repo := newFakeConfigRepo()
	repo.configs[2] = &models.TournamentConfiguration{NumberOfGroups: 1, TeamsPerGroup: 2}
	notifier := &recordingNotifier{}
	svc := NewConfigurationService(repo, notifier, nil, discardLogger())

	if !svc.HasConfiguration(ctx, 2) {
		t.Fatal("HasConfiguration = false before delete")
	}
	if err := svc.DeleteConfiguration(ctx, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.HasConfiguration(ctx, 2) {
		t.Error("HasConfiguration = true after delete")
	}
	if _, err := svc.LoadConfiguration(ctx, 2); !errors.Is(err, repositories.ErrConfigurationNotFound) {
		t.Errorf("error = %v, want ErrConfigurationNotFound", err)
	}

	err := svc.DeleteConfiguration(ctx, 2)
	if !errors.Is(err, ErrConfigurationNotFound) {
		t.Errorf("error = %v, want ErrConfigurationNotFound", err)
	}
	last := notifier.got[len(notifier.got)-1]
	if last.n.Title != "Error de Eliminación" || last.n.Message != ErrConfigurationNotFound.Error() {
		t.Errorf("unexpected notification %+v", last)
	}
}

func TestGenerateAssignments(t *testing.T) {
	svc := NewConfigurationService(newFakeConfigRepo(), nil, nil, discardLogger())

	for _, n := range []int{0, 9} {
		if _, err := svc.GenerateAssignments([]int{1, 2}, n, false); !errors.Is(err, ErrInvalidGroupCount) {
			t.Errorf("groups=%d: error = %v, want ErrInvalidGroupCount", n, err)
		}
	}

	got, err := svc.GenerateAssignments([]int{10, 11, 12, 13}, 2, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"A", "B", "A", "B"}
	for i, a := range got {
		if a.GroupLabel != want[i] {
			t.Errorf("assignment %d in group %q, want %q", i, a.GroupLabel, want[i])
		}
	}

	shuffled, err := svc.GenerateAssignments([]int{10, 11, 12, 13}, 2, true)
	if err != nil || len(shuffled) != 4 {
		t.Fatalf("shuffle: %v, %d assignments", err, len(shuffled))
	}
}

func TestConfigurationChangesReachListener(t *testing.T) {
	ctx := context.Background()
	repo := newFakeConfigRepo()
	notifier := &configRecorder{}
	svc := NewConfigurationService(repo, notifier, nil, discardLogger())

	if _, err := svc.CreateConfiguration(ctx, 2, models.ConfigurationInput{NumberOfGroups: 1, TeamsPerGroup: 2}, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateConfiguration(ctx, 2, models.ConfigurationInput{NumberOfGroups: 9, TeamsPerGroup: 1}, intPtr(4)); err == nil {
		t.Fatal("expected a validation error")
	}
	if err := svc.DeleteConfiguration(ctx, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// неудачное создание слушателю не сообщается
	if len(notifier.configs) != 2 {
		t.Fatalf("got %d configuration updates, want 2", len(notifier.configs))
	}
	if notifier.configs[0] == nil || notifier.configs[0].NumberOfGroups != 1 {
		t.Errorf("first update = %+v", notifier.configs[0])
	}
	if notifier.configs[1] != nil {
		t.Errorf("delete should report a nil configuration, got %+v", notifier.configs[1])
	}
}
