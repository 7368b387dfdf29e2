package services

import (
	"context"
	"slices"
	"sync"

	"github.com/Dosada05/tournament-scheduler/models"
	"github.com/Dosada05/tournament-scheduler/repositories"
)

type fakeConfigRepo struct {
	mu      sync.Mutex
	configs map[int]*models.TournamentConfiguration
	err     error
	created []models.ConfigurationInput
	block   chan struct{} // если задан, Create ждёт закрытия
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{configs: make(map[int]*models.TournamentConfiguration)}
}

func (f *fakeConfigRepo) Get(_ context.Context, id int) (*models.TournamentConfiguration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	cfg, ok := f.configs[id]
	if !ok {
		return nil, repositories.ErrConfigurationNotFound
	}
	return cfg, nil
}

func (f *fakeConfigRepo) Create(_ context.Context, id int, in models.ConfigurationInput) (*models.TournamentConfiguration, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	cfg := &models.TournamentConfiguration{
		NumberOfGroups:  in.NumberOfGroups,
		TeamsPerGroup:   in.TeamsPerGroup,
		TeamAssignments: in.TeamAssignments,
		IsConfigured:    true,
	}
	f.configs[id] = cfg
	return cfg, nil
}

func (f *fakeConfigRepo) Update(_ context.Context, id int, u models.ConfigurationUpdate) (*models.TournamentConfiguration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cfg, ok := f.configs[id]
	if !ok {
		return nil, repositories.ErrConfigurationNotFound
	}
	in := u.Merge(cfg)
	next := &models.TournamentConfiguration{NumberOfGroups: in.NumberOfGroups, TeamsPerGroup: in.TeamsPerGroup, TeamAssignments: in.TeamAssignments, IsConfigured: true}
	f.configs[id] = next
	return next, nil
}

func (f *fakeConfigRepo) Delete(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.configs[id]; !ok {
		return repositories.ErrConfigurationNotFound
	}
	delete(f.configs, id)
	return nil
}

type fakeMatchRepo struct {
	mu       sync.Mutex
	records  map[int][]models.RawScheduleRecord
	nextID   int
	failAt   int // номер вызова Create, который падает (1-based), 0: никогда
	calls    int
	deleted  []int
	failOnID int
	listErr  error
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{records: make(map[int][]models.RawScheduleRecord), nextID: 1}
}

func (f *fakeMatchRepo) Create(_ context.Context, req models.CreateMatchRequest) (*models.RawScheduleRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failAt != 0 && f.calls == f.failAt {
		return nil, errBoom
	}
	id := f.nextID
	f.nextID++
	rec := models.RawScheduleRecord{
		ID:           &id,
		TournamentID: req.TournamentID,
		HomeTeamID:   req.HomeTeamID,
		AwayTeamID:   req.AwayTeamID,
		MatchDate:    req.MatchDate.Format("2006-01-02T15:04:05Z07:00"),
		Location:     req.Location,
		Status:       "not_started",
	}
	f.records[req.TournamentID] = append(f.records[req.TournamentID], rec)
	return &rec, nil
}

func (f *fakeMatchRepo) ListByTournament(_ context.Context, id int) ([]models.RawScheduleRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.RawScheduleRecord(nil), f.records[id]...), nil
}

func (f *fakeMatchRepo) GetByID(_ context.Context, matchID int) (*models.RawScheduleRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, recs := range f.records {
		for _, r := range recs {
			if r.ID != nil && *r.ID == matchID {
				return &r, nil
			}
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) Update(ctx context.Context, matchID int, u models.MatchUpdate) (*models.RawScheduleRecord, error) {
	rec, err := f.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if u.Status != nil {
		rec.Status = string(*u.Status)
	}
	return rec, nil
}

func (f *fakeMatchRepo) Delete(_ context.Context, matchID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOnID != 0 && matchID == f.failOnID {
		return errBoom
	}
	f.deleted = append(f.deleted, matchID)
	for tid, recs := range f.records {
		f.records[tid] = slices.DeleteFunc(recs, func(r models.RawScheduleRecord) bool {
			return r.ID != nil && *r.ID == matchID
		})
	}
	return nil
}

type fakeFixtureRepo struct {
	records []models.RawScheduleRecord
	err     error
	saved   []models.FixtureConfiguration
	deleted []int
}

func (f *fakeFixtureRepo) Generate(_ context.Context, req models.FixtureGenerationRequest) ([]models.RawScheduleRecord, error) {
	return f.records, f.err
}

func (f *fakeFixtureRepo) Save(_ context.Context, cfg models.FixtureConfiguration) ([]models.RawScheduleRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.saved = append(f.saved, cfg)
	return f.records, nil
}

func (f *fakeFixtureRepo) Delete(_ context.Context, id int) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeArchive struct {
	saved []models.ScheduleSnapshot
	err   error
}

func (f *fakeArchive) EnsureSchema(context.Context) error { return nil }

func (f *fakeArchive) Save(_ context.Context, s *models.ScheduleSnapshot) error {
	if f.err != nil {
		return f.err
	}
	s.ID = len(f.saved) + 1
	s.MatchCount = len(s.Matches)
	f.saved = append(f.saved, *s)
	return nil
}

func (f *fakeArchive) ListByTournament(_ context.Context, id, limit int) ([]models.ScheduleSnapshot, error) {
	var out []models.ScheduleSnapshot
	for _, s := range f.saved {
		if s.TournamentID == id {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeArchive) GetByID(_ context.Context, id int) (*models.ScheduleSnapshot, error) {
	for _, s := range f.saved {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, repositories.ErrSnapshotNotFound
}

func (f *fakeArchive) Delete(_ context.Context, id int) error {
	for i, s := range f.saved {
		if s.ID == id {
			f.saved = append(f.saved[:i], f.saved[i+1:]...)
			return nil
		}
	}
	return repositories.ErrSnapshotNotFound
}

type recordedNotification struct {
	tournamentID int
	n            models.Notification
}

type recordingNotifier struct {
	mu  sync.Mutex
	got []recordedNotification
}

func (r *recordingNotifier) Notify(_ context.Context, id int, n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, recordedNotification{id, n})
}

type recordingListener struct {
	updates map[int][]models.CanonicalMatch
	calls   int
}

func (r *recordingListener) ScheduleUpdated(_ context.Context, id int, matches []models.CanonicalMatch) {
	if r.updates == nil {
		r.updates = make(map[int][]models.CanonicalMatch)
	}
	r.updates[id] = matches
	r.calls++
}

// configRecorder also listens for configuration changes.
type configRecorder struct {
	recordingNotifier
	configs []*models.TournamentConfiguration
}

func (c *configRecorder) ConfigurationUpdated(_ context.Context, _ int, cfg *models.TournamentConfiguration) {
	c.configs = append(c.configs, cfg)
}
