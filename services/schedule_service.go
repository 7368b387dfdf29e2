package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/tournament-scheduler/models"
	"github.com/Dosada05/tournament-scheduler/repositories"
	"github.com/Dosada05/tournament-scheduler/schedule"
	"golang.org/x/sync/errgroup"
)

// ScheduleListener получает итоговое расписание турнира после сохранения
// или удаления. Пустой срез означает, что расписание очищено.
type ScheduleListener interface {
	ScheduleUpdated(ctx context.Context, tournamentID int, matches []models.CanonicalMatch)
}

type ScheduleService interface {
	LoadTournamentMatches(ctx context.Context, tournamentID int) ([]models.CanonicalMatch, error)
	GetMatch(ctx context.Context, matchID int) (*models.CanonicalMatch, error)
	CreateMultipleMatches(ctx context.Context, tournamentID int, reqs []models.CreateMatchRequest) ([]models.CanonicalMatch, error)
	UpdateMatch(ctx context.Context, matchID int, update models.MatchUpdate) (*models.CanonicalMatch, error)
	DeleteMatch(ctx context.Context, matchID int) error
	DeleteTournamentMatches(ctx context.Context, tournamentID int) (int, error)

	GenerateFixtures(ctx context.Context, req models.FixtureGenerationRequest) ([]models.CanonicalMatch, error)
	SaveFixtures(ctx context.Context, cfg models.FixtureConfiguration) ([]models.CanonicalMatch, error)
	DeleteFixtures(ctx context.Context, tournamentID int) error

	ListSnapshots(ctx context.Context, tournamentID, limit int) ([]models.ScheduleSnapshot, error)
	GetSnapshot(ctx context.Context, snapshotID int) (*models.ScheduleSnapshot, error)
	DeleteSnapshot(ctx context.Context, snapshotID int) error

	GetOverview(ctx context.Context, tournamentID int) (*models.TournamentOverview, error)
}

type scheduleService struct {
	matchRepo   repositories.MatchRepository
	fixtureRepo repositories.FixtureRepository
	configRepo  repositories.ConfigurationRepository
	archiveRepo repositories.ArchiveRepository // nil без DATABASE_URL
	listener    ScheduleListener
	guard       *TournamentGuard
	logger      *slog.Logger
}

func NewScheduleService(
	matchRepo repositories.MatchRepository,
	fixtureRepo repositories.FixtureRepository,
	configRepo repositories.ConfigurationRepository,
	archiveRepo repositories.ArchiveRepository,
	listener ScheduleListener,
	guard *TournamentGuard,
	logger *slog.Logger,
) ScheduleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &scheduleService{
		matchRepo:   matchRepo,
		fixtureRepo: fixtureRepo,
		configRepo:  configRepo,
		archiveRepo: archiveRepo,
		listener:    listener,
		guard:       guardOrNew(guard),
		logger:      logger,
	}
}

func (s *scheduleService) LoadTournamentMatches(ctx context.Context, tournamentID int) ([]models.CanonicalMatch, error) {
	raws, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		s.logger.Error("load matches failed", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return nil, err
	}
	return schedule.ToCanonicalMatchList(raws), nil
}

func (s *scheduleService) GetMatch(ctx context.Context, matchID int) (*models.CanonicalMatch, error) {
	raw, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	m := schedule.ToCanonicalMatch(*raw)
	return &m, nil
}

// CreateMultipleMatches создает матчи по одному и останавливается на первой
// ошибке. Уже созданные матчи возвращаются вместе с ошибкой.
func (s *scheduleService) CreateMultipleMatches(ctx context.Context, tournamentID int, reqs []models.CreateMatchRequest) ([]models.CanonicalMatch, error) {
	release, err := s.guard.Acquire(tournamentID, "create matches")
	if err != nil {
		return nil, err
	}
	defer release()

	created := make([]models.CanonicalMatch, 0, len(reqs))
	for i, req := range reqs {
		req.TournamentID = tournamentID
		raw, err := s.matchRepo.Create(ctx, req)
		if err != nil {
			s.logger.Error("create match failed",
				slog.Int("tournament_id", tournamentID),
				slog.Int("index", i),
				slog.Any("error", err),
			)
			return created, fmt.Errorf("match %d of %d: %w", i+1, len(reqs), err)
		}
		created = append(created, schedule.ToCanonicalMatch(*raw))
	}

	s.logger.Info("matches created", slog.Int("tournament_id", tournamentID), slog.Int("count", len(created)))
	s.publish(ctx, tournamentID)
	return created, nil
}

func (s *scheduleService) UpdateMatch(ctx context.Context, matchID int, update models.MatchUpdate) (*models.CanonicalMatch, error) {
	if update.IsEmpty() {
		return nil, ErrNothingToUpdate
	}
	raw, err := s.matchRepo.Update(ctx, matchID, update)
	if err != nil {
		return nil, err
	}
	m := schedule.ToCanonicalMatch(*raw)
	if m.TournamentID != 0 {
		s.publish(ctx, m.TournamentID)
	}
	return &m, nil
}

func (s *scheduleService) DeleteMatch(ctx context.Context, matchID int) error {
	// турнир нужен для рассылки, после удаления его уже не узнать
	raw, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return err
	}
	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		return err
	}
	if raw.TournamentID != 0 {
		s.publish(ctx, raw.TournamentID)
	}
	return nil
}

// DeleteTournamentMatches удаляет матчи турнира по одному до первой ошибки.
// Возвращает число удаленных.
func (s *scheduleService) DeleteTournamentMatches(ctx context.Context, tournamentID int) (int, error) {
	release, err := s.guard.Acquire(tournamentID, "delete matches")
	if err != nil {
		return 0, err
	}
	defer release()

	raws, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, raw := range raws {
		if raw.ID == nil {
			continue
		}
		if err := s.matchRepo.Delete(ctx, *raw.ID); err != nil {
			return deleted, fmt.Errorf("delete match %d: %w", *raw.ID, err)
		}
		deleted++
	}

	s.logger.Info("tournament matches deleted", slog.Int("tournament_id", tournamentID), slog.Int("count", deleted))
	s.notifyListener(ctx, tournamentID, []models.CanonicalMatch{})
	return deleted, nil
}

func (s *scheduleService) GenerateFixtures(ctx context.Context, req models.FixtureGenerationRequest) ([]models.CanonicalMatch, error) {
	if !req.FixtureType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFixtureType, req.FixtureType)
	}
	release, err := s.guard.Acquire(req.TournamentID, "generate fixtures")
	if err != nil {
		return nil, err
	}
	defer release()

	raws, err := s.fixtureRepo.Generate(ctx, req)
	if err != nil {
		s.logger.Error("generate fixtures failed", slog.Int("tournament_id", req.TournamentID), slog.Any("error", err))
		return nil, err
	}
	return s.afterSave(ctx, req.TournamentID, raws), nil
}

func (s *scheduleService) SaveFixtures(ctx context.Context, cfg models.FixtureConfiguration) ([]models.CanonicalMatch, error) {
	if !cfg.FixtureType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFixtureType, cfg.FixtureType)
	}
	release, err := s.guard.Acquire(cfg.TournamentID, "save fixtures")
	if err != nil {
		return nil, err
	}
	defer release()

	raws, err := s.fixtureRepo.Save(ctx, cfg)
	if err != nil {
		s.logger.Error("save fixtures failed", slog.Int("tournament_id", cfg.TournamentID), slog.Any("error", err))
		return nil, err
	}
	return s.afterSave(ctx, cfg.TournamentID, raws), nil
}

// afterSave нормализует ответ API, архивирует его и сообщает слушателю.
// Ошибки архива только логируются: расписание в API уже сохранено.
func (s *scheduleService) afterSave(ctx context.Context, tournamentID int, raws []models.RawScheduleRecord) []models.CanonicalMatch {
	matches := schedule.ToCanonicalMatchList(raws)

	if s.archiveRepo != nil {
		snapshot := &models.ScheduleSnapshot{TournamentID: tournamentID, Matches: matches}
		if err := s.archiveRepo.Save(ctx, snapshot); err != nil {
			s.logger.Warn("schedule archive failed", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		} else {
			s.logger.Info("schedule archived", slog.Int("tournament_id", tournamentID), slog.Int("snapshot_id", snapshot.ID))
		}
	}

	s.notifyListener(ctx, tournamentID, matches)
	return matches
}

func (s *scheduleService) DeleteFixtures(ctx context.Context, tournamentID int) error {
	release, err := s.guard.Acquire(tournamentID, "delete fixtures")
	if err != nil {
		return err
	}
	defer release()

	if err := s.fixtureRepo.Delete(ctx, tournamentID); err != nil {
		s.logger.Error("delete fixtures failed", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return err
	}
	s.notifyListener(ctx, tournamentID, []models.CanonicalMatch{})
	return nil
}

func (s *scheduleService) ListSnapshots(ctx context.Context, tournamentID, limit int) ([]models.ScheduleSnapshot, error) {
	if s.archiveRepo == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archiveRepo.ListByTournament(ctx, tournamentID, limit)
}

func (s *scheduleService) GetSnapshot(ctx context.Context, snapshotID int) (*models.ScheduleSnapshot, error) {
	if s.archiveRepo == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archiveRepo.GetByID(ctx, snapshotID)
}

func (s *scheduleService) DeleteSnapshot(ctx context.Context, snapshotID int) error {
	if s.archiveRepo == nil {
		return ErrArchiveDisabled
	}
	if err := s.archiveRepo.Delete(ctx, snapshotID); err != nil {
		return err
	}
	s.logger.Info("schedule snapshot deleted", slog.Int("snapshot_id", snapshotID))
	return nil
}

// GetOverview загружает конфигурацию и матчи параллельно. Турнир
// без конфигурации все равно получает свои матчи.
func (s *scheduleService) GetOverview(ctx context.Context, tournamentID int) (*models.TournamentOverview, error) {
	overview := &models.TournamentOverview{TournamentID: tournamentID}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cfg, err := s.configRepo.Get(gCtx, tournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrConfigurationNotFound) {
				return nil
			}
			return fmt.Errorf("load configuration: %w", err)
		}
		overview.Configuration = cfg
		return nil
	})

	g.Go(func() error {
		raws, err := s.matchRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("load matches: %w", err)
		}
		overview.Matches = schedule.ToCanonicalMatchList(raws)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("overview failed", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return nil, err
	}
	return overview, nil
}

// publish перечитывает расписание турнира и передает его слушателю.
func (s *scheduleService) publish(ctx context.Context, tournamentID int) {
	if s.listener == nil {
		return
	}
	matches, err := s.LoadTournamentMatches(ctx, tournamentID)
	if err != nil {
		s.logger.Warn("schedule reload for broadcast failed", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return
	}
	s.listener.ScheduleUpdated(ctx, tournamentID, matches)
}

func (s *scheduleService) notifyListener(ctx context.Context, tournamentID int, matches []models.CanonicalMatch) {
	if s.listener != nil {
		s.listener.ScheduleUpdated(ctx, tournamentID, matches)
	}
}
