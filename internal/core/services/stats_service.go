package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-tracker/internal/core/scoring"
)

// SeriesLookbackDays bounds how far back completions are loaded for charts.
const SeriesLookbackDays = 120

type StatsService struct {
	habitRepo      domain.HabitRepository
	completionRepo domain.CompletionRepository
	settings       *SettingsService
	now            func() time.Time
}

func NewStatsService(habitRepo domain.HabitRepository, completionRepo domain.CompletionRepository, settings *SettingsService) *StatsService {
	return &StatsService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
		settings:       settings,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the source of "today" used when a caller does not pass one.
func (s *StatsService) WithClock(now func() time.Time) *StatsService {
	s.now = now
	return s
}

func (s *StatsService) today() string {
	return domain.FormatDay(s.now())
}

// FoldDailyScores counts, per day, the distinct active habits with a completed row.
// Days without any such completion are left out of the map.
func FoldDailyScores(completions []*domain.Completion, active map[string]struct{}) map[string]int {
	scores := make(map[string]int)
	seen := make(map[[2]string]bool, len(completions))

	for _, c := range completions {
		if c == nil || !c.Completed {
			continue
		}
		if _, ok := active[c.HabitID]; !ok {
			continue
		}
		k := [2]string{c.Day, c.HabitID}
		if seen[k] {
			continue
		}
		seen[k] = true
		scores[c.Day]++
	}

	return scores
}

// GetDay returns the tracker view of one day; an empty day means today.
func (s *StatsService) GetDay(ctx context.Context, userID, day string) (*domain.TrackerDay, error) {
	if day == "" {
		day = s.today()
	}
	if _, err := domain.ParseDay(day); err != nil {
		return nil, err
	}

	settings, err := s.settings.EnsureSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	habits, err := s.habitRepo.ListActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	completions, err := s.completionRepo.ListByDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	active := domain.ActiveHabitIDs(habits)
	completedIDs := make([]string, 0, len(completions))
	done := make(map[string]bool, len(completions))
	for _, c := range completions {
		if !c.Completed || done[c.HabitID] {
			continue
		}
		if _, ok := active[c.HabitID]; !ok {
			continue
		}
		done[c.HabitID] = true
		completedIDs = append(completedIDs, c.HabitID)
	}

	score := scoring.ScoreDay(len(active), len(completedIDs), settings.PassPercentage)
	score.Day = day

	if habits == nil {
		habits = []*domain.Habit{}
	}

	return &domain.TrackerDay{
		Day:               day,
		Habits:            habits,
		CompletedHabitIDs: completedIDs,
		Score:             score,
	}, nil
}

func (s *StatsService) loadScores(ctx context.Context, userID string, today time.Time) (int, map[string]int, error) {
	habits, err := s.habitRepo.ListActiveByUserID(ctx, userID)
	if err != nil {
		return 0, nil, err
	}

	since := domain.FormatDay(today.AddDate(0, 0, -SeriesLookbackDays))
	completions, err := s.completionRepo.ListBetween(ctx, userID, since, domain.FormatDay(today))
	if err != nil {
		return 0, nil, err
	}

	active := domain.ActiveHabitIDs(habits)
	return len(active), FoldDailyScores(completions, active), nil
}

func (s *StatsService) resolveToday(today time.Time) time.Time {
	if today.IsZero() {
		return s.now()
	}
	return today
}

func (s *StatsService) GetCharts(ctx context.Context, input domain.ChartsInput) (*domain.Charts, error) {
	today := s.resolveToday(input.Today)

	total, scores, err := s.loadScores(ctx, input.UserID, today)
	if err != nil {
		return nil, err
	}

	week, month := scoring.CountActiveDays(scores, today)

	series := func(mode domain.BucketMode) []domain.SeriesPoint {
		return scoring.BuildSeries(scoring.SeriesInput{
			Scores:      scores,
			Mode:        mode,
			Today:       today,
			TotalHabits: total,
		})
	}

	return &domain.Charts{
		Today:               domain.FormatDay(today),
		TotalHabits:         total,
		ActiveDaysThisWeek:  week,
		ActiveDaysThisMonth: month,
		DaySeries:           series(domain.BucketDay),
		WeekSeries:          series(domain.BucketWeek),
		MonthSeries:         series(domain.BucketMonth),
	}, nil
}

func (s *StatsService) GetSeries(ctx context.Context, userID string, mode domain.BucketMode, today time.Time) ([]domain.SeriesPoint, error) {
	today = s.resolveToday(today)

	total, scores, err := s.loadScores(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	return scoring.BuildSeries(scoring.SeriesInput{
		Scores:      scores,
		Mode:        mode,
		Today:       today,
		TotalHabits: total,
	}), nil
}
