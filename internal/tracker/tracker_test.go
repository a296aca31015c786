package tracker_test

import (
	"context"
	"testing"
	"time"

	statestore "github.com/DubjamMusic/hustlecodex/internal/adapters/statestore"
	"github.com/DubjamMusic/hustlecodex/internal/domain/model"
	tracker "github.com/DubjamMusic/hustlecodex/internal/tracker"
	"github.com/DubjamMusic/hustlecodex/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func perf(total float64) model.TeamPerformance {
	return model.TeamPerformance{
		Team:          model.TeamAlpha,
		Quality:       total,
		Speed:         total,
		Collaboration: total,
		Innovation:    total,
		Total:         total,
	}
}

func newTracker(ctx context.Context) (*tracker.Tracker, statestore.Store) {
	store := statestore.NewMemoryStore(ctx)
	fixed := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	trk := tracker.New(store, tracker.WithClock(func() time.Time { return fixed }))
	return trk, store
}

func TestTracker_RecordPerformance(t *testing.T) {
	Convey("Given a tracker over a fresh store", t, func() {
		ctx := context.Background()
		trk, store := newTracker(ctx)
		defer store.Close()

		Convey("When recording a performance", func() {
			err := trk.RecordPerformance(ctx, model.TeamAlpha, perf(80), model.PeriodDaily)
			So(err, ShouldBeNil)

			Convey("Then the team stats update", func() {
				stats, err := trk.GetTeamStats(ctx, model.TeamAlpha, model.PeriodDaily)
				So(err, ShouldBeNil)
				So(stats.TotalExecutions, ShouldEqual, 1)
				So(stats.AverageScore, ShouldAlmostEqual, 80.0, 0.001)
				So(stats.BestScore, ShouldAlmostEqual, 80.0, 0.001)
				So(stats.LastUpdated.IsZero(), ShouldBeFalse)
			})
		})

		Convey("When recording several performances", func() {
			So(trk.RecordPerformance(ctx, model.TeamAlpha, perf(60), model.PeriodDaily), ShouldBeNil)
			So(trk.RecordPerformance(ctx, model.TeamAlpha, perf(90), model.PeriodDaily), ShouldBeNil)
			So(trk.RecordPerformance(ctx, model.TeamAlpha, perf(75), model.PeriodDaily), ShouldBeNil)

			stats, err := trk.GetTeamStats(ctx, model.TeamAlpha, model.PeriodDaily)
			So(err, ShouldBeNil)

			Convey("Then the running average is exact", func() {
				So(stats.TotalExecutions, ShouldEqual, 3)
				So(stats.AverageScore, ShouldAlmostEqual, 75.0, 0.001)
			})

			Convey("And the best score is retained", func() {
				So(stats.BestScore, ShouldAlmostEqual, 90.0, 0.001)
			})
		})
	})
}

func TestTracker_RecordWin(t *testing.T) {
	Convey("Given a tracker", t, func() {
		ctx := context.Background()
		trk, store := newTracker(ctx)
		defer store.Close()

		Convey("When alpha wins twice", func() {
			So(trk.RecordWin(ctx, model.TeamAlpha), ShouldBeNil)
			So(trk.RecordWin(ctx, model.TeamAlpha), ShouldBeNil)

			Convey("Then alpha's streak and wins grow in every period", func() {
				for _, period := range model.Periods() {
					stats, err := trk.GetTeamStats(ctx, model.TeamAlpha, period)
					So(err, ShouldBeNil)
					So(stats.Wins, ShouldEqual, 2)
					So(stats.WinStreak, ShouldEqual, 2)
				}
			})

			Convey("And omega accumulates losses with a zero streak", func() {
				stats, err := trk.GetTeamStats(ctx, model.TeamOmega, model.PeriodDaily)
				So(err, ShouldBeNil)
				So(stats.Losses, ShouldEqual, 2)
				So(stats.WinStreak, ShouldEqual, 0)
			})

			Convey("And a subsequent tie resets alpha's streak", func() {
				So(trk.RecordWin(ctx, model.TeamTie), ShouldBeNil)

				stats, err := trk.GetTeamStats(ctx, model.TeamAlpha, model.PeriodDaily)
				So(err, ShouldBeNil)
				So(stats.Wins, ShouldEqual, 2)
				So(stats.Ties, ShouldEqual, 1)
				So(stats.WinStreak, ShouldEqual, 0)
			})

			Convey("And an omega win resets alpha's streak via a loss", func() {
				So(trk.RecordWin(ctx, model.TeamOmega), ShouldBeNil)

				alpha, err := trk.GetTeamStats(ctx, model.TeamAlpha, model.PeriodDaily)
				So(err, ShouldBeNil)
				So(alpha.WinStreak, ShouldEqual, 0)
				So(alpha.Losses, ShouldEqual, 1)

				omega, err := trk.GetTeamStats(ctx, model.TeamOmega, model.PeriodDaily)
				So(err, ShouldBeNil)
				So(omega.WinStreak, ShouldEqual, 1)
				So(omega.Wins, ShouldEqual, 1)
			})
		})
	})
}

func TestTracker_StatsAndLeaderboard(t *testing.T) {
	Convey("Given a tracker with no recorded data", t, func() {
		ctx := context.Background()
		trk, store := newTracker(ctx)
		defer store.Close()

		Convey("When reading stats for an untouched team", func() {
			stats, err := trk.GetTeamStats(ctx, model.TeamOmega, model.PeriodYearly)
			So(err, ShouldBeNil)

			Convey("Then a zeroed default comes back", func() {
				So(stats.Team, ShouldEqual, model.TeamOmega)
				So(stats.TotalExecutions, ShouldEqual, 0)
				So(stats.Wins, ShouldEqual, 0)
				So(stats.LastUpdated.IsZero(), ShouldBeTrue)
			})

			Convey("And repeated reads return identical values", func() {
				again, err := trk.GetTeamStats(ctx, model.TeamOmega, model.PeriodYearly)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, stats)
			})
		})

		Convey("When assembling the leaderboard", func() {
			So(trk.RecordWin(ctx, model.TeamAlpha), ShouldBeNil)

			board, err := trk.Leaderboard(ctx)
			So(err, ShouldBeNil)

			Convey("Then all three periods carry both teams", func() {
				So(board.Daily, ShouldContainKey, model.TeamAlpha)
				So(board.Daily, ShouldContainKey, model.TeamOmega)
				So(board.Monthly[model.TeamAlpha].Wins, ShouldEqual, 1)
				So(board.Yearly[model.TeamAlpha].Wins, ShouldEqual, 1)
			})

			Convey("And the MVP list is reserved but empty", func() {
				So(board.MVPAgents, ShouldBeEmpty)
			})
		})
	})
}

func TestTracker_ResetStats(t *testing.T) {
	Convey("Given a tracker with recorded data", t, func() {
		ctx := context.Background()
		trk, store := newTracker(ctx)
		defer store.Close()

		So(trk.RecordPerformance(ctx, model.TeamAlpha, perf(80), model.PeriodDaily), ShouldBeNil)
		So(trk.RecordWin(ctx, model.TeamAlpha), ShouldBeNil)

		Convey("When resetting the daily period", func() {
			So(trk.ResetStats(ctx, "daily"), ShouldBeNil)

			Convey("Then daily stats are zeroed", func() {
				stats, err := trk.GetTeamStats(ctx, model.TeamAlpha, model.PeriodDaily)
				So(err, ShouldBeNil)
				So(stats.Wins, ShouldEqual, 0)
				So(stats.TotalExecutions, ShouldEqual, 0)
			})

			Convey("And the other periods survive", func() {
				stats, err := trk.GetTeamStats(ctx, model.TeamAlpha, model.PeriodMonthly)
				So(err, ShouldBeNil)
				So(stats.Wins, ShouldEqual, 1)
			})
		})

		Convey("When resetting everything", func() {
			So(trk.ResetStats(ctx, tracker.PeriodAll), ShouldBeNil)

			for _, period := range model.Periods() {
				stats, err := trk.GetTeamStats(ctx, model.TeamAlpha, period)
				So(err, ShouldBeNil)
				So(stats.Wins, ShouldEqual, 0)
			}
		})

		Convey("When an unknown period is requested", func() {
			err := trk.ResetStats(ctx, "weekly")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "invalid period")
		})
	})
}
