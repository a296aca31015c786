package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/DubjamMusic/hustlecodex/internal/adapters/http/api"
	"github.com/DubjamMusic/hustlecodex/internal/domain/model"
	orchestrator "github.com/DubjamMusic/hustlecodex/internal/orchestrator"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeDeps is a canned Dependencies implementation.
type fakeDeps struct {
	lastRequest orchestrator.Request
	lastPeriod  string
}

func (f *fakeDeps) ExecuteDirective(_ context.Context, req orchestrator.Request) (orchestrator.Result, error) {
	f.lastRequest = req
	return orchestrator.Result{
		ExecutionID: "exec_1_abcd",
		Outputs: map[model.Team][]model.AgentOutput{
			model.TeamAlpha: {{AgentName: "Cipher", Team: model.TeamAlpha, Content: "raw cipher analysis"}},
		},
		Validations: map[model.Team][]model.ValidationReport{},
		Judgment:    model.ModeratorJudgment{WinningTeam: model.TeamAlpha},
	}, nil
}

func (f *fakeDeps) Execution(_ context.Context, id string) (model.ExecutionRecord, error) {
	if id != "exec_1_abcd" {
		return model.ExecutionRecord{}, orchestrator.ErrNotFound
	}
	return model.ExecutionRecord{
		ExecutionID: id,
		Judgment:    model.ModeratorJudgment{WinningTeam: model.TeamAlpha},
	}, nil
}

func (f *fakeDeps) Leaderboard(context.Context) (model.Leaderboard, error) {
	stats := model.TeamStats{Team: model.TeamAlpha, Wins: 2}
	return model.Leaderboard{
		Daily:   map[model.Team]model.TeamStats{model.TeamAlpha: stats},
		Monthly: map[model.Team]model.TeamStats{model.TeamAlpha: stats},
		Yearly:  map[model.Team]model.TeamStats{model.TeamAlpha: stats},
	}, nil
}

func (f *fakeDeps) ResetScores(_ context.Context, period string) error {
	f.lastPeriod = period
	return nil
}

type fakeStats struct{}

func (fakeStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newMux(deps api.Dependencies) *http.ServeMux {
	server := api.NewServer(deps, fakeStats{},
		api.WithAdminCode("sekrit"),
		api.WithMaxDirectiveChars(50),
	)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func TestDirectivesEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := &fakeDeps{}
		mux := newMux(deps)

		Convey("When posting a valid directive", func() {
			body := `{"directive":"expand the market"}`
			req := httptest.NewRequest(http.MethodPost, "/directives", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the execution result is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "exec_1_abcd")
			})

			Convey("And competition mode defaults to on", func() {
				So(deps.lastRequest.CompetitionMode, ShouldBeTrue)
			})

			Convey("And raw agent outputs are omitted", func() {
				So(rec.Body.String(), ShouldNotContainSubstring, "outputs")
				So(rec.Body.String(), ShouldNotContainSubstring, "raw cipher analysis")
				So(rec.Body.String(), ShouldContainSubstring, "validations")
			})
		})

		Convey("When posting with include_details", func() {
			body := `{"directive":"expand the market","include_details":true}`
			req := httptest.NewRequest(http.MethodPost, "/directives", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then raw agent outputs are included", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "raw cipher analysis")
			})
		})

		Convey("When the directive is empty", func() {
			req := httptest.NewRequest(http.MethodPost, "/directives", strings.NewReader(`{"directive":"  "}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the body is not JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/directives", strings.NewReader("{nope"))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the directive is oversized", func() {
			long := strings.Repeat("x", 200)
			req := httptest.NewRequest(http.MethodPost, "/directives", strings.NewReader(`{"directive":"`+long+`"}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it is truncated rather than rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastRequest.Directive, ShouldHaveLength, 50)
			})
		})

		Convey("When competition mode is explicitly off", func() {
			req := httptest.NewRequest(http.MethodPost, "/directives", strings.NewReader(`{"directive":"d","competition_mode":false}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.lastRequest.CompetitionMode, ShouldBeFalse)
		})
	})
}

func TestExecutionsEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		mux := newMux(&fakeDeps{})

		Convey("A stored execution is retrievable", func() {
			req := httptest.NewRequest(http.MethodGet, "/executions/exec_1_abcd", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)

			var record model.ExecutionRecord
			So(json.Unmarshal(rec.Body.Bytes(), &record), ShouldBeNil)
			So(record.Judgment.WinningTeam, ShouldEqual, model.TeamAlpha)
		})

		Convey("An unknown id yields 404", func() {
			req := httptest.NewRequest(http.MethodGet, "/executions/exec_gone", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("A missing id yields 400", func() {
			req := httptest.NewRequest(http.MethodGet, "/executions/", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestLeaderboardEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		mux := newMux(&fakeDeps{})

		Convey("The full board is returned without a period", func() {
			req := httptest.NewRequest(http.MethodGet, "/leaderboard", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "daily")
			So(rec.Body.String(), ShouldContainSubstring, "yearly")
		})

		Convey("A period query scopes the response", func() {
			req := httptest.NewRequest(http.MethodGet, "/leaderboard?period=monthly", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"period":"monthly"`)
		})

		Convey("An unknown period yields 400", func() {
			req := httptest.NewRequest(http.MethodGet, "/leaderboard?period=weekly", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestAdminResetEndpoint(t *testing.T) {
	Convey("Given the API server with an admin code", t, func() {
		deps := &fakeDeps{}
		mux := newMux(deps)

		Convey("The right code performs the reset", func() {
			body := `{"period":"daily","confirm_code":"sekrit"}`
			req := httptest.NewRequest(http.MethodPost, "/admin/reset", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.lastPeriod, ShouldEqual, "daily")
		})

		Convey("A missing period defaults to all", func() {
			body := `{"confirm_code":"sekrit"}`
			req := httptest.NewRequest(http.MethodPost, "/admin/reset", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.lastPeriod, ShouldEqual, "all")
		})

		Convey("A wrong code yields 403", func() {
			body := `{"period":"daily","confirm_code":"guess"}`
			req := httptest.NewRequest(http.MethodPost, "/admin/reset", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusForbidden)
			So(deps.lastPeriod, ShouldBeEmpty)
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		mux := newMux(&fakeDeps{})

		Convey("Stats are served as JSON", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "started")
		})
	})
}
