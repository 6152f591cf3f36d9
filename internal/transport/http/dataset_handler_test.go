package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kSibalic/nba/internal/dataprocessing"
	apierrors "github.com/kSibalic/nba/internal/errors"
	mw "github.com/kSibalic/nba/internal/middleware"
	"github.com/kSibalic/nba/internal/services"
	"github.com/kSibalic/nba/internal/shared/testutil"
	"github.com/kSibalic/nba/pkg/contracts/domain"
)

// MockStatsService is a mock implementation of StatsServiceInterface
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Table(ctx context.Context, kind string, n int) ([]dataprocessing.TableRow, error) {
	args := m.Called(kind, n)
	rows, _ := args.Get(0).([]dataprocessing.TableRow)
	return rows, args.Error(1)
}

func (m *MockStatsService) Summary(ctx context.Context, kind string) (domain.SeasonSummary, error) {
	args := m.Called(kind)
	return args.Get(0).(domain.SeasonSummary), args.Error(1)
}

func (m *MockStatsService) TopPlayers(ctx context.Context, kind, field string, n int, dir dataprocessing.Direction, dedup bool) ([]domain.PlayerRecord, error) {
	args := m.Called(kind, field, n, dir, dedup)
	recs, _ := args.Get(0).([]domain.PlayerRecord)
	return recs, args.Error(1)
}

func (m *MockStatsService) TeamAverages(ctx context.Context, kind, field string) ([]domain.TeamAggregate, error) {
	args := m.Called(kind, field)
	teams, _ := args.Get(0).([]domain.TeamAggregate)
	return teams, args.Error(1)
}

func (m *MockStatsService) Histogram(ctx context.Context, kind, field string, bins int) ([]domain.HistogramBucket, error) {
	args := m.Called(kind, field, bins)
	buckets, _ := args.Get(0).([]domain.HistogramBucket)
	return buckets, args.Error(1)
}

func (m *MockStatsService) Impact(ctx context.Context, kind string, n int) ([]domain.PlayerImpact, error) {
	args := m.Called(kind, n)
	impact, _ := args.Get(0).([]domain.PlayerImpact)
	return impact, args.Error(1)
}

func (m *MockStatsService) Radar(ctx context.Context, kind string, n int) ([]domain.RadarProfile, error) {
	args := m.Called(kind, n)
	profiles, _ := args.Get(0).([]domain.RadarProfile)
	return profiles, args.Error(1)
}

func (m *MockStatsService) ShootingLeaders(ctx context.Context, kind string, n int) ([]domain.ShootingLeader, error) {
	args := m.Called(kind, n)
	leaders, _ := args.Get(0).([]domain.ShootingLeader)
	return leaders, args.Error(1)
}

func (m *MockStatsService) Players(ctx context.Context, kind string) ([]string, error) {
	args := m.Called(kind)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *MockStatsService) Player(ctx context.Context, kind, name string) (services.PlayerDetail, error) {
	args := m.Called(kind, name)
	return args.Get(0).(services.PlayerDetail), args.Error(1)
}

func (m *MockStatsService) Shots(ctx context.Context, kind, name string, n int) (domain.ShotChart, error) {
	args := m.Called(kind, name, n)
	return args.Get(0).(domain.ShotChart), args.Error(1)
}

func (m *MockStatsService) LeagueAverages(ctx context.Context, kind string) (map[string]float64, error) {
	args := m.Called(kind)
	avgs, _ := args.Get(0).(map[string]float64)
	return avgs, args.Error(1)
}

func (m *MockStatsService) TeamEfficiency(ctx context.Context, kind string) ([]domain.TeamEfficiency, error) {
	args := m.Called(kind)
	teams, _ := args.Get(0).([]domain.TeamEfficiency)
	return teams, args.Error(1)
}

func setupRouter(t *testing.T, svc StatsServiceInterface) http.Handler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	eh := apierrors.NewErrorHandler(logger, false)
	h := NewDatasetHandler(svc, mw.NewValidationMiddleware(logger), logger, eh)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Mount("/api/datasets", h.Routes())
	return r
}

func doGet(t *testing.T, router http.Handler, target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestDatasetHandler_GetTop(t *testing.T) {
	tatum := domain.PlayerRecord{Player: "Jayson Tatum", Team: "BOS", Points: 30.1}
	brown := domain.PlayerRecord{Player: "Jaylen Brown", Team: "BOS", Points: 26.6}

	tests := []struct {
		name           string
		query          url.Values
		setupMock      func(*MockStatsService)
		expectedStatus int
		expectedCount  float64
		expectedCode   string
	}{
		{
			name:  "defaults",
			query: url.Values{},
			setupMock: func(m *MockStatsService) {
				m.On("TopPlayers", "regular", "PTS", 0, dataprocessing.Descending, false).
					Return([]domain.PlayerRecord{tatum, brown}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:  "explicit parameters",
			query: url.Values{"stat": {"AST"}, "n": {"1"}, "order": {"asc"}, "dedup": {"true"}},
			setupMock: func(m *MockStatsService) {
				m.On("TopPlayers", "regular", "AST", 1, dataprocessing.Ascending, true).
					Return([]domain.PlayerRecord{brown}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name:           "unknown stat",
			query:          url.Values{"stat": {"DUNKS"}},
			setupMock:      func(m *MockStatsService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:           "bad n",
			query:          url.Values{"n": {"lots"}},
			setupMock:      func(m *MockStatsService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_PARAMETER",
		},
		{
			name:  "unknown dataset",
			query: url.Values{},
			setupMock: func(m *MockStatsService) {
				m.On("TopPlayers", "regular", "PTS", 0, dataprocessing.Descending, false).
					Return(nil, apierrors.NewNotFoundError("dataset"))
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockStatsService)
			tt.setupMock(svc)
			router := setupRouter(t, svc)

			rec, body := doGet(t, router, "/api/datasets/regular/top?"+tt.query.Encode())

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, body["error_code"])
				assert.NotEmpty(t, body["trace_id"])
			} else {
				assert.Equal(t, "success", body["status"])
				assert.Equal(t, tt.expectedCount, body["count"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestDatasetHandler_SimpleRoutes(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		setupMock func(*MockStatsService)
		wantCount float64
	}{
		{
			name: "table",
			path: "/api/datasets/playoff/table?n=1",
			setupMock: func(m *MockStatsService) {
				m.On("Table", "playoff", 1).Return([]dataprocessing.TableRow{{Player: "Jayson Tatum"}}, nil)
			},
			wantCount: 1,
		},
		{
			name: "summary",
			path: "/api/datasets/regular/summary",
			setupMock: func(m *MockStatsService) {
				m.On("Summary", "regular").Return(domain.SeasonSummary{Players: 6}, nil)
			},
			wantCount: 6,
		},
		{
			name: "team averages default stat",
			path: "/api/datasets/regular/teams/averages",
			setupMock: func(m *MockStatsService) {
				m.On("TeamAverages", "regular", "PTS").Return([]domain.TeamAggregate{{Team: "BOS"}}, nil)
			},
			wantCount: 1,
		},
		{
			name: "team efficiency",
			path: "/api/datasets/regular/teams/efficiency",
			setupMock: func(m *MockStatsService) {
				m.On("TeamEfficiency", "regular").Return([]domain.TeamEfficiency{{Team: "BOS"}, {Team: "NYK"}}, nil)
			},
			wantCount: 2,
		},
		{
			name: "histogram",
			path: "/api/datasets/regular/histogram?stat=TRB&bins=4",
			setupMock: func(m *MockStatsService) {
				m.On("Histogram", "regular", "TRB", 4).Return(make([]domain.HistogramBucket, 4), nil)
			},
			wantCount: 4,
		},
		{
			name: "impact",
			path: "/api/datasets/regular/impact?n=3",
			setupMock: func(m *MockStatsService) {
				m.On("Impact", "regular", 3).Return(make([]domain.PlayerImpact, 3), nil)
			},
			wantCount: 3,
		},
		{
			name: "radar",
			path: "/api/datasets/regular/radar",
			setupMock: func(m *MockStatsService) {
				m.On("Radar", "regular", 0).Return(make([]domain.RadarProfile, 5), nil)
			},
			wantCount: 5,
		},
		{
			name: "shooting",
			path: "/api/datasets/regular/shooting?n=2",
			setupMock: func(m *MockStatsService) {
				m.On("ShootingLeaders", "regular", 2).Return(make([]domain.ShootingLeader, 2), nil)
			},
			wantCount: 2,
		},
		{
			name: "league",
			path: "/api/datasets/regular/league",
			setupMock: func(m *MockStatsService) {
				m.On("LeagueAverages", "regular").Return(map[string]float64{"PTS": 20, "AST": 5}, nil)
			},
			wantCount: 2,
		},
		{
			name: "players",
			path: "/api/datasets/regular/players",
			setupMock: func(m *MockStatsService) {
				m.On("Players", "regular").Return([]string{"A", "B", "C"}, nil)
			},
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockStatsService)
			tt.setupMock(svc)

			rec, body := doGet(t, setupRouter(t, svc), tt.path)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, "success", body["status"])
			assert.Equal(t, tt.wantCount, body["count"])
			svc.AssertExpectations(t)
		})
	}
}

func TestDatasetHandler_Player(t *testing.T) {
	svc := new(MockStatsService)
	svc.On("Player", "regular", "Jayson Tatum").Return(services.PlayerDetail{
		Record: domain.PlayerRecord{Player: "Jayson Tatum", Team: "BOS"},
		Impact: 43.5,
	}, nil)
	svc.On("Player", "regular", "Nobody").Return(services.PlayerDetail{}, apierrors.NewNotFoundError("player"))

	router := setupRouter(t, svc)

	rec, body := doGet(t, router, "/api/datasets/regular/players/Jayson%20Tatum")
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, 43.5, data["impact"])

	rec, body = doGet(t, router, "/api/datasets/regular/players/Nobody")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "player not found", body["detail"])

	svc.AssertExpectations(t)
}

func TestDatasetHandler_Shots(t *testing.T) {
	svc := new(MockStatsService)
	svc.On("Shots", "regular", "Jayson Tatum", 30).Return(domain.ShotChart{
		Player:    "Jayson Tatum",
		Synthetic: true,
		Shots:     make([]domain.Shot, 31),
	}, nil)

	rec, body := doGet(t, setupRouter(t, svc), "/api/datasets/regular/players/Jayson%20Tatum/shots?n=30")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(31), body["count"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["synthetic"])
	svc.AssertExpectations(t)

	rec, _ = doGet(t, setupRouter(t, new(MockStatsService)), "/api/datasets/regular/players/Jayson%20Tatum/shots?n=5000")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDatasetHandler_ServiceErrorsMapToProblems(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{name: "not found", err: apierrors.NewNotFoundError("dataset"), wantStatus: http.StatusNotFound, wantType: apierrors.TypeNotFound},
		{name: "validation", err: apierrors.NewAppValidationError("bad"), wantStatus: http.StatusBadRequest, wantType: apierrors.TypeValidation},
		{name: "empty", err: apierrors.NewEmptyDatasetError("dataset"), wantStatus: http.StatusUnprocessableEntity, wantType: apierrors.TypeEmptyDataset},
		{name: "unexpected", err: assert.AnError, wantStatus: http.StatusInternalServerError, wantType: apierrors.TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockStatsService)
			svc.On("Summary", "regular").Return(domain.SeasonSummary{}, tt.err)

			rec, body := doGet(t, setupRouter(t, svc), "/api/datasets/regular/summary")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, "/api/datasets/regular/summary", body["instance"])
		})
	}
}
