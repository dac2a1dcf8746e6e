package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"scale-sync-api-server/config"
	"scale-sync-api-server/internal/api/routes"
	"scale-sync-api-server/internal/auth"
	"scale-sync-api-server/internal/models"
	"scale-sync-api-server/internal/sap"
	"scale-sync-api-server/internal/scale"
	"scale-sync-api-server/internal/socket"
	"scale-sync-api-server/internal/syncer"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	docs []models.ReservationDocument
	err  error
}

func (s *stubFetcher) FetchNew(context.Context) ([]models.ReservationDocument, error) {
	return s.docs, s.err
}

type stubBuilder struct {
	payload models.JobPayload
}

func (s *stubBuilder) Build(context.Context, []models.ReservationDocument) models.JobPayload {
	return s.payload
}

type stubDispatcher struct {
	err error
}

func (s *stubDispatcher) Deliver(context.Context, models.JobPayload) error {
	return s.err
}

func newTestRouter(t *testing.T, fetcher syncer.ReservationFetcher, builder syncer.PayloadBuilder, dispatcher syncer.Dispatcher) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Sync: config.SyncConfig{Secret: "topsecret", CursorMode: "ordinal"},
		JWT:  config.JWTConfig{Secret: "jwt-test-secret", Expiration: "1h"},
	}
	require.NoError(t, auth.Init(cfg.JWT))

	orchestrator := &syncer.Orchestrator{
		Fetcher:    fetcher,
		Builder:    builder,
		Dispatcher: dispatcher,
		CursorMode: "ordinal",
	}

	catalog := sap.NewCatalog(sap.NewClient(config.SAPConfig{APIURL: "http://sap.invalid"}), 16)
	return routes.SetupRouter(orchestrator, catalog, cfg, nil, socket.NewHub())
}

func TestTriggerSync_RequiresSecret(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{}, &stubBuilder{}, &stubDispatcher{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestTriggerSync_RejectsWrongSecret(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{}, &stubBuilder{}, &stubDispatcher{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	request.Header.Set("x-sync-secret", "wrong")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestTriggerSync_NoNewJobs(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{}, &stubBuilder{}, &stubDispatcher{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	request.Header.Set("x-sync-secret", "topsecret")
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "No new jobs to schedule", body["message"])
}

func TestTriggerSync_FetchFailureMapsToBadGateway(t *testing.T) {
	router := newTestRouter(t,
		&stubFetcher{err: errors.New("fetch reservations: connection refused")},
		&stubBuilder{}, &stubDispatcher{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	request.Header.Set("x-sync-secret", "topsecret")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
}

func TestTriggerSync_DeliveryFailureMapsToInternalError(t *testing.T) {
	payload := models.JobPayload{JobList: []models.Job{{JobNo: "100"}}}
	router := newTestRouter(t,
		&stubFetcher{docs: []models.ReservationDocument{{Reservation: "100"}}},
		&stubBuilder{payload: payload},
		&stubDispatcher{err: scale.ErrDeliveryFailed})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	request.Header.Set("x-sync-secret", "topsecret")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestTriggerSync_Delivered(t *testing.T) {
	payload := models.JobPayload{JobList: []models.Job{{JobNo: "100"}}}
	router := newTestRouter(t,
		&stubFetcher{docs: []models.ReservationDocument{{Reservation: "100"}}},
		&stubBuilder{payload: payload},
		&stubDispatcher{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	request.Header.Set("x-sync-secret", "topsecret")
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Message string         `json:"message"`
		Run     models.SyncRun `json:"run"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Jobs scheduled", body.Message)
	assert.True(t, body.Run.Delivered)
	assert.Equal(t, 1, body.Run.JobsBuilt)
	assert.Equal(t, models.RunStatusDelivered, body.Run.Status)
}

func TestIssueToken_ExchangesSecretForJWT(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{}, &stubBuilder{}, &stubDispatcher{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", nil)
	request.Header.Set("x-sync-secret", "topsecret")
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.NotEmpty(t, body["token"])

	claims, err := auth.ParseJWT(body["token"])
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Role)
}

func TestObservabilityEndpointsRequireJWT(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{}, &stubBuilder{}, &stubDispatcher{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/stats", nil)
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	token, err := auth.GenerateJWT("operator")
	require.NoError(t, err)

	recorder = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodGet, "/api/v1/catalog/stats", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetRecentRuns_WithoutMongoIsUnavailable(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{}, &stubBuilder{}, &stubDispatcher{})

	token, err := auth.GenerateJWT("operator")
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}
