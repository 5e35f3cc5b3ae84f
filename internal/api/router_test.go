package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"carbon-footprint/internal/api/handlers"
	"carbon-footprint/internal/emissions"
	"carbon-footprint/internal/models"
	"carbon-footprint/internal/repository"
	"carbon-footprint/internal/service"
	"carbon-footprint/internal/survey"
	"carbon-footprint/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSession = "6f9619ff-8b86-d011-b42d-00c04fc964ff"

type memSessions struct {
	m map[uuid.UUID]*models.Session
}

func (s *memSessions) Create(_ context.Context, sess *models.Session) error {
	cp := *sess
	s.m[sess.ID] = &cp
	return nil
}

func (s *memSessions) Get(_ context.Context, id uuid.UUID) (*models.Session, error) {
	sess, ok := s.m[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *memSessions) Touch(_ context.Context, id uuid.UUID, at time.Time) error {
	s.m[id].LastActive = at
	return nil
}

func (s *memSessions) UpdateProgress(_ context.Context, id uuid.UUID, section string, pct int, completed bool) error {
	sess := s.m[id]
	sess.CurrentSection, sess.ProgressPct, sess.Completed = section, pct, completed
	return nil
}

type memResponses struct {
	rows map[string]*models.SurveyResponse
}

func (r *memResponses) Upsert(_ context.Context, id uuid.UUID, records []survey.Record) error {
	for _, rec := range records {
		r.rows[string(rec.Section)+"."+rec.QuestionKey] = &models.SurveyResponse{
			SessionID:     id,
			Section:       string(rec.Section),
			QuestionKey:   rec.QuestionKey,
			ResponseValue: rec.Value,
			ResponseType:  string(rec.Type),
		}
	}
	return nil
}

func (r *memResponses) ListBySession(context.Context, uuid.UUID) ([]*models.SurveyResponse, error) {
	out := make([]*models.SurveyResponse, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	return out, nil
}

type memCalculations struct{}

func (memCalculations) Save(context.Context, *models.Calculation, []*models.BreakdownEntry) error {
	return nil
}

func (memCalculations) GetBySession(context.Context, uuid.UUID) (*models.Calculation, error) {
	return nil, repository.ErrNotFound
}

func newTestApp() *fiber.App {
	log := zap.NewNop()
	sessions := service.NewSessionService(
		&memSessions{m: make(map[uuid.UUID]*models.Session)},
		&memResponses{rows: make(map[string]*models.SurveyResponse)},
		log,
	)
	calc := emissions.NewCalculator(emissions.NewReference(nil, nil, nil))
	calcService := service.NewCalculationService(calc, memCalculations{}, sessions, "CA", log)

	return SetupRouter(
		&config.ServerConfig{AllowOrigins: "*"},
		handlers.NewSessionHandler(sessions, log),
		handlers.NewCalculationHandler(calcService, log),
		handlers.NewRecommendationHandler(nil, log),
		log,
	)
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	code, body := do(t, newTestApp(), "GET", "/api/v1/health", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
}

func TestInvalidSessionID(t *testing.T) {
	code, body := do(t, newTestApp(), "GET", "/api/v1/sessions/nope/status", "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Invalid session ID format", body["error"])
}

func TestSessionFlow(t *testing.T) {
	app := newTestApp()
	base := "/api/v1/sessions/" + testSession

	code, body := do(t, app, "GET", base+"/responses", "")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "Session not found", body["error"])

	code, body = do(t, app, "GET", base, "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, testSession, body["session_id"])
	assert.Equal(t, "introduction", body["current_section"])

	code, body = do(t, app, "PUT", base+"/responses",
		`{"introduction":{"name":"Jane Doe","city":"Austin","state":"TX"}}`)
	require.Equal(t, fiber.StatusOK, code)
	assert.EqualValues(t, 17, body["progress_pct"])

	code, body = do(t, app, "GET", base+"/status", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Jane", body["user_name"])
	assert.Equal(t, "JD", body["user_initials"])
	assert.Equal(t, "household_size", body["next_missing_field"])

	code, body = do(t, app, "GET", base+"/responses", "")
	require.Equal(t, fiber.StatusOK, code)
	intro := body["responses"].(map[string]interface{})["introduction"].(map[string]interface{})
	assert.Equal(t, "Austin", intro["city"])
}

func TestSaveResponsesRejectsMalformedBody(t *testing.T) {
	code, body := do(t, newTestApp(), "PUT", "/api/v1/sessions/"+testSession+"/responses", `{"introduction":`)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Invalid request body", body["error"])
}

func TestCalculationNotFound(t *testing.T) {
	app := newTestApp()
	base := "/api/v1/sessions/" + testSession

	code, _ := do(t, app, "POST", base+"/calculate", "")
	assert.Equal(t, fiber.StatusNotFound, code)

	code, body := do(t, app, "GET", base+"/calculation", "")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "No calculations found for session", body["error"])
}
