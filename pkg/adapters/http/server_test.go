package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/bombrisk"
	"github.com/aretw0/bombrisk/internal/random"
	httpadapter "github.com/aretw0/bombrisk/pkg/adapters/http"
	"github.com/aretw0/bombrisk/pkg/adapters/memory"
	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/gauge"
	"github.com/aretw0/bombrisk/pkg/observability"
	"github.com/aretw0/bombrisk/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seed = 42

type errorResponse struct {
	Error struct {
		Category string `json:"category"`
		Message  string `json:"message"`
		Method   string `json:"method"`
		Field    string `json:"field"`
	} `json:"error"`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	metrics := observability.NewMetrics()
	mgr := session.NewManager(memory.NewStore(),
		session.WithIDGenerator(func() string { return "w-1" }),
		session.WithWidgetOptions(
			bombrisk.WithSeed(seed),
			bombrisk.WithMethod(domain.MethodLottery, gauge.NewLotteryGauge),
			bombrisk.WithLifecycleHooks(metrics.Hooks()),
		))
	treatments := memory.NewLoader(map[string]map[string]any{
		"small": {"boxCount": 10, "currency": "$"},
	})

	h, err := httpadapter.NewHandler(context.Background(), mgr,
		httpadapter.WithTreatments(treatments),
		httpadapter.WithMetricsHandler(metrics.Handler()))
	require.NoError(t, err)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestLoadSpec(t *testing.T) {
	doc, err := httpadapter.LoadSpec(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/widgets/{id}/commit"))
}

func TestServer_PlayFlow(t *testing.T) {
	srv := newServer(t)
	bomb := random.New(seed).IntN(100) + 1

	resp := do(t, srv, http.MethodPost, "/widgets", map[string]any{"options": map[string]any{"scale": 2}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[httpadapter.WidgetResponse](t, resp)
	assert.Equal(t, "w-1", created.ID)
	assert.Len(t, created.View.Cells, 100)
	assert.False(t, created.Values.Committed)

	resp = do(t, srv, http.MethodPost, "/widgets/w-1/commit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rejected := decode[httpadapter.CommitResponse](t, resp)
	assert.Equal(t, domain.CommitRejected, rejected.Result.Status)
	assert.NotEmpty(t, rejected.Result.Warning)

	selection := 30
	resp = do(t, srv, http.MethodPut, "/widgets/w-1/selection", map[string]any{"selection": selection})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	selected := decode[httpadapter.WidgetResponse](t, resp)
	assert.Equal(t, selection, selected.View.OpenCount())

	resp = do(t, srv, http.MethodPost, "/widgets/w-1/commit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	committed := decode[httpadapter.CommitResponse](t, resp)
	assert.Equal(t, domain.CommitAccepted, committed.Result.Status)

	resp = do(t, srv, http.MethodGet, "/widgets/w-1/values", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	values := decode[domain.Values](t, resp)
	require.NotNil(t, values.Outcome)
	assert.Equal(t, bomb, values.Outcome.BombPosition)
	assert.Equal(t, selection < bomb, values.Outcome.IsWinner)
	if values.Outcome.IsWinner {
		assert.Equal(t, "60", values.Outcome.Payoff.String())
	} else {
		assert.True(t, values.Outcome.Payoff.IsZero())
	}

	resp = do(t, srv, http.MethodPut, "/widgets/w-1/selection", map[string]any{"selection": 5})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "conflict", decode[errorResponse](t, resp).Error.Category)

	resp = do(t, srv, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var metrics bytes.Buffer
	_, _ = metrics.ReadFrom(resp.Body)
	assert.Contains(t, metrics.String(), "bombrisk_commit_warnings_total")
}

func TestServer_Errors(t *testing.T) {
	srv := newServer(t)

	resp := do(t, srv, http.MethodPost, "/widgets", map[string]any{"options": map[string]any{"method": 123}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "config", decode[errorResponse](t, resp).Error.Category)

	resp = do(t, srv, http.MethodPost, "/widgets", map[string]any{"options": map[string]any{"method": "Nope"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[errorResponse](t, resp)
	assert.Equal(t, "Nope", body.Error.Method)

	resp = do(t, srv, http.MethodPost, "/widgets", map[string]any{"unexpected": true})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "request", decode[errorResponse](t, resp).Error.Category)

	resp = do(t, srv, http.MethodPost, "/widgets", map[string]any{"options": map[string]any{"boxCount": 5000000}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "request", decode[errorResponse](t, resp).Error.Category)

	resp = do(t, srv, http.MethodPost, "/widgets", map[string]any{"options": map[string]any{"method": "Lottery", "rows": 101}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/widgets/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/widgets", map[string]any{"treatment": "unknown"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/widgets", map[string]any{})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, http.MethodPut, "/widgets/w-1/selection", map[string]any{"selection": 101})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = do(t, srv, http.MethodPut, "/widgets/w-1/selection", map[string]any{"selection": "ten"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodPut, "/widgets/w-1/choices", map[string]any{"row": 1, "choice": "A"})
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/widgets/w-1/signals/bogus", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_TreatmentsAndSignals(t *testing.T) {
	srv := newServer(t)

	resp := do(t, srv, http.MethodPost, "/widgets", map[string]any{
		"treatment": "small",
		"options":   map[string]any{"withPrize": false},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[httpadapter.WidgetResponse](t, resp)
	assert.Len(t, created.View.Cells, 10)

	resp = do(t, srv, http.MethodPost, "/widgets/w-1/signals/disabled", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[httpadapter.WidgetResponse](t, resp).View.Enabled)

	resp = do(t, srv, http.MethodPut, "/widgets/w-1/selection", map[string]any{"selection": 3})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/widgets/w-1/signals/enabled", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/widgets/w-1/values", map[string]any{"selection": 3, "commit": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[httpadapter.WidgetResponse](t, resp).Values.Committed)

	resp = do(t, srv, http.MethodGet, "/widgets", nil)
	assert.Equal(t, []string{"w-1"}, decode[map[string][]string](t, resp)["widgets"])

	resp = do(t, srv, http.MethodDelete, "/widgets/w-1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/widgets/w-1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_LotteryAndMethods(t *testing.T) {
	srv := newServer(t)

	resp := do(t, srv, http.MethodGet, "/methods", nil)
	assert.Equal(t, []string{"Bomb", "Lottery"}, decode[map[string][]string](t, resp)["methods"])

	resp = do(t, srv, http.MethodPost, "/widgets", map[string]any{"options": map[string]any{"method": "Lottery", "rows": 3}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for row := 1; row <= 3; row++ {
		resp = do(t, srv, http.MethodPut, "/widgets/w-1/choices", map[string]any{"row": row, "choice": "B"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp = do(t, srv, http.MethodPost, "/widgets/w-1/commit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	committed := decode[httpadapter.CommitResponse](t, resp)
	assert.Equal(t, domain.CommitAccepted, committed.Result.Status)
	require.NotNil(t, committed.Widget.Values.Outcome)
	assert.Equal(t, 0, committed.Widget.Values.Outcome.Selection)

	resp = do(t, srv, http.MethodGet, "/openapi.yaml", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
