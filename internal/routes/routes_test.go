package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"payments/internal/models"
	"payments/internal/repositories"
	"payments/internal/services/transfer"
	"payments/internal/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages map[string][]string
}

func (n *recordingNotifier) NotifyAboutTransfer(_ context.Context, account models.Account, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages[account.ID] = append(n.messages[account.ID], message)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	total := 0
	for _, msgs := range n.messages {
		total += len(msgs)
	}
	return total
}

type testEnv struct {
	app      *fiber.App
	accounts repositories.AccountRepository
	notifier *recordingNotifier
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	accounts := repositories.NewAccountRepository()
	for id, balance := range map[string]int64{"id1": 100, "id2": 1} {
		require.NoError(t, accounts.Create(&models.Account{ID: id, Balance: decimal.NewFromInt(balance)}))
	}

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(registry)
	notifier := &recordingNotifier{messages: map[string][]string{}}

	app := fiber.New()
	SetupRoutes(app, Dependencies{
		Accounts:  accounts,
		Transfers: transfer.NewService(accounts, notifier, transfer.NewGlobalLocker(), zap.NewNop(), metrics),
		Gatherer:  registry,
	})

	return &testEnv{app: app, accounts: accounts, notifier: notifier}
}

func (e *testEnv) pay(t *testing.T, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func (e *testEnv) balance(t *testing.T, id string) string {
	t.Helper()
	account, err := e.accounts.GetByID(id)
	require.NoError(t, err)
	return account.Balance.String()
}

func TestPayments_Scenarios(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantStatus    int
		wantCode      string
		wantID1       string
		wantID2       string
		wantNotifyLen int
	}{
		{
			name:          "successful transfer",
			body:          `{"from":"id1","to":"id2","amount":30}`,
			wantStatus:    http.StatusOK,
			wantID1:       "70",
			wantID2:       "31",
			wantNotifyLen: 2,
		},
		{
			name:       "insufficient funds",
			body:       `{"from":"id1","to":"id2","amount":150}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INSUFFICIENT_FUNDS",
			wantID1:    "100",
			wantID2:    "1",
		},
		{
			name:       "unknown source",
			body:       `{"from":"ghost","to":"id2","amount":5}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "ACCOUNT_NOT_FOUND",
			wantID1:    "100",
			wantID2:    "1",
		},
		{
			name:       "unknown destination",
			body:       `{"from":"id1","to":"ghost","amount":5}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "ACCOUNT_NOT_FOUND",
			wantID1:    "100",
			wantID2:    "1",
		},
		{
			name:       "zero amount",
			body:       `{"from":"id1","to":"id2","amount":0}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantID1:    "100",
			wantID2:    "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setup(t)

			status, body := env.pay(t, tt.body)

			assert.Equal(t, tt.wantStatus, status)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["code"])
			}
			assert.Equal(t, tt.wantID1, env.balance(t, "id1"))
			assert.Equal(t, tt.wantID2, env.balance(t, "id2"))
			assert.Equal(t, tt.wantNotifyLen, env.notifier.count())
		})
	}
}

func TestPayments_NotificationText(t *testing.T) {
	env := setup(t)

	status, _ := env.pay(t, `{"from":"id1","to":"id2","amount":30}`)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, []string{"Received 30 from id1"}, env.notifier.messages["id2"])
	assert.Equal(t, []string{"Your payment (30) to user id2 processed successfully"}, env.notifier.messages["id1"])
}

func TestMetricsEndpoint(t *testing.T) {
	env := setup(t)
	env.pay(t, `{"from":"id1","to":"id2","amount":30}`)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `payments_transfers_total{outcome="success"} 1`)
}

func TestHealthRoute(t *testing.T) {
	env := setup(t)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
