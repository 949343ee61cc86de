package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"payments/internal/models"
	"payments/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAccountApp(repo repositories.AccountRepository) *fiber.App {
	app := fiber.New()
	h := NewAccountHandler(repo)
	app.Post("/v1/accounts", h.Create)
	app.Get("/v1/accounts", h.List)
	app.Get("/v1/accounts/:id", h.Get)
	app.Delete("/v1/accounts/:id", h.Delete)
	return app
}

func TestAccountHandler_CreateAndGet(t *testing.T) {
	repo := repositories.NewAccountRepository()
	app := setupAccountApp(repo)

	status, body := doJSON(t, app, http.MethodPost, "/v1/accounts", `{"accountId":"id1","balance":100}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "account created", body["message"])

	status, body = doJSON(t, app, http.MethodGet, "/v1/accounts/id1", "")
	assert.Equal(t, http.StatusOK, status)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "id1", data["accountId"])
	assert.Equal(t, "100", data["balance"])
}

func TestAccountHandler_CreateDuplicate(t *testing.T) {
	repo := repositories.NewAccountRepository()
	require.NoError(t, repo.Create(&models.Account{ID: "id1", Balance: decimal.NewFromInt(1)}))

	status, body := doJSON(t, setupAccountApp(repo), http.MethodPost, "/v1/accounts", `{"accountId":"id1","balance":5}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "DUPLICATE_ACCOUNT", body["code"])
	assert.Equal(t, "account id id1 already exists", body["error"])

	stored, err := repo.GetByID("id1")
	require.NoError(t, err)
	assert.True(t, stored.Balance.Equal(decimal.NewFromInt(1)))
}

func TestAccountHandler_CreateInvalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "blank id", body: `{"accountId":"","balance":5}`, field: "accountId"},
		{name: "negative balance", body: `{"accountId":"id1","balance":-5}`, field: "balance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repositories.NewAccountRepository()

			status, body := doJSON(t, setupAccountApp(repo), http.MethodPost, "/v1/accounts", tt.body)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Contains(t, body["fields"], tt.field)
			assert.Empty(t, repo.List())
		})
	}
}

func TestAccountHandler_GetMissing(t *testing.T) {
	status, body := doJSON(t, setupAccountApp(repositories.NewAccountRepository()), http.MethodGet, "/v1/accounts/ghost", "")

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "ACCOUNT_NOT_FOUND", body["code"])
}

func TestAccountHandler_Delete(t *testing.T) {
	repo := repositories.NewAccountRepository()
	require.NoError(t, repo.Create(&models.Account{ID: "id1", Balance: decimal.Zero}))
	app := setupAccountApp(repo)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/v1/accounts/id1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, err = repo.GetByID("id1")
	assert.ErrorIs(t, err, repositories.ErrAccountNotFound)

	status, _ := doJSON(t, app, http.MethodDelete, "/v1/accounts/id1", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAccountHandler_List(t *testing.T) {
	repo := repositories.NewAccountRepository()
	require.NoError(t, repo.Create(&models.Account{ID: "b", Balance: decimal.NewFromInt(2)}))
	require.NoError(t, repo.Create(&models.Account{ID: "a", Balance: decimal.NewFromInt(1)}))

	status, body := doJSON(t, setupAccountApp(repo), http.MethodGet, "/v1/accounts", "")

	assert.Equal(t, http.StatusOK, status)
	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 2)
	assert.Equal(t, "a", data[0].(map[string]any)["accountId"])
}
