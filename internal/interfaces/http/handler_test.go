package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/amanahtour/gudang-api/internal/application/auth"
	"github.com/amanahtour/gudang-api/internal/application/ledger"
	"github.com/amanahtour/gudang-api/internal/application/recorder"
	"github.com/amanahtour/gudang-api/internal/application/reporting"
	"github.com/amanahtour/gudang-api/internal/domain/entity"
	"github.com/amanahtour/gudang-api/internal/infrastructure/memory"
	apphttp "github.com/amanahtour/gudang-api/internal/interfaces/http"
)

const (
	apiItemID     = "55555555-5555-5555-5555-555555555555"
	apiGudangA    = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	apiGudangB    = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	apiAdminEmail = "gudang@amanahtour.co.id"
	apiPassword   = "password-kuat-123"
)

// buildAPIApp merangkai seluruh API di atas store in-memory, persis
// seperti wiring produksi tapi tanpa PostgreSQL.
func buildAPIApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.New()
	store.SeedItem(&entity.Item{
		ID:              apiItemID,
		Code:            "APR-001",
		Name:            "Air Zamzam 5L",
		Unit:            "galon",
		MinimumQuantity: decimal.NewFromInt(10),
	})
	store.SeedWarehouse(&entity.Warehouse{ID: apiGudangA, Code: "GDG-A", Name: "Gudang A", IsActive: true})
	store.SeedWarehouse(&entity.Warehouse{ID: apiGudangB, Code: "GDG-B", Name: "Gudang B", IsActive: true})

	hash, err := bcrypt.GenerateFromPassword([]byte(apiPassword), bcrypt.MinCost)
	require.NoError(t, err)
	store.SeedUser(&entity.User{
		ID:           "66666666-6666-6666-6666-666666666666",
		Email:        apiAdminEmail,
		PasswordHash: string(hash),
		Name:         "Petugas Gudang",
		Role:         entity.RoleAdmin,
		Status:       "active",
	})

	ledgerUC := ledger.NewStockLedgerUseCase()
	summaryUC := reporting.NewStockSummaryUseCase(store.Summaries(), nil)
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           authUC,
		IncomingRecorder: recorder.NewIncomingRecorder(store, ledgerUC, nil),
		OutgoingRecorder: recorder.NewOutgoingRecorder(store, ledgerUC, nil),
		TransferRecorder: recorder.NewTransferRecorder(store, ledgerUC),
		SummaryUC:        summaryUC,
		LedgerUC:         ledgerUC,
		ReconcileUC:      ledger.NewReconcileUseCase(store, store.Items()),
		ItemRepo:         store.Items(),
		WarehouseRepo:    store.Warehouses(),
		StockRepo:        store.Stocks(),
		MovementRepo:     store.Movements(),
		IncomingRepo:     store.Incomings(),
		OutgoingRepo:     store.Outgoings(),
		TransferRepo:     store.Transfers(),
		JWTSecret:        testJWTSecret,
	})
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(payload, out), "body: %s", payload)
}

func adminToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    apiAdminEmail,
		"password": apiPassword,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestLoginEndpoint_KredensialSalah(t *testing.T) {
	app, _ := buildAPIApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    apiAdminEmail,
		"password": "bukan-passwordnya",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestIncomingEndpoint_MembuatRecordDanSaldo(t *testing.T) {
	app, store := buildAPIApp(t)
	token := adminToken(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/incoming", token, fiber.Map{
		"item_id":      apiItemID,
		"warehouse_id": apiGudangA,
		"quantity":     100,
		"unit_price":   25000,
		"invoice_no":   "INV-001",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out struct {
		ReceiptID  string `json:"receipt_id"`
		MovementID string `json:"movement_id"`
	}
	decodeBody(t, resp, &out)
	assert.NotEmpty(t, out.ReceiptID)
	assert.NotEmpty(t, out.MovementID)

	item, err := store.Items().GetByID(apiItemID)
	require.NoError(t, err)
	assert.True(t, item.OnHandQuantity.Equal(decimal.NewFromInt(100)))
}

func TestIncomingEndpoint_GetByID(t *testing.T) {
	app, _ := buildAPIApp(t)
	token := adminToken(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/incoming", token, fiber.Map{
		"item_id":      apiItemID,
		"warehouse_id": apiGudangA,
		"quantity":     40,
		"unit_price":   15000,
		"invoice_no":   "INV-042",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		ReceiptID string `json:"receipt_id"`
	}
	decodeBody(t, resp, &created)

	resp = doJSON(t, app, http.MethodGet, "/api/incoming/"+created.ReceiptID, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var receipt entity.IncomingReceipt
	decodeBody(t, resp, &receipt)
	assert.Equal(t, created.ReceiptID, receipt.ID)
	assert.Equal(t, "INV-042", receipt.InvoiceNo)
	assert.True(t, receipt.Quantity.Equal(decimal.NewFromInt(40)))

	resp = doJSON(t, app, http.MethodGet, "/api/incoming/tidak-ada", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestIncomingEndpoint_TanpaToken(t *testing.T) {
	app, _ := buildAPIApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/incoming", "", fiber.Map{
		"item_id":      apiItemID,
		"warehouse_id": apiGudangA,
		"quantity":     100,
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestOutgoingEndpoint_SaldoKurang(t *testing.T) {
	app, _ := buildAPIApp(t)
	token := adminToken(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/incoming", token, fiber.Map{
		"item_id":      apiItemID,
		"warehouse_id": apiGudangA,
		"quantity":     70,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/outgoing", token, fiber.Map{
		"item_id":      apiItemID,
		"warehouse_id": apiGudangA,
		"quantity":     1000,
		"recipient":    "Tim Handling",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var out struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &out)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
	assert.Equal(t, "Stock tidak mencukupi. Tersedia: 70, Dibutuhkan: 1000", out.Message)
}

func TestTransferEndpoint_GudangSamaDitolakValidator(t *testing.T) {
	app, _ := buildAPIApp(t)
	token := adminToken(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/transfers", token, fiber.Map{
		"item_id":           apiItemID,
		"from_warehouse_id": apiGudangA,
		"to_warehouse_id":   apiGudangA,
		"quantity":          10,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStockSummaryEndpoint(t *testing.T) {
	app, _ := buildAPIApp(t)
	token := adminToken(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/incoming", token, fiber.Map{
		"item_id":      apiItemID,
		"warehouse_id": apiGudangA,
		"quantity":     8,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/stock/summary?warehouse_id="+apiGudangA, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rows []struct {
		ItemID       string          `json:"item_id"`
		CurrentStock decimal.Decimal `json:"current_stock"`
		StockStatus  string          `json:"stock_status"`
	}
	decodeBody(t, resp, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, apiItemID, rows[0].ItemID)
	assert.True(t, rows[0].CurrentStock.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, entity.StockStatusLow, rows[0].StockStatus)
}

func TestAvailabilityEndpoint(t *testing.T) {
	app, _ := buildAPIApp(t)
	token := adminToken(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/incoming", token, fiber.Map{
		"item_id":      apiItemID,
		"warehouse_id": apiGudangA,
		"quantity":     70,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	url := fmt.Sprintf("/api/stock/availability?item_id=%s&warehouse_id=%s&quantity=1000", apiItemID, apiGudangA)
	resp = doJSON(t, app, http.MethodGet, url, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Available bool   `json:"available"`
		Message   string `json:"message"`
	}
	decodeBody(t, resp, &out)
	assert.False(t, out.Available)
	assert.Equal(t, "Stock tidak mencukupi. Tersedia: 70, Dibutuhkan: 1000", out.Message)
}

func TestReconcileEndpoint_BersihTanpaDrift(t *testing.T) {
	app, _ := buildAPIApp(t)
	token := adminToken(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/incoming", token, fiber.Map{
		"item_id":      apiItemID,
		"warehouse_id": apiGudangA,
		"quantity":     50,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/stock/reconcile", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Repaired bool              `json:"repaired"`
		Drifts   []json.RawMessage `json:"drifts"`
	}
	decodeBody(t, resp, &out)
	assert.False(t, out.Repaired)
	assert.Empty(t, out.Drifts)
}
