package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"laundryos-backend/config"
	"laundryos-backend/models"
	"laundryos-backend/services"
	"laundryos-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := config.Default()
	cfg.CORSOrigins = config.DefaultCORSOrigins
	log := zap.NewNop()

	serviceStore := store.NewMemoryServiceStore()
	orderStore := store.NewMemoryOrderStore()

	return SetupRouter(Dependencies{
		Config:   cfg,
		Log:      log,
		Services: serviceStore,
		Orders:   services.NewOrderService(serviceStore, orderStore, cfg.VATRate, log),
		Summary:  services.NewSummaryService(orderStore, services.NewLogNotifier(log), log),
	})
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errorBody struct {
	Detail string `json:"detail"`
	Errors []struct {
		Field string `json:"field"`
		Error string `json:"error"`
	} `json:"errors"`
}

const washAndFold = `{"name":"Wash & Fold","category":"General","base_price":200,"unit":"piece","is_active":true}`

func TestLiveness(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Laundry OS API up"}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestServices_EmptyListIsArray(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/services", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestServices_WashAndFoldLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/services", washAndFold)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t,
		`{"id":1,"name":"Wash & Fold","category":"General","base_price":200,"unit":"piece","is_active":true}`,
		w.Body.String())

	w = do(t, r, http.MethodPut, "/services/1",
		`{"name":"Wash & Fold","category":"General","base_price":250,"unit":"piece","is_active":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 250.0, decode[models.Service](t, w).BasePrice)

	w = do(t, r, http.MethodGet, "/services", "")
	list := decode[[]models.Service](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, 250.0, list[0].BasePrice)

	w = do(t, r, http.MethodDelete, "/services/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(t, r, http.MethodGet, "/services", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestServices_CreateAppliesDefaults(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodPost, "/services", `{"name":"Ironing","base_price":0}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, models.Service{
		ID:        1,
		Name:      "Ironing",
		Category:  "General",
		BasePrice: 0,
		Unit:      "piece",
		IsActive:  true,
	}, decode[models.Service](t, w))
}

func TestServices_CreateKeepsExplicitInactive(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodPost, "/services", `{"name":"Curtains","base_price":500,"is_active":false}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.False(t, decode[models.Service](t, w).IsActive)
}

func TestServices_CreateValidation(t *testing.T) {
	cases := map[string]struct {
		body  string
		field string
	}{
		"negative price":  {body: `{"name":"Wash","base_price":-1}`, field: "base_price"},
		"missing price":   {body: `{"name":"Wash"}`, field: "base_price"},
		"missing name":    {body: `{"base_price":10}`, field: "name"},
		"blank name":      {body: `{"name":"  ","base_price":10}`, field: "name"},
		"mistyped price":  {body: `{"name":"Wash","base_price":"ten"}`, field: "base_price"},
		"mistyped active": {body: `{"name":"Wash","base_price":1,"is_active":"yes"}`, field: "is_active"},
		"malformed json":  {body: `{"name":`, field: "body"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := newTestRouter(t)

			w := do(t, r, http.MethodPost, "/services", tc.body)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

			body := decode[errorBody](t, w)
			assert.Equal(t, "Validation failed", body.Detail)
			require.NotEmpty(t, body.Errors)
			assert.Equal(t, tc.field, body.Errors[0].Field)

			w = do(t, r, http.MethodGet, "/services", "")
			assert.JSONEq(t, `[]`, w.Body.String())
		})
	}
}

func TestServices_IDsNotReusedAfterDelete(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/services", washAndFold)
	require.Equal(t, http.StatusCreated, w.Code)
	first := decode[models.Service](t, w)

	require.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/services/1", "").Code)

	w = do(t, r, http.MethodPost, "/services", washAndFold)
	require.Equal(t, http.StatusCreated, w.Code)
	second := decode[models.Service](t, w)
	assert.Greater(t, second.ID, first.ID)
}

func TestServices_CountAfterCreatesAndDeletes(t *testing.T) {
	r := newTestRouter(t)

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/services", washAndFold).Code)
	}
	for _, id := range []string{"2", "4"} {
		require.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/services/"+id, "").Code)
	}

	list := decode[[]models.Service](t, do(t, r, http.MethodGet, "/services", ""))
	require.Len(t, list, 3)
	assert.Equal(t, []uint{1, 3, 5}, []uint{list[0].ID, list[1].ID, list[2].ID})
}

func TestServices_UpdateUnknownID(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/services", washAndFold).Code)

	w := do(t, r, http.MethodPut, "/services/9", washAndFold)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Not found"}`, w.Body.String())

	list := decode[[]models.Service](t, do(t, r, http.MethodGet, "/services", ""))
	require.Len(t, list, 1)
	assert.Equal(t, uint(1), list[0].ID)
}

func TestServices_UpdateRequiresFullFieldSet(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/services", washAndFold).Code)

	w := do(t, r, http.MethodPut, "/services/1", `{"base_price":300}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	got := decode[models.Service](t, do(t, r, http.MethodGet, "/services/1", ""))
	assert.Equal(t, 200.0, got.BasePrice)
}

func TestServices_UpdateReflectsEveryField(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/services", washAndFold).Code)

	w := do(t, r, http.MethodPut, "/services/1",
		`{"name":"Duvet","category":"Bulky","base_price":750.5,"unit":"item","is_active":false}`)
	require.Equal(t, http.StatusOK, w.Code)

	list := decode[[]models.Service](t, do(t, r, http.MethodGet, "/services", ""))
	require.Len(t, list, 1)
	assert.Equal(t, models.Service{
		ID: 1, Name: "Duvet", Category: "Bulky", BasePrice: 750.5, Unit: "item", IsActive: false,
	}, list[0])
}

func TestServices_DeleteUnknownID(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodDelete, "/services/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Not found"}`, w.Body.String())

	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/services", washAndFold).Code)
	require.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/services/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/services/1", "").Code)
}

func TestServices_GetByID(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/services", washAndFold).Code)

	w := do(t, r, http.MethodGet, "/services/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Wash & Fold", decode[models.Service](t, w).Name)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/services/2", "").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, r, http.MethodGet, "/services/abc", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/services/-1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPut, "/services/99999999999", washAndFold).Code)
}

func TestOrders_CreateAndFetch(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/services", washAndFold).Code)
	require.Equal(t, http.StatusCreated,
		do(t, r, http.MethodPost, "/services", `{"name":"Ironing","base_price":150}`).Code)

	w := do(t, r, http.MethodPost, "/orders", `{
		"customer_name": "Amina",
		"customer_phone": "0712 345 678",
		"discount": 50,
		"items": [{"service_id": 1, "qty": 2}, {"service_id": 2, "qty": 1}]
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	order := decode[models.Order](t, w)
	assert.Equal(t, uint(1), order.ID)
	assert.Equal(t, 550.0, order.Subtotal)
	assert.Equal(t, 500.0, order.Taxable)
	assert.Equal(t, 80.0, order.VAT)
	assert.Equal(t, 580.0, order.Total)
	assert.Equal(t, "paid", order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 400.0, order.Items[0].LineTotal)

	w = do(t, r, http.MethodGet, "/orders/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Amina", *decode[models.Order](t, w).CustomerName)

	w = do(t, r, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Order](t, w), 1)

	w = do(t, r, http.MethodGet, "/orders/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrders_Validation(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/services", washAndFold).Code)
	require.Equal(t, http.StatusCreated,
		do(t, r, http.MethodPost, "/services", `{"name":"Leather","base_price":900,"is_active":false}`).Code)

	cases := map[string]struct {
		body  string
		field string
	}{
		"no items":          {body: `{"items":[]}`, field: "items"},
		"zero qty":          {body: `{"items":[{"service_id":1,"qty":0}]}`, field: "items[0].qty"},
		"negative discount": {body: `{"discount":-5,"items":[{"service_id":1,"qty":1}]}`, field: "discount"},
		"unknown service":   {body: `{"items":[{"service_id":99,"qty":1}]}`, field: "items"},
		"inactive service":  {body: `{"items":[{"service_id":2,"qty":1}]}`, field: "items"},
		"bad phone":         {body: `{"customer_phone":"call me","items":[{"service_id":1,"qty":1}]}`, field: "customer_phone"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/orders", tc.body)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
			body := decode[errorBody](t, w)
			require.NotEmpty(t, body.Errors)
			assert.Equal(t, tc.field, body.Errors[0].Field)
		})
	}

	assert.JSONEq(t, `[]`, do(t, r, http.MethodGet, "/orders", "").Body.String())
}

func TestDashboard(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/services", washAndFold).Code)
	require.Equal(t, http.StatusCreated,
		do(t, r, http.MethodPost, "/services", `{"name":"Leather","base_price":900,"is_active":false}`).Code)
	require.Equal(t, http.StatusCreated,
		do(t, r, http.MethodPost, "/orders", `{"items":[{"service_id":1,"qty":1}]}`).Code)

	w := do(t, r, http.MethodGet, "/dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"services":2,"active_services":1,"orders_today":1,"income_today":232}`,
		w.Body.String())
}

func TestCORS(t *testing.T) {
	r := newTestRouter(t)

	t.Run("allowed origin preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/services", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
	})

	t.Run("unknown origin rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/services", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/health", "")
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", strings.NewReader(""))
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
