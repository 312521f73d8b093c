package orderControllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/samcraw1/walters-kitchen-kiosk/models"
	"github.com/samcraw1/walters-kitchen-kiosk/settings"
)

type recordingSink struct {
	succeeded map[string]int
	failed    map[string]error
}

func newRecordingSink() *recordingSink {
	return &recordingSink{succeeded: map[string]int{}, failed: map[string]error{}}
}

func (s *recordingSink) EffectSucceeded(effect, orderNumber string) {
	s.succeeded[effect]++
}

func (s *recordingSink) EffectFailed(effect, orderNumber string, err error) {
	s.failed[effect] = err
}

func newOrderDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Setting{}))
	return db
}

func fixtureRequest() CreateOrderRequest {
	return CreateOrderRequest{
		Items: []OrderLine{
			{ID: 1, Name: "Test Item 1", Price: 10.00, Quantity: 2},
			{ID: 2, Name: "Test Item 2", Price: 5.50, Quantity: 1},
		},
		Subtotal:         25.50,
		Tax:              2.35,
		KioskFee:         3.00,
		Total:            30.85,
		CustomerName:     "Test Customer",
		CustomerPhone:    "(555) 123-4567",
		DeliveryLocation: "Table 1",
		PaymentIntentID:  "pi_123",
	}
}

func TestNewOrderNumber(t *testing.T) {
	now := time.UnixMilli(1700000012345)
	number := NewOrderNumber(now)

	assert.Equal(t, "WK00012345", number)
	assert.True(t, strings.HasPrefix(number, "WK"))
	assert.Len(t, number, 10)
}

func TestCreatePersistsOrder(t *testing.T) {
	db := newOrderDB(t)
	sink := newRecordingSink()
	svc := NewService(db, settings.NewStore(db), nil)
	svc.Sink = sink

	orderNumber := svc.Create(fixtureRequest())
	require.NotEmpty(t, orderNumber)

	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order, "order_number = ?", orderNumber).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "pi_123", order.PaymentRef)
	assert.InDelta(t, 30.85, order.Total, 1e-9)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Test Item 1", order.Items[0].Name)
	assert.Equal(t, 2, order.Items[0].Quantity)

	assert.Equal(t, 1, sink.succeeded[EffectPersist])
	assert.Empty(t, sink.failed)
}

func TestCreateWithoutDatabaseStillSucceeds(t *testing.T) {
	sink := newRecordingSink()
	svc := NewService(nil, settings.NewStore(nil), nil)
	svc.Sink = sink

	// Documented best-effort policy: the customer sees a confirmed order
	// even when nothing was written anywhere.
	orderNumber := svc.Create(fixtureRequest())
	assert.NotEmpty(t, orderNumber)
	assert.Error(t, sink.failed[EffectPersist])
}

func TestCreatePrintsWhenConfigured(t *testing.T) {
	db := newOrderDB(t)
	store := settings.NewStore(db)
	require.NoError(t, store.Put(settings.KeyPrintNodeAPIKey, "pn-key"))
	require.NoError(t, store.Put(settings.KeyPrintNodePrinterID, "42"))

	sink := newRecordingSink()
	svc := NewService(db, store, nil)
	svc.Sink = sink

	var printed string
	svc.Dispatch = func(cfg settings.Settings, content string) error {
		printed = content
		return nil
	}

	orderNumber := svc.Create(fixtureRequest())
	assert.Equal(t, 1, sink.succeeded[EffectPrint])
	assert.Contains(t, printed, "Order #: "+orderNumber)
	assert.Contains(t, printed, "2x Test Item 1            $20.00")
}

func TestCreateSwallowsPrintFailure(t *testing.T) {
	db := newOrderDB(t)
	store := settings.NewStore(db)
	require.NoError(t, store.Put(settings.KeyPrintNodeAPIKey, "pn-key"))
	require.NoError(t, store.Put(settings.KeyPrintNodePrinterID, "42"))

	sink := newRecordingSink()
	svc := NewService(db, store, nil)
	svc.Sink = sink
	svc.Dispatch = func(cfg settings.Settings, content string) error {
		return errors.New("printer offline")
	}

	orderNumber := svc.Create(fixtureRequest())
	assert.NotEmpty(t, orderNumber)
	assert.Error(t, sink.failed[EffectPrint])
	assert.Equal(t, 1, sink.succeeded[EffectPersist])
}

func TestCreateSkipsPrintWhenUnconfigured(t *testing.T) {
	db := newOrderDB(t)
	sink := newRecordingSink()
	svc := NewService(db, settings.NewStore(db), nil)
	svc.Sink = sink
	svc.Dispatch = func(cfg settings.Settings, content string) error {
		t.Fatal("dispatch must not run without printer settings")
		return nil
	}

	svc.Create(fixtureRequest())
	assert.Zero(t, sink.succeeded[EffectPrint])
	assert.NoError(t, sink.failed[EffectPrint])
}

func TestCreateOrderHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newOrderDB(t)
	svc := NewService(db, settings.NewStore(db), nil)

	r := gin.New()
	r.POST("/api/orders", CreateOrderHandler(svc))

	body, err := json.Marshal(fixtureRequest())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		OrderNumber string `json:"orderNumber"`
		Success     bool   `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.OrderNumber, "WK"))
}

func TestCreateOrderHandlerRejectsMissingItems(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewService(nil, settings.NewStore(nil), nil)

	r := gin.New()
	r.POST("/api/orders", CreateOrderHandler(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(`{"subtotal": 10}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newOrderDB(t)
	svc := NewService(db, settings.NewStore(db), nil)
	orderNumber := svc.Create(fixtureRequest())

	r := gin.New()
	r.GET("/api/orders/:orderNumber", GetOrderHandler(db))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/orders/"+orderNumber, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, orderNumber, order.OrderNumber)
	assert.Len(t, order.Items, 2)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/orders/WK99999999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrderHandlerWithoutDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/orders/:orderNumber", GetOrderHandler(nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/orders/WK00012345", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "WK00012345", resp["orderNumber"])
	assert.Equal(t, "pending", resp["status"])
}
