package orderControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/samcraw1/walters-kitchen-kiosk/mailer"
	"github.com/samcraw1/walters-kitchen-kiosk/models"
	"github.com/samcraw1/walters-kitchen-kiosk/printer"
	"github.com/samcraw1/walters-kitchen-kiosk/receipt"
	"github.com/samcraw1/walters-kitchen-kiosk/settings"
)

// -------- Request Structs --------

// CreateOrderRequest mirrors the kiosk checkout payload. Amounts arrive
// pre-computed by the kiosk; the server trusts them.
type CreateOrderRequest struct {
	Items            []OrderLine `json:"items" binding:"required"`
	Subtotal         float64     `json:"subtotal"`
	Tax              float64     `json:"tax"`
	KioskFee         float64     `json:"kioskFee"`
	Total            float64     `json:"total"`
	CustomerName     string      `json:"customerName"`
	CustomerPhone    string      `json:"customerPhone"`
	DeliveryLocation string      `json:"deliveryLocation"`
	PaymentIntentID  string      `json:"paymentIntentId"` // hosted-intent flow
	PaymentID        string      `json:"paymentId"`       // server-relay flow
}

type OrderLine struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func (r CreateOrderRequest) paymentRef() string {
	if r.PaymentIntentID != "" {
		return r.PaymentIntentID
	}
	return r.PaymentID
}

// -------- Side Effects --------

// EffectSink observes the outcome of each fire-and-forget side effect
// (persist, print, email). The order path itself never fails on them; the
// sink is where the failures become visible.
type EffectSink interface {
	EffectSucceeded(effect, orderNumber string)
	EffectFailed(effect, orderNumber string, err error)
}

const (
	EffectPersist = "persist"
	EffectPrint   = "print"
	EffectEmail   = "email"
)

// LogSink is the production sink: server logs only.
type LogSink struct{}

func (LogSink) EffectSucceeded(effect, orderNumber string) {
	log.Printf("✅ %s done for order %s", effect, orderNumber)
}

func (LogSink) EffectFailed(effect, orderNumber string, err error) {
	log.Printf("❌ %s failed for order %s: %v", effect, orderNumber, err)
}

// -------- Core Logic --------

// NewOrderNumber derives the order number from the creation time: "WK" plus
// the last 8 digits of the unix-millisecond timestamp. Second-level entropy
// only; two orders in the same millisecond would collide.
func NewOrderNumber(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}
	return "WK" + ms
}

// Service owns order creation and its side effects.
type Service struct {
	DB     *gorm.DB
	Store  *settings.Store
	Mailer *mailer.Notifier
	Sink   EffectSink

	// Dispatch sends a rendered receipt to the print relay; swapped out in
	// tests.
	Dispatch func(cfg settings.Settings, content string) error
}

func NewService(db *gorm.DB, store *settings.Store, notifier *mailer.Notifier) *Service {
	return &Service{
		DB:       db,
		Store:    store,
		Mailer:   notifier,
		Sink:     LogSink{},
		Dispatch: dispatchPrint,
	}
}

func dispatchPrint(cfg settings.Settings, content string) error {
	printerID, err := strconv.Atoi(cfg.PrintNodePrinterID)
	if err != nil {
		return fmt.Errorf("invalid printer id %q", cfg.PrintNodePrinterID)
	}
	return printer.NewClient(cfg.PrintNodeAPIKey).SendPrintJob(printerID, "Order Receipt", content)
}

// Create mints the order number and runs the persist, print and email side
// effects. None of them can fail the order: once the number exists the kiosk
// gets its confirmation, and failures go to the sink only.
func (s *Service) Create(req CreateOrderRequest) string {
	now := time.Now()
	orderNumber := NewOrderNumber(now)

	order := models.Order{
		OrderNumber:      orderNumber,
		Subtotal:         req.Subtotal,
		KioskFee:         req.KioskFee,
		Tax:              req.Tax,
		Total:            req.Total,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		DeliveryLocation: req.DeliveryLocation,
		PaymentRef:       req.paymentRef(),
		Status:           models.OrderStatusPending,
		CreatedAt:        now,
	}
	for _, line := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			ItemID:    line.ID,
			Name:      line.Name,
			UnitPrice: line.Price,
			Quantity:  line.Quantity,
		})
	}

	if s.DB != nil {
		if err := s.DB.Create(&order).Error; err != nil {
			s.Sink.EffectFailed(EffectPersist, orderNumber, err)
		} else {
			s.Sink.EffectSucceeded(EffectPersist, orderNumber)
		}
	} else {
		s.Sink.EffectFailed(EffectPersist, orderNumber, errors.New("database not configured"))
	}

	// The kitchen display gets the order whether or not the insert worked.
	broadcastNewOrder(order)

	if s.Store != nil {
		if cfg, err := s.Store.Load(); err != nil {
			s.Sink.EffectFailed(EffectPrint, orderNumber, err)
		} else if cfg.PrintingConfigured() {
			text := receipt.Render(orderReceipt(order))
			if err := s.Dispatch(cfg, text); err != nil {
				s.Sink.EffectFailed(EffectPrint, orderNumber, err)
			} else {
				s.Sink.EffectSucceeded(EffectPrint, orderNumber)
			}
		}
	}

	if s.Mailer != nil {
		if err := s.Mailer.SendOrderEmail(order); err != nil {
			s.Sink.EffectFailed(EffectEmail, orderNumber, err)
		} else {
			s.Sink.EffectSucceeded(EffectEmail, orderNumber)
		}
	}

	return orderNumber
}

func orderReceipt(order models.Order) receipt.Receipt {
	r := receipt.Receipt{
		OrderNumber:      order.OrderNumber,
		Subtotal:         order.Subtotal,
		KioskFee:         order.KioskFee,
		Tax:              order.Tax,
		Total:            order.Total,
		CustomerName:     order.CustomerName,
		CustomerPhone:    order.CustomerPhone,
		DeliveryLocation: order.DeliveryLocation,
		PlacedAt:         order.CreatedAt,
	}
	for _, item := range order.Items {
		r.Items = append(r.Items, receipt.Item{
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return r
}

// -------- Handlers --------

// CreateOrderHandler places an order. The success response is unconditional
// once the order number is minted; see Service.Create.
func CreateOrderHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		orderNumber := svc.Create(req)
		c.JSON(http.StatusOK, gin.H{"orderNumber": orderNumber, "success": true})
	}
}

// GetOrderHandler looks up a persisted order by its order number. Without a
// database nothing was persisted, so the lookup answers with a pending stub
// rather than failing the confirmation screen.
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderNumber := c.Param("orderNumber")

		if db == nil {
			c.JSON(http.StatusOK, gin.H{"orderNumber": orderNumber, "status": string(models.OrderStatusPending)})
			return
		}

		var order models.Order
		if err := db.Preload("Items").Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
