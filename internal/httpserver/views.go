package httpserver

import (
	"time"

	"github.com/gin-gonic/gin"
	ptime "github.com/yaa110/go-persian-calendar"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"orderscan/internal/domain"
)

// apiResponse is the envelope every /api payload uses.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respondOK(c *gin.Context, status int, data any, msg string) {
	c.JSON(status, apiResponse{Success: true, Data: data, Message: msg})
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, apiResponse{Success: false, Message: msg})
}

var amountPrinter = message.NewPrinter(language.English)

// formatAmount renders a rial amount with grouped thousands, e.g. 150000
// becomes "150,000".
func formatAmount(v int64) string {
	return amountPrinter.Sprintf("%d", v)
}

func formatOptionalAmount(v *int64) *string {
	if v == nil {
		return nil
	}
	s := formatAmount(*v)
	return &s
}

// jalaliSecond renders a timestamp in the Jalali calendar, the form the
// station UI shows for log entries.
func jalaliSecond(t time.Time) string {
	return ptime.New(t).Format("yyyy/MM/dd HH:mm:ss")
}

// jalaliMinute is the short form used for scan timestamps.
func jalaliMinute(t time.Time) string {
	return ptime.New(t).Format("yyyy/MM/dd HH:mm")
}

type lineItemView struct {
	ID       string  `json:"id"`
	SKU      string  `json:"sku"`
	Title    string  `json:"title"`
	Color    string  `json:"color"`
	Quantity int     `json:"quantity"`
	Scanned  int     `json:"scanned"`
	Status   string  `json:"status"`
	Price    string  `json:"price"`
	State    string  `json:"state"`
	City     string  `json:"city"`
	Payment  *string `json:"payment"`
}

func toLineItemView(v domain.LineItemView) lineItemView {
	return lineItemView{
		ID:       v.OrderID,
		SKU:      v.SKU,
		Title:    v.Title,
		Color:    v.Color,
		Quantity: v.Quantity,
		Scanned:  v.Scanned,
		Status:   string(v.Status),
		Price:    formatAmount(v.Price),
		State:    v.State,
		City:     v.City,
		Payment:  formatOptionalAmount(v.Payment),
	}
}

type orderItemView struct {
	SKU       string  `json:"sku"`
	Title     string  `json:"title"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
	Scanned   int     `json:"scanned"`
	Status    string  `json:"status"`
	Price     string  `json:"price"`
	ScannedAt *string `json:"scannedAt,omitempty"`
}

type orderDetailView struct {
	OrderID   string          `json:"orderId"`
	State     string          `json:"state"`
	City      string          `json:"city"`
	Payment   *string         `json:"payment"`
	Status    string          `json:"status"`
	LineItems []orderItemView `json:"lineItems"`
}

func toOrderDetailView(ord *domain.Order) orderDetailView {
	out := orderDetailView{
		OrderID:   ord.ID,
		State:     ord.State,
		City:      ord.City,
		Payment:   formatOptionalAmount(ord.Payment),
		Status:    string(ord.Status),
		LineItems: make([]orderItemView, 0, len(ord.Items)),
	}
	for _, sku := range ord.SKUs {
		item := ord.Items[sku]
		view := orderItemView{
			SKU:      item.SKU,
			Title:    item.Title,
			Color:    item.Color,
			Quantity: item.Quantity,
			Scanned:  item.Scanned,
			Status:   string(item.Status()),
			Price:    formatAmount(item.Price),
		}
		if item.ScannedAt != nil {
			s := jalaliMinute(*item.ScannedAt)
			view.ScannedAt = &s
		}
		out.LineItems = append(out.LineItems, view)
	}
	return out
}

type logView struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	Details   string `json:"details,omitempty"`
}

func toLogView(e domain.LogEntry) logView {
	return logView{
		ID:        e.ID,
		Timestamp: jalaliSecond(e.Timestamp),
		Message:   e.Message,
		Status:    string(e.Status),
		Details:   e.Details,
	}
}
