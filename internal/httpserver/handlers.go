package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"orderscan/internal/domain"
	"orderscan/internal/importer"
)

func pingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "pong",
		"timestamp": jalaliSecond(time.Now()),
	})
}

func systemStatusHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := deps.Orders.Stats()
		respondOK(c, http.StatusOK, gin.H{
			"status":    "operational",
			"message":   "System is running normally",
			"timestamp": jalaliSecond(time.Now()),
			"stats": gin.H{
				"total_orders": stats.Orders,
				"total_logs":   deps.Audit.Len(),
			},
		}, "")
	}
}

func listLogsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries := deps.Audit.Entries()
		views := make([]logView, 0, len(entries))
		for _, e := range entries {
			views = append(views, toLogView(e))
		}
		respondOK(c, http.StatusOK, views, "")
	}
}

func listOrdersHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := deps.Orders.ListLineItems()
		views := make([]lineItemView, 0, len(items))
		for _, it := range items {
			views = append(views, toLineItemView(it))
		}
		respondOK(c, http.StatusOK, views, "")
	}
}

func getOrderHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ord, err := deps.Orders.Get(c.Param("orderID"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				respondError(c, http.StatusNotFound, "Order not found")
				return
			}
			respondError(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		respondOK(c, http.StatusOK, toOrderDetailView(ord), "")
	}
}

type scanRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	SKU     string `json:"sku" binding:"required"`
}

func scanHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req scanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Missing required fields")
			return
		}

		if _, err := deps.Fulfillment.Scan(req.OrderID, req.SKU); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				respondError(c, http.StatusNotFound, "Order or SKU not found")
				return
			}
			respondError(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		respondOK(c, http.StatusOK, nil, "Scan successful")
	}
}

func uploadHandler(deps Deps, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			deps.Audit.Record("File upload failed", domain.LogError, "No file provided")
			respondError(c, http.StatusBadRequest, "No file provided")
			return
		}

		if _, err := importer.DetectFormat(fh.Filename); err != nil {
			deps.Audit.Record("File upload failed", domain.LogError,
				fmt.Sprintf("Invalid file format: %s", fh.Filename))
			respondError(c, http.StatusBadRequest, "Invalid file format")
			return
		}

		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			deps.Audit.Record("File upload failed", domain.LogError, err.Error())
			respondError(c, http.StatusInternalServerError, "Error saving file")
			return
		}
		dst := filepath.Join(uploadDir, filepath.Base(fh.Filename))
		if err := c.SaveUploadedFile(fh, dst); err != nil {
			deps.Audit.Record("File upload failed", domain.LogError, err.Error())
			respondError(c, http.StatusInternalServerError, "Error saving file")
			return
		}

		rows, err := importer.ParseFile(dst)
		if err != nil {
			deps.Audit.Record("File processing failed", domain.LogError, err.Error())
			respondError(c, http.StatusInternalServerError, "Error processing file")
			return
		}

		res := deps.Ingest.IngestRows(rows)
		data := gin.H{"processed_count": res.Processed}
		if len(res.Errors) > 0 {
			msgs := make([]string, 0, len(res.Errors))
			for _, rowErr := range res.Errors {
				msgs = append(msgs, rowErr.Error())
			}
			data["errors"] = msgs
		}
		respondOK(c, http.StatusOK, data, "File uploaded and processed successfully")
	}
}
