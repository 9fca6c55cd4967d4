package httpserver

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/repository/image"
	sweetrepo "github.com/masoombaba16/Sweet-Shop-Management/internal/repository/sweet"
	catalogsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/catalog"
)

const maxImageBytes = 5 << 20

type sweetCreateRequest struct {
	Name                   string   `json:"name" binding:"required"`
	Category               string   `json:"category"`
	Description            string   `json:"description"`
	PricePerKgPaise        int64    `json:"pricePerKgPaise" binding:"required"`
	CostPerKgPaise         int64    `json:"costPerKgPaise"`
	StockGrams             int64    `json:"stockGrams"`
	LowStockThresholdGrams int64    `json:"lowStockThresholdGrams"`
	Tags                   []string `json:"tags"`
}

type sweetUpdateRequest struct {
	Name                   *string   `json:"name"`
	Category               *string   `json:"category"`
	Description            *string   `json:"description"`
	PricePerKgPaise        *int64    `json:"pricePerKgPaise"`
	CostPerKgPaise         *int64    `json:"costPerKgPaise"`
	StockGrams             *int64    `json:"stockGrams"`
	LowStockThresholdGrams *int64    `json:"lowStockThresholdGrams"`
	Tags                   *[]string `json:"tags"`
}

type restockRequest struct {
	Grams int64 `json:"grams" binding:"required"`
}

// listSweetsHandler serves the catalog. The public variant pins the listing
// to visible sweets; the admin variant sees everything and may filter on
// visibility explicitly.
func listSweetsHandler(catalog *catalogsvc.Service, includeHidden bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := sweetrepo.ListFilter{
			Query:    c.Query("q"),
			Category: c.Query("category"),
			Tag:      c.Query("tag"),
			InStock:  c.Query("inStock") == "true",
		}
		if v, err := strconv.ParseInt(c.Query("minPrice"), 10, 64); err == nil {
			filter.MinPricePaise = &v
		}
		if v, err := strconv.ParseInt(c.Query("maxPrice"), 10, 64); err == nil {
			filter.MaxPricePaise = &v
		}
		if includeHidden {
			if raw := c.Query("visible"); raw != "" {
				visible := raw == "true"
				filter.Visible = &visible
			}
		} else {
			visible := true
			filter.Visible = &visible
		}

		sweets, err := catalog.List(c.Request.Context(), filter)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sweets": sweets})
	}
}

func getSweetHandler(catalog *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sweet, err := catalog.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sweet": sweet})
	}
}

func sweetQuantityHandler(catalog *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		grams, err := catalog.Quantity(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"stockGrams": grams})
	}
}

func createSweetHandler(catalog *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sweetCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		sweet, err := catalog.Create(c.Request.Context(), catalogsvc.CreateInput{
			Name:                   req.Name,
			Category:               req.Category,
			Description:            req.Description,
			PricePerKgPaise:        req.PricePerKgPaise,
			CostPerKgPaise:         req.CostPerKgPaise,
			StockGrams:             req.StockGrams,
			LowStockThresholdGrams: req.LowStockThresholdGrams,
			Tags:                   req.Tags,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"sweet": sweet})
	}
}

func updateSweetHandler(catalog *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sweetUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		sweet, err := catalog.Update(c.Request.Context(), c.Param("id"), sweetrepo.UpdateInput{
			Name:                   req.Name,
			Category:               req.Category,
			Description:            req.Description,
			PricePerKgPaise:        req.PricePerKgPaise,
			CostPerKgPaise:         req.CostPerKgPaise,
			StockGrams:             req.StockGrams,
			LowStockThresholdGrams: req.LowStockThresholdGrams,
			Tags:                   req.Tags,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sweet": sweet})
	}
}

func deleteSweetHandler(catalog *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}

func toggleSweetHandler(catalog *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sweet, err := catalog.ToggleVisible(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sweet": sweet})
	}
}

func restockSweetHandler(catalog *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req restockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		sweet, err := catalog.Restock(c.Request.Context(), c.Param("id"), req.Grams)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sweet": sweet})
	}
}

// uploadSweetImageHandler stores the multipart file and points the sweet at
// it.
func uploadSweetImageHandler(catalog *catalogsvc.Service, images *image.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("image")
		if err != nil {
			badRequest(c, "image file required")
			return
		}
		if header.Size > maxImageBytes {
			badRequest(c, "image too large")
			return
		}
		file, err := header.Open()
		if err != nil {
			writeError(c, err)
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		imageID, err := images.Upload(c.Request.Context(), header.Filename, contentType, file)
		if err != nil {
			writeError(c, err)
			return
		}
		sweet, err := catalog.Update(c.Request.Context(), c.Param("id"), sweetrepo.UpdateInput{ImageID: &imageID})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sweet": sweet})
	}
}

func downloadImageHandler(images *image.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		stream, contentType, err := images.Open(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		defer stream.Close()
		c.Header("Cache-Control", "public, max-age=86400")
		c.Header("Content-Type", contentType)
		c.Status(http.StatusOK)
		_, _ = io.Copy(c.Writer, stream)
	}
}
