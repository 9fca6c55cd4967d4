package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	categorysvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/category"
)

type categoryCreateRequest struct {
	Name  string `json:"name" binding:"required"`
	Order int    `json:"order"`
}

type categoryUpdateRequest struct {
	Name  *string `json:"name"`
	Order *int    `json:"order"`
}

func listCategoriesHandler(categories *categorysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := categories.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": all})
	}
}

func createCategoryHandler(categories *categorysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoryCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		category, err := categories.Create(c.Request.Context(), req.Name, req.Order)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"category": category})
	}
}

func updateCategoryHandler(categories *categorysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			badRequest(c, "invalid category id")
			return
		}
		var req categoryUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		category, err := categories.Update(c.Request.Context(), id, req.Name, req.Order)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": category})
	}
}

func deleteCategoryHandler(categories *categorysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			badRequest(c, "invalid category id")
			return
		}
		if err := categories.Delete(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}
