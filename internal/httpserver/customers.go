package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	custrepo "github.com/masoombaba16/Sweet-Shop-Management/internal/repository/customer"
	customersvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/customer"
)

type customerUpdateRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func listCustomersHandler(customers *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := customers.List(c.Request.Context(), c.Query("q"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"customers": all})
	}
}

func updateCustomerHandler(customers *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			badRequest(c, "invalid customer id")
			return
		}
		var req customerUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		customer, err := customers.Update(c.Request.Context(), id, custrepo.UpdateInput{
			Name:    req.Name,
			Phone:   req.Phone,
			Address: req.Address,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": customer})
	}
}

func deactivateCustomerHandler(customers *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			badRequest(c, "invalid customer id")
			return
		}
		customer, err := customers.Deactivate(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": customer})
	}
}

func banCustomerHandler(customers *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			badRequest(c, "invalid customer id")
			return
		}
		customer, err := customers.Ban(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": customer})
	}
}
