package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
	checkoutsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/checkout"
	otpsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/otp"
)

type verifyOtpRequest struct {
	Code string `json:"code" binding:"required"`
}

type placeOrderRequest struct {
	Address string `json:"address" binding:"required"`
	Name    string `json:"name"`
}

func sendOtpHandler(otps *otpsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		if err := otps.Issue(c.Request.Context(), userID, domain.PurposeOrderConfirm); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "otp sent"})
	}
}

func verifyOtpHandler(otps *otpsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req verifyOtpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := otps.Verify(c.Request.Context(), userID, domain.PurposeOrderConfirm, req.Code); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "otp verified"})
	}
}

func placeOrderHandler(checkout *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		snap, err := checkout.Place(c.Request.Context(), userID, checkoutsvc.PlaceInput{
			Address: req.Address,
			Name:    req.Name,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order": snap})
	}
}
