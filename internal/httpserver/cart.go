package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	cartsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/cart"
)

type cartLineRequest struct {
	SweetID int64 `json:"sweetId" binding:"required"`
	Grams   int64 `json:"grams" binding:"required"`
}

func getCartHandler(carts *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		cart, err := carts.Get(c.Request.Context(), userID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

func upsertCartHandler(carts *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req cartLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		cart, err := carts.AddOrUpdate(c.Request.Context(), userID, req.SweetID, req.Grams)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

func removeCartHandler(carts *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		sweetID, err := strconv.ParseInt(c.Param("sweetId"), 10, 64)
		if err != nil {
			badRequest(c, "invalid sweet id")
			return
		}
		cart, err := carts.Remove(c.Request.Context(), userID, sweetID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}
