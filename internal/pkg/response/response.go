package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type messageBody struct {
	Message string `json:"message"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, message string) {
	c.JSON(http.StatusCreated, messageBody{Message: message})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, messageBody{Message: message})
}

// Error writes the failure envelope and aborts the handler chain.
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorBody{Error: true, Message: message})
}
