package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func ValidationErrors(c *gin.Context, messages []string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": messages})
}

// Created sets the Location header and responds 201 with an empty body.
func Created(c *gin.Context, location string) {
	c.Header("Location", location)
	c.Status(http.StatusCreated)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
