package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHome godoc
// @Summary Service banner
// @Description Returns a static banner useful for smoke checks.
// @Tags home
// @Produce  json
// @Success 200 {object} map[string]string
// @Router /home [get]
func GetHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": "hiring-pipeline", "status": "ok"})
}
