package handlers

import (
	"net/http"

	"cedarclub/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest backend health snapshot. A nil monitor
// reports only that the process is up.
func HealthHandler(monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ok", "message": "Hola, soy Cedar Club"}
		if monitor != nil {
			st := monitor.Status()
			body["backends"] = st
			if (st.Mongo != nil && !*st.Mongo) || contains(st.Redis, false) {
				body["status"] = "degraded"
			}
		}
		c.JSON(http.StatusOK, body)
	}
}

func contains(vs []bool, v bool) bool {
	for _, x := range vs {
		if x == v {
			return true
		}
	}
	return false
}
