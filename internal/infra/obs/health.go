package obs

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandlers wires the liveness and readiness probes. Readiness tracks
// whether the reservation store could be reached on the last availability
// refresh: a pod serving possibly stale dates should stop taking traffic.
type HealthHandlers struct {
	StoreReachable func() bool
}

func (h HealthHandlers) Livez(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (h HealthHandlers) Readyz(c *gin.Context) {
	if h.StoreReachable != nil && !h.StoreReachable() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "reservation store unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
