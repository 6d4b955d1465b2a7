package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/core"

	"github.com/gin-gonic/gin"
)

const (
	resultSuccess = "success"
	resultError   = "error"
)

// Route groups used as the "group" label of the HTTP metrics
const (
	RouteGroupAuth      = "auth"
	RouteGroupAccount   = "account"
	RouteGroupAdmin     = "admin"
	RouteGroupHealth    = "health"
	RouteGroupDocs      = "docs"
	RouteGroupOther     = "other"
	RouteGroupUnmatched = "unmatched"
)

const providerParam = ":provider"

// HTTPMetricsMiddleware records request count, latency and denials per route.
// Requests that match no route share one label so scanners cannot blow up
// the series count.
func HTTPMetricsMiddleware(m core.Recorder) gin.HandlerFunc {
	metrics, ok := m.(*Metrics)
	if !ok {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		c.Next()

		duration := time.Since(start).Seconds()
		code := c.Writer.Status()
		route := routeLabel(c.FullPath(), c.Param("provider"), code)
		group := routeGroup(c.FullPath())

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, group, strconv.Itoa(code)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(duration)
		if code == http.StatusUnauthorized || code == http.StatusForbidden {
			metrics.HTTPDeniedTotal.WithLabelValues(group, strconv.Itoa(code)).Inc()
		}
	}
}

// routeLabel returns the route pattern of a request. Sign-in routes carry the
// provider name once the handler accepted it; unknown providers end in 404 and
// keep the pattern.
func routeLabel(fullPath, provider string, code int) string {
	if fullPath == "" {
		return RouteGroupUnmatched
	}
	if provider != "" && code != http.StatusNotFound && strings.Contains(fullPath, providerParam) {
		return strings.Replace(fullPath, providerParam, provider, 1)
	}
	return fullPath
}

func routeGroup(fullPath string) string {
	if fullPath == "" {
		return RouteGroupUnmatched
	}
	first, _, _ := strings.Cut(strings.TrimPrefix(fullPath, "/"), "/")
	switch first {
	case "auth":
		return RouteGroupAuth
	case "account":
		return RouteGroupAccount
	case "admin":
		return RouteGroupAdmin
	case "health":
		return RouteGroupHealth
	case "swagger":
		return RouteGroupDocs
	default:
		return RouteGroupOther
	}
}
