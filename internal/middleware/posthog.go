package middleware

import (
	"net/http"
	"time"

	"github.com/HPG21/czp-releases/internal/utils"
	"github.com/gin-gonic/gin"
)

const trackerKey = contextKey("eventTracker")

// untrackedRoutes are never reported as api_request events.
var untrackedRoutes = map[string]bool{
	"/health":       true,
	"/swagger/*any": true,
}

// PosthogMiddleware reports every successful authenticated request as an api_request
// event and makes the tracker available to TrackEvent.
func PosthogMiddleware(tracker *utils.EventTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !tracker.Enabled() {
			c.Next()
			return
		}
		c.Set(string(trackerKey), tracker)

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" || untrackedRoutes[route] || len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		// The user ID is set by AuthMiddleware further down the chain.
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		tracker.Track(userID, utils.EventAPIRequest, map[string]any{
			"route":       route,
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}
}

// TrackEvent sends a product event for the current user. It is a no-op when
// PosthogMiddleware did not run or product events are disabled.
func TrackEvent(c *gin.Context, event string, properties map[string]any) {
	val, exists := c.Get(string(trackerKey))
	if !exists {
		return
	}
	tracker, ok := val.(*utils.EventTracker)
	if !ok {
		return
	}
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return
	}

	if properties == nil {
		properties = make(map[string]any)
	}
	properties["route"] = c.FullPath()
	tracker.Track(userID, event, properties)
}
