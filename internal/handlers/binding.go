package handlers

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/middleware"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/services"
)

// BindNestedOrFlat attempts to bind the request body to obj.
// It first checks if the body contains a nested object with the given key
// (e.g. {"beneficiary": {...}}). If so, it binds that nested object to obj.
// If not, it attempts to bind the entire body to obj. This supports both
// nested and flat JSON structures for frontend compatibility.
func BindNestedOrFlat(c *gin.Context, key string, obj interface{}) error {
	var bodyBytes []byte
	if c.Request.Body != nil {
		bodyBytes, _ = io.ReadAll(c.Request.Body)
	}
	// Restore body for future binding or subsequent reads
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	var nestedMap map[string]json.RawMessage
	if err := json.Unmarshal(bodyBytes, &nestedMap); err == nil {
		if val, ok := nestedMap[key]; ok {
			return json.Unmarshal(val, obj)
		}
	}

	return json.Unmarshal(bodyBytes, obj)
}

// currentActorID returns the authenticated user ID, or nil for
// unauthenticated requests. Audit rows carry a nullable actor.
func currentActorID(c *gin.Context) *uint {
	id := middleware.GetUserID(c)
	if id == 0 {
		return nil
	}
	return &id
}

// currentActor captures who is performing an action plus the request
// metadata the audit trail records.
func currentActor(c *gin.Context) services.Actor {
	return services.Actor{
		UserID:    currentActorID(c),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
