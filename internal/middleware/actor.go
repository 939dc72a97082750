package middleware

import "github.com/gin-gonic/gin"

// actorHeader carries the id of the operator performing the request.
// Authentication is handled upstream of this service; the header is trusted
// as-is and only feeds audit fields.
const actorHeader = "X-Actor-ID"

const defaultActor = "system"

// GetActorFromContext returns the acting user's id for audit trails,
// defaulting to "system" when the header is absent.
func GetActorFromContext(c *gin.Context) string {
	if actor := c.GetHeader(actorHeader); actor != "" {
		return actor
	}
	return defaultActor
}
