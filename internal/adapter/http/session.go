package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionHeader = "X-Session-Id"

// sessionID returns the caller's session id, issuing a fresh one when
// the header is absent. The id is always echoed back so the client can
// persist it.
func sessionID(c *gin.Context) string {
	id := c.GetHeader(sessionHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Header(sessionHeader, id)
	return id
}
