package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ResetState deletes every persisted collection file. Meant for test
// environments; the next read of each collection starts empty.
func (s *Server) ResetState(c *gin.Context) {
	if err := s.store.Reset(); err != nil {
		AbortWithError(c, err)
		return
	}
	s.log.Info("persisted state reset")
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
