package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	ingestdomain "github.com/chapincloud/meterbill/internal/ingest/domain"
)

// IngestCatalog accepts a structured batch of resources, categories and
// clients. Each non-empty list replaces its whole persisted collection.
// Per-entity validation failures are reported in the result, not as an HTTP
// error.
func (s *Server) IngestCatalog(c *gin.Context) {
	var batch ingestdomain.CatalogBatch
	if err := c.ShouldBindJSON(&batch); err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	result, err := s.ingestSvc.IngestCatalog(c.Request.Context(), batch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// IngestConsumption merge-appends a consumption batch into the stored groups.
func (s *Server) IngestConsumption(c *gin.Context) {
	var batch ingestdomain.ConsumptionBatch
	if err := c.ShouldBindJSON(&batch); err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	result, err := s.ingestSvc.IngestConsumption(c.Request.Context(), batch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
