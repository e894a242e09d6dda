package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	billingdomain "github.com/chapincloud/meterbill/internal/billing/domain"
)

type billingRunRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

// RunBilling reconciles unbilled consumption inside the requested day/month/year
// window. Malformed dates fail the call before any processing starts.
func (s *Server) RunBilling(c *gin.Context) {
	var req billingRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	period, err := billingdomain.ParsePeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.billingSvc.Reconcile(c.Request.Context(), period)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
