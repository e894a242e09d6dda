package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	billingdomain "github.com/chapincloud/meterbill/internal/billing/domain"
	reportdomain "github.com/chapincloud/meterbill/internal/report/domain"
)

type reportRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (s *Server) reportPeriod(c *gin.Context) (billingdomain.Period, bool) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return billingdomain.Period{}, false
	}

	period, err := billingdomain.ParsePeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		AbortWithError(c, err)
		return billingdomain.Period{}, false
	}
	return period, true
}

// CategoryReport ranks invoiced revenue by configuration and owning category
// over the requested window. Ranked lists are capped by the report config.
func (s *Server) CategoryReport(c *gin.Context) {
	period, ok := s.reportPeriod(c)
	if !ok {
		return
	}

	rep, err := s.reportSvc.CategoryReport(c.Request.Context(), period)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	cfg := s.reportCfg.Get()
	rep.Configurations = capRows(rep.Configurations, cfg.TopConfigurations)
	rep.Categories = capRows(rep.Categories, cfg.TopCategories)

	c.JSON(http.StatusOK, rep)
}

// ResourceReport ranks invoiced revenue by resource over the requested
// window, with hardware/software subtotals.
func (s *Server) ResourceReport(c *gin.Context) {
	period, ok := s.reportPeriod(c)
	if !ok {
		return
	}

	rep, err := s.reportSvc.ResourceReport(c.Request.Context(), period)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	cfg := s.reportCfg.Get()
	if len(rep.Rows) > cfg.TopResources {
		rep.Rows = rep.Rows[:cfg.TopResources]
	}

	c.JSON(http.StatusOK, rep)
}

func capRows(rows []reportdomain.RevenueRow, limit int) []reportdomain.RevenueRow {
	if len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
