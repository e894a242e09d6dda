package server

import (
	"fmt"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	catalogdomain "github.com/chapincloud/meterbill/internal/catalog/domain"
	clientdomain "github.com/chapincloud/meterbill/internal/client/domain"
	consumptiondomain "github.com/chapincloud/meterbill/internal/consumption/domain"
	invoicedomain "github.com/chapincloud/meterbill/internal/invoice/domain"
)

// Collection snapshots for external renderers. They return the persisted
// state as-is; shaping is the renderer's job.

func (s *Server) ListResources(c *gin.Context) {
	resources, err := s.catalogSvc.ListResources(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

func (s *Server) ListCategories(c *gin.Context) {
	categories, err := s.catalogSvc.ListCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (s *Server) ListClients(c *gin.Context) {
	clients, err := s.clientSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

func (s *Server) ListInvoices(c *gin.Context) {
	invoices, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (s *Server) GetInvoice(c *gin.Context) {
	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, fmt.Errorf("%w: invalid invoice id", ErrInvalidRequest))
		return
	}

	inv, err := s.invoiceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

type stateView struct {
	Resources   []catalogdomain.Resource  `json:"resources"`
	Categories  []catalogdomain.Category  `json:"categories"`
	Clients     []clientdomain.Client     `json:"clients"`
	Consumption []consumptiondomain.Group `json:"consumption"`
	Invoices    []invoicedomain.Invoice   `json:"invoices"`
}

// GetState returns a combined snapshot of every persisted collection.
func (s *Server) GetState(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		view stateView
		err  error
	)
	if view.Resources, err = s.catalogSvc.ListResources(ctx); err != nil {
		AbortWithError(c, err)
		return
	}
	if view.Categories, err = s.catalogSvc.ListCategories(ctx); err != nil {
		AbortWithError(c, err)
		return
	}
	if view.Clients, err = s.clientSvc.List(ctx); err != nil {
		AbortWithError(c, err)
		return
	}
	if view.Consumption, err = s.consumptionSvc.List(ctx); err != nil {
		AbortWithError(c, err)
		return
	}
	if view.Invoices, err = s.invoiceSvc.List(ctx); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
