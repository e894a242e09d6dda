package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/chapincloud/meterbill/internal/billing"
	billingdomain "github.com/chapincloud/meterbill/internal/billing/domain"
	"github.com/chapincloud/meterbill/internal/catalog"
	catalogdomain "github.com/chapincloud/meterbill/internal/catalog/domain"
	"github.com/chapincloud/meterbill/internal/client"
	clientdomain "github.com/chapincloud/meterbill/internal/client/domain"
	"github.com/chapincloud/meterbill/internal/config"
	"github.com/chapincloud/meterbill/internal/consumption"
	consumptiondomain "github.com/chapincloud/meterbill/internal/consumption/domain"
	"github.com/chapincloud/meterbill/internal/ingest"
	ingestdomain "github.com/chapincloud/meterbill/internal/ingest/domain"
	"github.com/chapincloud/meterbill/internal/invoice"
	invoicedomain "github.com/chapincloud/meterbill/internal/invoice/domain"
	"github.com/chapincloud/meterbill/internal/report"
	reportdomain "github.com/chapincloud/meterbill/internal/report/domain"
	"github.com/chapincloud/meterbill/pkg/docstore"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	catalog.Module,
	client.Module,
	consumption.Module,
	invoice.Module,
	billing.Module,
	report.Module,
	ingest.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin() *gin.Engine {
	return NewEngine()
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	log            *zap.Logger
	reportCfg      *config.ReportConfigHolder
	store          *docstore.Store
	catalogSvc     catalogdomain.Service
	clientSvc      clientdomain.Service
	consumptionSvc consumptiondomain.Service
	invoiceSvc     invoicedomain.Service
	billingSvc     billingdomain.Service
	reportSvc      reportdomain.Service
	ingestSvc      ingestdomain.Service
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	Log            *zap.Logger
	ReportCfg      *config.ReportConfigHolder
	Store          *docstore.Store
	CatalogSvc     catalogdomain.Service
	ClientSvc      clientdomain.Service
	ConsumptionSvc consumptiondomain.Service
	InvoiceSvc     invoicedomain.Service
	BillingSvc     billingdomain.Service
	ReportSvc      reportdomain.Service
	IngestSvc      ingestdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		log:            p.Log.Named("http.server"),
		reportCfg:      p.ReportCfg,
		store:          p.Store,
		catalogSvc:     p.CatalogSvc,
		clientSvc:      p.ClientSvc,
		consumptionSvc: p.ConsumptionSvc,
		invoiceSvc:     p.InvoiceSvc,
		billingSvc:     p.BillingSvc,
		reportSvc:      p.ReportSvc,
		ingestSvc:      p.IngestSvc,
	}

	svc.registerIngestRoutes()
	svc.registerBillingRoutes()
	svc.registerReportRoutes()
	svc.registerViewRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) registerIngestRoutes() {
	s.engine.POST("/catalog", s.IngestCatalog)
	s.engine.POST("/consumption", s.IngestConsumption)
}

func (s *Server) registerBillingRoutes() {
	s.engine.POST("/billing/runs", s.RunBilling)
}

func (s *Server) registerReportRoutes() {
	s.engine.POST("/reports/category", s.CategoryReport)
	s.engine.POST("/reports/resource", s.ResourceReport)
}

func (s *Server) registerViewRoutes() {
	s.engine.GET("/resources", s.ListResources)
	s.engine.GET("/categories", s.ListCategories)
	s.engine.GET("/clients", s.ListClients)
	s.engine.GET("/invoices", s.ListInvoices)
	s.engine.GET("/invoices/:id", s.GetInvoice)
	s.engine.GET("/state", s.GetState)
}

func (s *Server) registerAdminRoutes() {
	s.engine.POST("/admin/reset", s.ResetState)
}
