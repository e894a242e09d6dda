// Package domain contains the batch intake types. Ingestion deposits
// validated entities into the persisted collections: catalog batches replace
// whole collections, consumption batches merge-append.
package domain

import (
	"context"
	"fmt"

	catalogdomain "github.com/chapincloud/meterbill/internal/catalog/domain"
	clientdomain "github.com/chapincloud/meterbill/internal/client/domain"
	"github.com/chapincloud/meterbill/pkg/dates"
)

// CatalogBatch carries validated-on-intake entity collections. Every
// non-empty list replaces its whole persisted collection.
type CatalogBatch struct {
	Resources  []catalogdomain.Resource `json:"resources"`
	Categories []catalogdomain.Category `json:"categories"`
	Clients    []clientdomain.Client    `json:"clients"`
}

// ConsumptionEntry is one raw usage observation against an instance.
type ConsumptionEntry struct {
	ClientTaxID string         `json:"client_tax_id"`
	InstanceID  int64          `json:"instance_id"`
	Hours       float64        `json:"hours"`
	Timestamp   dates.DateTime `json:"timestamp"`
}

// ConsumptionBatch is merge-appended into the consumption collection.
type ConsumptionBatch struct {
	Entries []ConsumptionEntry `json:"entries"`
}

// CatalogResult reports what a catalog batch produced. Errors are per-entity
// validation failures; the rest of the batch still landed.
type CatalogResult struct {
	Resources      int      `json:"resources_created"`
	Categories     int      `json:"categories_created"`
	Configurations int      `json:"configurations_created"`
	Clients        int      `json:"clients_created"`
	Instances      int      `json:"instances_created"`
	Errors         []string `json:"errors"`
}

// ConsumptionResult reports what a consumption batch produced.
type ConsumptionResult struct {
	Records int      `json:"records_processed"`
	Errors  []string `json:"errors"`
}

// ValidationError marks one entity of a batch as malformed. It is fatal to
// that entity only; ingestion of the remaining entities proceeds.
type ValidationError struct {
	Entity    string
	Reference string
	Err       error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %s: %v", e.Entity, e.Reference, e.Err)
}

func (e ValidationError) Unwrap() error { return e.Err }

// Service is the intake surface used by external ingestion callers.
type Service interface {
	IngestCatalog(ctx context.Context, batch CatalogBatch) (CatalogResult, error)
	IngestConsumption(ctx context.Context, batch ConsumptionBatch) (ConsumptionResult, error)
}
