// Package domain contains generated invoice entities. Invoices are created
// only by the billing engine and never mutated after creation.
package domain

import (
	"errors"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/chapincloud/meterbill/internal/catalog/domain"
	"github.com/chapincloud/meterbill/pkg/dates"
)

var ErrNotFound = errors.New("invoice_not_found")

// ConsumptionSnapshot is a frozen copy of one billed record. Lines never
// reference live consumption records.
type ConsumptionSnapshot struct {
	Hours     float64        `xml:"hours,attr" json:"hours"`
	Timestamp dates.DateTime `xml:"timestamp,attr" json:"timestamp"`
}

// Line is one instance's cost breakdown within an invoice.
type Line struct {
	InstanceID      int64                            `xml:"instanceId,attr" json:"instance_id"`
	ConfigurationID int64                            `xml:"configurationId,attr" json:"configuration_id"`
	BilledHours     float64                          `xml:"billedHours,attr" json:"billed_hours"`
	Subtotal        float64                          `xml:"subtotal,attr" json:"subtotal"`
	Resources       catalogdomain.ResourceQuantities `xml:"resources" json:"resources"`
	Consumptions    []ConsumptionSnapshot            `xml:"consumptions>consumption" json:"consumptions"`
}

// Invoice is one client's billed consumption for a reconciliation window.
type Invoice struct {
	ID          snowflake.ID `xml:"id,attr" json:"id"`
	ClientTaxID string       `xml:"clientTaxId,attr" json:"client_tax_id"`
	IssueDate   dates.Date   `xml:"issueDate" json:"issue_date"`
	PeriodStart dates.Date   `xml:"periodStart" json:"period_start"`
	Lines       []Line       `xml:"lines>line" json:"lines"`
	Total       float64      `xml:"total" json:"total"`
}
