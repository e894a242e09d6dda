// Package domain contains client and instance entities.
package domain

import (
	"errors"
	"regexp"
	"strings"

	"github.com/chapincloud/meterbill/pkg/dates"
)

var (
	ErrInvalidTaxID          = errors.New("invalid_tax_id")
	ErrInvalidInstanceStatus = errors.New("invalid_instance_status")
	ErrCancelledWithoutEnd   = errors.New("cancelled_instance_without_end_date")
	ErrNotFound              = errors.New("client_not_found")
)

// taxIDPattern is digits, a dash, then a digit or check letter K.
var taxIDPattern = regexp.MustCompile(`^\d+-[0-9Kk]$`)

// ValidTaxID reports whether id matches the required tax id format.
func ValidTaxID(id string) bool {
	return taxIDPattern.MatchString(id)
}

// InstanceStatus is the lifecycle state of a provisioned instance.
type InstanceStatus string

const (
	InstanceStatusActive    InstanceStatus = "Active"
	InstanceStatusCancelled InstanceStatus = "Cancelled"
)

// Instance is a client's provisioned, billable unit. The configuration
// reference is weak: it carries an id only and every resolution site must
// handle the unresolved case.
type Instance struct {
	ID              int64          `xml:"id,attr" json:"id" validate:"required"`
	ConfigurationID int64          `xml:"configurationId" json:"configuration_id" validate:"required"`
	Name            string         `xml:"name" json:"name"`
	StartDate       dates.Date     `xml:"startDate" json:"start_date"`
	Status          InstanceStatus `xml:"status" json:"status" validate:"required,oneof=Active Cancelled"`
	EndDate         *dates.Date    `xml:"endDate,omitempty" json:"end_date,omitempty"`
}

// Normalize case-normalizes the status and clears the end date of an active
// instance regardless of input.
func (i *Instance) Normalize() {
	i.Status = InstanceStatus(titleCase(string(i.Status)))
	if i.Status == InstanceStatusActive {
		i.EndDate = nil
	}
}

// Validate enforces the state invariant after Normalize.
func (i Instance) Validate() error {
	switch i.Status {
	case InstanceStatusActive:
		return nil
	case InstanceStatusCancelled:
		if i.EndDate == nil {
			return ErrCancelledWithoutEnd
		}
		return nil
	default:
		return ErrInvalidInstanceStatus
	}
}

// Client owns its instances; everything else references it by tax id.
type Client struct {
	TaxID     string     `xml:"taxId,attr" json:"tax_id" validate:"required"`
	Name      string     `xml:"name" json:"name" validate:"required"`
	Username  string     `xml:"username" json:"username"`
	Secret    string     `xml:"secret" json:"secret"`
	Address   string     `xml:"address" json:"address"`
	Email     string     `xml:"email" json:"email"`
	Instances []Instance `xml:"instances>instance" json:"instances"`
}

// Validate checks the tax id format.
func (c Client) Validate() error {
	if !ValidTaxID(c.TaxID) {
		return ErrInvalidTaxID
	}
	return nil
}

// InstanceByID scans the client's own instance list.
func (c Client) InstanceByID(id int64) (Instance, bool) {
	for _, inst := range c.Instances {
		if inst.ID == id {
			return inst, true
		}
	}
	return Instance{}, false
}

func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
