// Package domain contains raw consumption entities. Records accrue against an
// instance and are billed exactly once: the billed flag only ever moves from
// false to true.
package domain

import (
	"github.com/chapincloud/meterbill/pkg/dates"
)

// GroupKey is the composite key a consumption group is merged under.
type GroupKey struct {
	ClientTaxID string
	InstanceID  int64
}

// Record is one timestamped usage observation.
type Record struct {
	Hours     float64        `xml:"hours" json:"hours"`
	Timestamp dates.DateTime `xml:"timestamp" json:"timestamp"`
	Billed    bool           `xml:"billed,attr" json:"billed"`
}

// Group holds the ordered records of one (client, instance) pair. Ingesting
// new records for an existing key extends the list, never replaces it.
type Group struct {
	ClientTaxID string   `xml:"clientTaxId,attr" json:"client_tax_id"`
	InstanceID  int64    `xml:"instanceId,attr" json:"instance_id"`
	Records     []Record `xml:"record" json:"records"`
}

func (g Group) Key() GroupKey {
	return GroupKey{ClientTaxID: g.ClientTaxID, InstanceID: g.InstanceID}
}
