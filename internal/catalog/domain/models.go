// Package domain contains the priced resource catalog entities.
package domain

import (
	"encoding/xml"
	"errors"
	"sort"
	"strconv"
	"strings"
)

// ResourceKind distinguishes hardware from software resources.
type ResourceKind string

const (
	ResourceKindHardware ResourceKind = "Hardware"
	ResourceKindSoftware ResourceKind = "Software"
)

var ErrInvalidResourceKind = errors.New("invalid_resource_kind")

// Resource is an immutable catalog row priced per hour of use.
type Resource struct {
	ID           int64        `xml:"id,attr" json:"id" validate:"required"`
	Name         string       `xml:"name" json:"name" validate:"required"`
	Abbreviation string       `xml:"abbreviation" json:"abbreviation"`
	Metric       string       `xml:"metric" json:"metric"`
	Kind         ResourceKind `xml:"kind" json:"kind" validate:"required,oneof=Hardware Software"`
	PricePerHour float64      `xml:"pricePerHour" json:"price_per_hour" validate:"gte=0"`
}

// Normalize case-normalizes the kind before validation.
func (r *Resource) Normalize() {
	r.Kind = ResourceKind(titleCase(string(r.Kind)))
}

// ResourceQuantities maps a resource id to its per-hour quantity multiplier.
type ResourceQuantities map[int64]float64

// Configuration is a priced bundle of per-hour resource quantities.
type Configuration struct {
	ID          int64              `xml:"id,attr" json:"id" validate:"required"`
	Name        string             `xml:"name" json:"name" validate:"required"`
	Description string             `xml:"description" json:"description"`
	Resources   ResourceQuantities `xml:"resources" json:"resources"`
}

// Category owns an ordered list of configurations.
type Category struct {
	ID             int64           `xml:"id,attr" json:"id" validate:"required"`
	Name           string          `xml:"name" json:"name" validate:"required"`
	Description    string          `xml:"description" json:"description"`
	Workload       string          `xml:"workload" json:"workload"`
	Configurations []Configuration `xml:"configurations>configuration" json:"configurations" validate:"dive"`
}

func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// MarshalXML writes quantities as <resource id="...">qty</resource> children
// in ascending id order so serialized documents are deterministic.
func (q ResourceQuantities) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	ids := make([]int64, 0, len(q))
	for id := range q {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		el := xml.StartElement{
			Name: xml.Name{Local: "resource"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "id"}, Value: strconv.FormatInt(id, 10)}},
		}
		if err := e.EncodeElement(q[id], el); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (q *ResourceQuantities) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	type entry struct {
		ID       int64  `xml:"id,attr"`
		Quantity string `xml:",chardata"`
	}
	out := make(ResourceQuantities)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var ent entry
			if err := d.DecodeElement(&ent, &t); err != nil {
				return err
			}
			qty, err := strconv.ParseFloat(strings.TrimSpace(ent.Quantity), 64)
			if err != nil {
				return err
			}
			out[ent.ID] = qty
		case xml.EndElement:
			*q = out
			return nil
		}
	}
}
