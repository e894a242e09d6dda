// Package dates carries the day/month/year textual date forms used across the
// persisted collections and the public API.
package dates

import (
	"encoding/xml"
	"fmt"
	"time"
)

const (
	// DayLayout is the textual form of a calendar day.
	DayLayout = "02/01/2006"
	// MinuteLayout is the textual form of a consumption timestamp.
	MinuteLayout = "02/01/2006 15:04"
)

// Date is a calendar day in day/month/year form.
type Date struct {
	time.Time
}

// ParseDate parses a day/month/year date.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DayLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return Date{Time: t}, nil
}

func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(DayLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return fmt.Errorf("invalid date %s", raw)
	}
	parsed, err := ParseDate(raw[1 : len(raw)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(d.String(), start)
}

func (d *Date) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	var raw string
	if err := dec.DecodeElement(&raw, &start); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	return xml.Attr{Name: name, Value: d.String()}, nil
}

func (d *Date) UnmarshalXMLAttr(attr xml.Attr) error {
	parsed, err := ParseDate(attr.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateTime is a minute-precision timestamp in day/month/year form.
type DateTime struct {
	time.Time
}

// ParseDateTime parses a day/month/year timestamp with minute precision.
func ParseDateTime(value string) (DateTime, error) {
	t, err := time.Parse(MinuteLayout, value)
	if err != nil {
		return DateTime{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return DateTime{Time: t}, nil
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t.Truncate(time.Minute).UTC()}
}

func (d DateTime) String() string {
	return d.Format(MinuteLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return fmt.Errorf("invalid timestamp %s", raw)
	}
	parsed, err := ParseDateTime(raw[1 : len(raw)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DateTime) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(d.String(), start)
}

func (d *DateTime) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	var raw string
	if err := dec.DecodeElement(&raw, &start); err != nil {
		return err
	}
	parsed, err := ParseDateTime(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DateTime) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	return xml.Attr{Name: name, Value: d.String()}, nil
}

func (d *DateTime) UnmarshalXMLAttr(attr xml.Attr) error {
	parsed, err := ParseDateTime(attr.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
