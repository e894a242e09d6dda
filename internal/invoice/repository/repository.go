// Package repository persists invoices as one append-only XML document.
package repository

import (
	"context"
	"encoding/xml"

	"github.com/chapincloud/meterbill/internal/invoice/domain"
	"github.com/chapincloud/meterbill/pkg/docstore"
)

type invoiceDocument struct {
	XMLName  xml.Name         `xml:"invoices"`
	Invoices []domain.Invoice `xml:"invoice"`
}

type Repository struct {
	invoices *docstore.Collection
}

func New(store *docstore.Store) *Repository {
	return &Repository{invoices: store.Collection("invoices")}
}

func (r *Repository) LoadAll(ctx context.Context) ([]domain.Invoice, error) {
	var doc invoiceDocument
	if err := r.invoices.Load(&doc); err != nil {
		return nil, err
	}
	return doc.Invoices, nil
}

// Append extends the stored collection with the newly generated invoices.
// The load and rewrite run under the collection's write lock.
func (r *Repository) Append(ctx context.Context, invoices []domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	return r.invoices.Update(func(tx *docstore.Tx) error {
		var doc invoiceDocument
		if err := tx.Load(&doc); err != nil {
			return err
		}
		doc.Invoices = append(doc.Invoices, invoices...)
		return tx.Store(&doc)
	})
}
