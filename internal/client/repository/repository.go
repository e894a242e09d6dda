// Package repository persists the client collection as one XML document with
// instances embedded under their owning client.
package repository

import (
	"context"
	"encoding/xml"

	"github.com/chapincloud/meterbill/internal/client/domain"
	"github.com/chapincloud/meterbill/pkg/docstore"
)

type clientDocument struct {
	XMLName xml.Name        `xml:"clients"`
	Clients []domain.Client `xml:"client"`
}

type Repository struct {
	clients *docstore.Collection
}

func New(store *docstore.Store) *Repository {
	return &Repository{clients: store.Collection("clients")}
}

func (r *Repository) LoadAll(ctx context.Context) ([]domain.Client, error) {
	var doc clientDocument
	if err := r.clients.Load(&doc); err != nil {
		return nil, err
	}
	return doc.Clients, nil
}

func (r *Repository) ReplaceAll(ctx context.Context, clients []domain.Client) error {
	return r.clients.Replace(&clientDocument{Clients: clients})
}
