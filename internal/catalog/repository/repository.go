// Package repository persists the resource and category collections, each as
// one whole XML document.
package repository

import (
	"context"
	"encoding/xml"

	"github.com/chapincloud/meterbill/internal/catalog/domain"
	"github.com/chapincloud/meterbill/pkg/docstore"
)

type resourceDocument struct {
	XMLName   xml.Name          `xml:"resources"`
	Resources []domain.Resource `xml:"resource"`
}

type categoryDocument struct {
	XMLName    xml.Name          `xml:"categories"`
	Categories []domain.Category `xml:"category"`
}

// Repository exposes whole-collection load and replace for the catalog.
type Repository struct {
	resources  *docstore.Collection
	categories *docstore.Collection
}

func New(store *docstore.Store) *Repository {
	return &Repository{
		resources:  store.Collection("resources"),
		categories: store.Collection("categories"),
	}
}

func (r *Repository) LoadResources(ctx context.Context) ([]domain.Resource, error) {
	var doc resourceDocument
	if err := r.resources.Load(&doc); err != nil {
		return nil, err
	}
	return doc.Resources, nil
}

func (r *Repository) ReplaceResources(ctx context.Context, resources []domain.Resource) error {
	return r.resources.Replace(&resourceDocument{Resources: resources})
}

func (r *Repository) LoadCategories(ctx context.Context) ([]domain.Category, error) {
	var doc categoryDocument
	if err := r.categories.Load(&doc); err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

func (r *Repository) ReplaceCategories(ctx context.Context, categories []domain.Category) error {
	return r.categories.Replace(&categoryDocument{Categories: categories})
}
