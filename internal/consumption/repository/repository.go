// Package repository persists consumption groups as one XML document.
package repository

import (
	"context"
	"encoding/xml"

	"github.com/chapincloud/meterbill/internal/consumption/domain"
	"github.com/chapincloud/meterbill/pkg/docstore"
)

type consumptionDocument struct {
	XMLName xml.Name       `xml:"consumption"`
	Groups  []domain.Group `xml:"group"`
}

type Repository struct {
	groups *docstore.Collection
}

func New(store *docstore.Store) *Repository {
	return &Repository{groups: store.Collection("consumption")}
}

func (r *Repository) LoadAll(ctx context.Context) ([]domain.Group, error) {
	var doc consumptionDocument
	if err := r.groups.Load(&doc); err != nil {
		return nil, err
	}
	return doc.Groups, nil
}

func (r *Repository) ReplaceAll(ctx context.Context, groups []domain.Group) error {
	return r.groups.Replace(&consumptionDocument{Groups: groups})
}

// MergeAppend runs the whole load-merge-rewrite sequence under the
// collection's write lock so concurrent intakes cannot lose records.
func (r *Repository) MergeAppend(ctx context.Context, incoming []domain.Group) error {
	return r.groups.Update(func(tx *docstore.Tx) error {
		var doc consumptionDocument
		if err := tx.Load(&doc); err != nil {
			return err
		}

		byKey := make(map[domain.GroupKey]int, len(doc.Groups))
		for i, g := range doc.Groups {
			byKey[g.Key()] = i
		}
		for _, g := range incoming {
			if i, ok := byKey[g.Key()]; ok {
				doc.Groups[i].Records = append(doc.Groups[i].Records, g.Records...)
				continue
			}
			byKey[g.Key()] = len(doc.Groups)
			doc.Groups = append(doc.Groups, g)
		}

		return tx.Store(&doc)
	})
}
