package service

import (
	"context"
	"strconv"

	catalogdomain "github.com/chapincloud/meterbill/internal/catalog/domain"
	clientdomain "github.com/chapincloud/meterbill/internal/client/domain"
	consumptiondomain "github.com/chapincloud/meterbill/internal/consumption/domain"
	ingestdomain "github.com/chapincloud/meterbill/internal/ingest/domain"
	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log            *zap.Logger
	CatalogSvc     catalogdomain.Service
	ClientSvc      clientdomain.Service
	ConsumptionSvc consumptiondomain.Service
}

type Service struct {
	log      *zap.Logger
	validate *validator.Validate

	catalogSvc     catalogdomain.Service
	clientSvc      clientdomain.Service
	consumptionSvc consumptiondomain.Service
}

func NewService(p ServiceParam) ingestdomain.Service {
	return &Service{
		log:            p.Log.Named("ingest.service"),
		validate:       validator.New(),
		catalogSvc:     p.CatalogSvc,
		clientSvc:      p.ClientSvc,
		consumptionSvc: p.ConsumptionSvc,
	}
}

// IngestCatalog validates each entity independently and replaces every
// collection that received at least one valid entity. A malformed entity is
// dropped and reported; it never aborts the batch.
func (s *Service) IngestCatalog(ctx context.Context, batch ingestdomain.CatalogBatch) (ingestdomain.CatalogResult, error) {
	result := ingestdomain.CatalogResult{Errors: []string{}}

	resources := make([]catalogdomain.Resource, 0, len(batch.Resources))
	for _, res := range batch.Resources {
		res.Normalize()
		if err := s.validate.Struct(res); err != nil {
			result.Errors = append(result.Errors, ingestdomain.ValidationError{
				Entity:    "resource",
				Reference: strconv.FormatInt(res.ID, 10),
				Err:       err,
			}.Error())
			continue
		}
		resources = append(resources, res)
	}

	categories := make([]catalogdomain.Category, 0, len(batch.Categories))
	for _, cat := range batch.Categories {
		if err := s.validate.Struct(cat); err != nil {
			result.Errors = append(result.Errors, ingestdomain.ValidationError{
				Entity:    "category",
				Reference: strconv.FormatInt(cat.ID, 10),
				Err:       err,
			}.Error())
			continue
		}
		categories = append(categories, cat)
		result.Configurations += len(cat.Configurations)
	}

	clients := make([]clientdomain.Client, 0, len(batch.Clients))
	for _, cli := range batch.Clients {
		if err := cli.Validate(); err != nil {
			result.Errors = append(result.Errors, ingestdomain.ValidationError{
				Entity:    "client",
				Reference: cli.TaxID,
				Err:       err,
			}.Error())
			continue
		}
		if err := s.validate.Struct(cli); err != nil {
			result.Errors = append(result.Errors, ingestdomain.ValidationError{
				Entity:    "client",
				Reference: cli.TaxID,
				Err:       err,
			}.Error())
			continue
		}

		// Instances are validated one by one: a bad instance is dropped
		// and reported while its client still lands.
		instances := make([]clientdomain.Instance, 0, len(cli.Instances))
		for _, inst := range cli.Instances {
			inst.Normalize()
			if err := inst.Validate(); err != nil {
				result.Errors = append(result.Errors, ingestdomain.ValidationError{
					Entity:    "instance",
					Reference: cli.TaxID + "/" + strconv.FormatInt(inst.ID, 10),
					Err:       err,
				}.Error())
				continue
			}
			instances = append(instances, inst)
		}
		cli.Instances = instances
		clients = append(clients, cli)
		result.Instances += len(instances)
	}

	if len(resources) > 0 {
		if err := s.catalogSvc.ReplaceResources(ctx, resources); err != nil {
			return ingestdomain.CatalogResult{}, err
		}
	}
	if len(categories) > 0 {
		if err := s.catalogSvc.ReplaceCategories(ctx, categories); err != nil {
			return ingestdomain.CatalogResult{}, err
		}
	}
	if len(clients) > 0 {
		if err := s.clientSvc.ReplaceAll(ctx, clients); err != nil {
			return ingestdomain.CatalogResult{}, err
		}
	}

	result.Resources = len(resources)
	result.Categories = len(categories)
	result.Clients = len(clients)

	s.log.Info("catalog batch ingested",
		zap.Int("resources", result.Resources),
		zap.Int("categories", result.Categories),
		zap.Int("clients", result.Clients),
		zap.Int("rejected", len(result.Errors)))
	return result, nil
}

// IngestConsumption groups entries under their (taxId, instanceId) key in
// first-seen order and merge-appends them into the stored collection.
func (s *Service) IngestConsumption(ctx context.Context, batch ingestdomain.ConsumptionBatch) (ingestdomain.ConsumptionResult, error) {
	result := ingestdomain.ConsumptionResult{Errors: []string{}}

	byKey := make(map[consumptiondomain.GroupKey]int)
	var groups []consumptiondomain.Group
	for _, entry := range batch.Entries {
		if !clientdomain.ValidTaxID(entry.ClientTaxID) {
			result.Errors = append(result.Errors, ingestdomain.ValidationError{
				Entity:    "consumption",
				Reference: entry.ClientTaxID,
				Err:       clientdomain.ErrInvalidTaxID,
			}.Error())
			continue
		}

		key := consumptiondomain.GroupKey{ClientTaxID: entry.ClientTaxID, InstanceID: entry.InstanceID}
		i, ok := byKey[key]
		if !ok {
			i = len(groups)
			byKey[key] = i
			groups = append(groups, consumptiondomain.Group{
				ClientTaxID: entry.ClientTaxID,
				InstanceID:  entry.InstanceID,
			})
		}
		groups[i].Records = append(groups[i].Records, consumptiondomain.Record{
			Hours:     entry.Hours,
			Timestamp: entry.Timestamp,
		})
		result.Records++
	}

	if len(groups) > 0 {
		if err := s.consumptionSvc.MergeAppend(ctx, groups); err != nil {
			return ingestdomain.ConsumptionResult{}, err
		}
	}
	return result, nil
}
