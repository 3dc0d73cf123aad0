package pricebook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/smartdeal/backend-quote/internal/common"
	"github.com/smartdeal/backend-quote/internal/quote"
)

// Document keys. Catalog sections store item lists; scales and factors store
// the pricing tables.
const (
	KeyHardware     = "hardware"
	KeyConnectivity = "connectivity"
	KeyLicensing    = "licensing"
	KeyScales       = "scales"
	KeyFactors      = "factors"
)

// CatalogKeys enumerates the item-list documents.
var CatalogKeys = []string{KeyHardware, KeyConnectivity, KeyLicensing}

// Config aggregates every pricebook document for session start.
type Config struct {
	Hardware     []quote.Item      `json:"hardware"`
	Connectivity []quote.Item      `json:"connectivity"`
	Licensing    []quote.Item      `json:"licensing"`
	Scales       quote.Scales      `json:"scales"`
	Factors      quote.FactorTable `json:"factors"`
}

// Service mediates pricebook reads and admin updates. Reads fall back to the
// built-in defaults when a document was never published, so a fresh install
// can quote immediately.
type Service struct {
	Store DocumentStore
	Cache *Cache
}

// Catalog returns the item list for one of the catalog sections.
func (s *Service) Catalog(ctx context.Context, key string) ([]quote.Item, error) {
	if !isCatalogKey(key) {
		return nil, common.NewAppError("NOT_FOUND", "unknown catalog section", http.StatusNotFound, nil)
	}
	var items []quote.Item
	if hit, err := s.Cache.GetJSON(ctx, cacheKey(key), &items); err == nil && hit {
		return items, nil
	}
	doc, err := s.Store.GetDocument(ctx, key)
	if err != nil {
		if err == ErrNotFound {
			return []quote.Item{}, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(doc, &items); err != nil {
		return nil, fmt.Errorf("decode %s catalog: %w", key, err)
	}
	_ = s.Cache.SetJSON(ctx, cacheKey(key), items)
	return items, nil
}

// SetCatalog validates and publishes a catalog section.
func (s *Service) SetCatalog(ctx context.Context, key string, items []quote.Item) error {
	if !isCatalogKey(key) {
		return common.NewAppError("NOT_FOUND", "unknown catalog section", http.StatusNotFound, nil)
	}
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.ID) == "" || strings.TrimSpace(item.Name) == "" {
			return common.NewAppError("VALIDATION_ERROR", fmt.Sprintf("item %d: id and name are required", i), http.StatusBadRequest, nil)
		}
		if item.Cost < 0 {
			return common.NewAppError("VALIDATION_ERROR", fmt.Sprintf("item %q: cost must be non-negative", item.ID), http.StatusBadRequest, nil)
		}
		if _, dup := seen[item.ID]; dup {
			return common.NewAppError("VALIDATION_ERROR", fmt.Sprintf("item %q: duplicate id", item.ID), http.StatusBadRequest, nil)
		}
		seen[item.ID] = struct{}{}
		// Catalog items never carry session quantities.
		items[i].Quantity = 0
	}
	doc, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s catalog: %w", key, err)
	}
	if err := s.Store.PutDocument(ctx, key, doc); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx, cacheKey(key))
	return nil
}

// Scales returns the published scales, or the built-in defaults when none
// have been published yet.
func (s *Service) Scales(ctx context.Context) (quote.Scales, error) {
	var scales quote.Scales
	if hit, err := s.Cache.GetJSON(ctx, cacheKey(KeyScales), &scales); err == nil && hit {
		return scales, nil
	}
	doc, err := s.Store.GetDocument(ctx, KeyScales)
	if err != nil {
		if err == ErrNotFound {
			return quote.DefaultScales(), nil
		}
		return quote.Scales{}, err
	}
	if err := json.Unmarshal(doc, &scales); err != nil {
		return quote.Scales{}, fmt.Errorf("decode scales: %w", err)
	}
	_ = s.Cache.SetJSON(ctx, cacheKey(KeyScales), scales)
	return scales, nil
}

// SetScales validates and publishes the scales. An incomplete sheet is
// rejected here rather than defaulting inside a later calculation.
func (s *Service) SetScales(ctx context.Context, scales quote.Scales) error {
	if err := scales.Validate(); err != nil {
		return common.NewAppError("VALIDATION_ERROR", err.Error(), http.StatusBadRequest, err)
	}
	doc, err := json.Marshal(scales)
	if err != nil {
		return fmt.Errorf("encode scales: %w", err)
	}
	if err := s.Store.PutDocument(ctx, KeyScales, doc); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx, cacheKey(KeyScales))
	return nil
}

// Factors returns the published factor table, or the built-in defaults.
func (s *Service) Factors(ctx context.Context) (quote.FactorTable, error) {
	var factors quote.FactorTable
	if hit, err := s.Cache.GetJSON(ctx, cacheKey(KeyFactors), &factors); err == nil && hit {
		return factors, nil
	}
	doc, err := s.Store.GetDocument(ctx, KeyFactors)
	if err != nil {
		if err == ErrNotFound {
			return quote.DefaultFactors(), nil
		}
		return nil, err
	}
	if err := json.Unmarshal(doc, &factors); err != nil {
		return nil, fmt.Errorf("decode factors: %w", err)
	}
	_ = s.Cache.SetJSON(ctx, cacheKey(KeyFactors), factors)
	return factors, nil
}

// SetFactors validates and publishes the factor table.
func (s *Service) SetFactors(ctx context.Context, factors quote.FactorTable) error {
	if err := factors.Validate(); err != nil {
		return common.NewAppError("VALIDATION_ERROR", err.Error(), http.StatusBadRequest, err)
	}
	doc, err := json.Marshal(factors)
	if err != nil {
		return fmt.Errorf("encode factors: %w", err)
	}
	if err := s.Store.PutDocument(ctx, KeyFactors, doc); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx, cacheKey(KeyFactors))
	return nil
}

// Config assembles the aggregate payload fetched once at session start.
func (s *Service) Config(ctx context.Context) (Config, error) {
	var cfg Config
	var err error
	if cfg.Hardware, err = s.Catalog(ctx, KeyHardware); err != nil {
		return Config{}, err
	}
	if cfg.Connectivity, err = s.Catalog(ctx, KeyConnectivity); err != nil {
		return Config{}, err
	}
	if cfg.Licensing, err = s.Catalog(ctx, KeyLicensing); err != nil {
		return Config{}, err
	}
	if cfg.Scales, err = s.Scales(ctx); err != nil {
		return Config{}, err
	}
	if cfg.Factors, err = s.Factors(ctx); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func isCatalogKey(key string) bool {
	for _, k := range CatalogKeys {
		if k == key {
			return true
		}
	}
	return false
}

func cacheKey(key string) string {
	return "pricebook:" + key
}
