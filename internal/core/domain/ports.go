package domain

import (
	"context"
	"time"
)

// Fixed storage keys. The ledger map, the goal profile and the food history
// are each stored as one opaque value.
const (
	LedgersKey  = "food_diary_logs"
	SettingsKey = "food_diary_settings"
	HistoryKey  = "food_diary_history"
)

type KVStore interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}

// Product is a record returned by the product catalogue, with nutrition
// normalized to the declared serving size.
type Product struct {
	Barcode       string    `json:"barcode"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand,omitempty"`
	Nutrition     Nutrition `json:"nutrition"`
	ServingSize   string    `json:"servingSize"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	NutriScore    string    `json:"nutriscore,omitempty"`
	NovaGroup     *int      `json:"novaGroup,omitempty"`
	Allergens     string    `json:"allergens,omitempty"`
	RetrievedFrom string    `json:"source,omitempty"`
	RetrievedAt   time.Time `json:"retrievedAt"`
}

type ProductLookup interface {
	// LookupByBarcode returns ErrProductNotFound when the catalogue has no
	// such product and a LookupError when the catalogue could not answer.
	LookupByBarcode(ctx context.Context, barcode string) (Product, error)

	// SearchByName returns matches in catalogue order, possibly none.
	SearchByName(ctx context.Context, query string) ([]Product, error)
}

// HistoryItem remembers the last logged version of a product for quick re-use.
type HistoryItem struct {
	Entry      FoodEntry `json:"entry"`
	TimesUsed  int       `json:"timesUsed"`
	LastUsedAt time.Time `json:"lastUsedAt"`
}
