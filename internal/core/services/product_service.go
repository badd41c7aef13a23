package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

type FoodLogger interface {
	LogFood(ctx context.Context, input domain.FoodEntryInput) (domain.FoodEntry, error)
}

type ProductService struct {
	lookup domain.ProductLookup
	diary  FoodLogger
	logger *zap.Logger
}

func NewProductService(lookup domain.ProductLookup, diary FoodLogger, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		lookup: lookup,
		diary:  diary,
		logger: logger,
	}
}

type LogProductInput struct {
	Barcode  string
	Servings float64
	Meal     domain.MealSlot
	Date     string
}

func (s *ProductService) LookupBarcode(ctx context.Context, barcode string) (domain.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return domain.Product{}, domain.ErrEmptyBarcode
	}

	product, err := s.lookup.LookupByBarcode(ctx, barcode)
	if err != nil {
		s.logger.Warn("barcode lookup failed", zap.String("barcode", barcode), zap.Error(err))
		return domain.Product{}, err
	}
	return product, nil
}

func (s *ProductService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	products, err := s.lookup.SearchByName(ctx, query)
	if err != nil {
		s.logger.Warn("product search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// LogProduct is the scan flow: look the barcode up and log the product in
// one step. Nothing is written when the lookup fails.
func (s *ProductService) LogProduct(ctx context.Context, input LogProductInput) (domain.FoodEntry, error) {
	if !(input.Servings > 0) {
		return domain.FoodEntry{}, domain.ErrInvalidServings
	}
	if _, err := domain.ParseMeal(string(input.Meal)); err != nil {
		return domain.FoodEntry{}, err
	}

	product, err := s.LookupBarcode(ctx, input.Barcode)
	if err != nil {
		return domain.FoodEntry{}, err
	}

	return s.diary.LogFood(ctx, domain.FoodEntryInput{
		Barcode:     product.Barcode,
		Name:        product.Name,
		Brand:       product.Brand,
		ServingSize: product.ServingSize,
		ImageURL:    product.ImageURL,
		Nutrition:   product.Nutrition,
		Servings:    input.Servings,
		Date:        input.Date,
		Meal:        input.Meal,
	})
}
