package openfoodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

const (
	defaultBaseURL  = "https://world.openfoodfacts.org"
	defaultPageSize = 20
	userAgent       = "kanso-food-diary/1.0 (+https://github.com/comitanigiacomo/kanso-food-diary)"
	sourceName      = "openfoodfacts"
)

var _ domain.ProductLookup = (*Client)(nil)

// Client reads products from the Open Food Facts public API. Nutrition is
// taken per 100 g, which is what the catalogue reports most consistently.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	PageSize   int
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
		PageSize:   defaultPageSize,
	}
}

func (c *Client) LookupByBarcode(ctx context.Context, barcode string) (domain.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return domain.Product{}, domain.ErrEmptyBarcode
	}

	u := fmt.Sprintf("%s/api/v0/product/%s.json", c.base(), url.PathEscape(barcode))
	body, err := c.get(ctx, u)
	if err != nil {
		if errors.Is(err, errNotFoundStatus) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, &domain.LookupError{Op: "barcode " + barcode, Err: err}
	}

	var parsed offResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.Product{}, &domain.LookupError{Op: "barcode " + barcode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if parsed.Status != 1 || parsed.Product == nil {
		return domain.Product{}, domain.ErrProductNotFound
	}

	product := toProduct(*parsed.Product)
	if product.Barcode == "" {
		product.Barcode = barcode
	}
	return product, nil
}

func (c *Client) SearchByName(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page_size", strconv.Itoa(pageSize))

	body, err := c.get(ctx, c.base()+"/cgi/search.pl?"+params.Encode())
	if err != nil {
		return nil, &domain.LookupError{Op: "search " + query, Err: err}
	}

	var parsed offSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &domain.LookupError{Op: "search " + query, Err: fmt.Errorf("decode response: %w", err)}
	}

	out := make([]domain.Product, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		if strings.TrimSpace(p.Code) == "" {
			continue
		}
		out = append(out, toProduct(p))
	}
	return out, nil
}

var errNotFoundStatus = errors.New("status 404")

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFoundStatus
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return body, nil
}

func (c *Client) base() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return defaultBaseURL
	}
	return base
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return &http.Client{Timeout: 12 * time.Second}
	}
	return c.HTTPClient
}

func toProduct(p offProduct) domain.Product {
	name := strings.TrimSpace(p.ProductName)
	if name == "" {
		name = "Unknown Product"
	}
	servingSize := strings.TrimSpace(p.ServingSize)
	if servingSize == "" {
		servingSize = domain.DefaultServingSize
	}

	product := domain.Product{
		Barcode:       strings.TrimSpace(p.Code),
		Name:          name,
		Brand:         strings.TrimSpace(p.Brands),
		ServingSize:   servingSize,
		ImageURL:      strings.TrimSpace(p.ImageFrontURL),
		NutriScore:    strings.ToLower(strings.TrimSpace(p.NutriscoreGrade)),
		Allergens:     strings.TrimSpace(p.Allergens),
		RetrievedFrom: sourceName,
		RetrievedAt:   time.Now().UTC(),
		Nutrition: domain.Nutrition{
			Calories: nutrientValue(p.Nutriments, "energy-kcal"),
			Protein:  nutrientValue(p.Nutriments, "proteins"),
			Carbs:    nutrientValue(p.Nutriments, "carbohydrates"),
			Fat:      nutrientValue(p.Nutriments, "fat"),
			Fiber:    optionalNutrient(p.Nutriments, "fiber"),
			Sugar:    optionalNutrient(p.Nutriments, "sugars"),
			Salt:     optionalNutrient(p.Nutriments, "salt"),
		},
	}
	if v, ok := parseFloatAny(p.NovaGroup); ok {
		nova := int(v)
		product.NovaGroup = &nova
	}
	return product
}

// nutrientValue reads the per-100 g value of a nutrient. Missing, negative
// or unparsable values count as zero.
func nutrientValue(n map[string]any, base string) float64 {
	if v := optionalNutrient(n, base); v != nil {
		return *v
	}
	return 0
}

func optionalNutrient(n map[string]any, base string) *float64 {
	v, ok := parseFloatAny(n[base+"_100g"])
	if !ok || v < 0 {
		return nil
	}
	return domain.Float(v)
}

func parseFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

type offResponse struct {
	Status  int         `json:"status"`
	Product *offProduct `json:"product"`
}

type offProduct struct {
	Code            string         `json:"code"`
	ProductName     string         `json:"product_name"`
	Brands          string         `json:"brands"`
	ServingSize     string         `json:"serving_size"`
	ImageFrontURL   string         `json:"image_front_url"`
	NutriscoreGrade string         `json:"nutriscore_grade"`
	NovaGroup       any            `json:"nova_group"`
	Allergens       string         `json:"allergens"`
	Nutriments      map[string]any `json:"nutriments"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}
