package openfoodfacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

const nutellaJSON = `{
	"status": 1,
	"product": {
		"code": "3017620422003",
		"product_name": "Nutella",
		"brands": "Ferrero",
		"serving_size": "15 g",
		"image_front_url": "https://images.example/nutella.jpg",
		"nutriscore_grade": "E",
		"nova_group": 4,
		"allergens": "en:milk,en:nuts",
		"nutriments": {
			"energy-kcal_100g": 539,
			"proteins_100g": "6.3",
			"carbohydrates_100g": 57.5,
			"fat_100g": 30.9,
			"sugars_100g": 56.3,
			"salt_100g": 0.107,
			"fiber_100g": -1
		}
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second)
}

func TestClient_LookupByBarcode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Maps a catalogue product", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v0/product/3017620422003.json", r.URL.Path)
			assert.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "kanso-food-diary/"))
			_, _ = w.Write([]byte(nutellaJSON))
		})

		p, err := client.LookupByBarcode(ctx, "3017620422003")
		require.NoError(t, err)

		assert.Equal(t, "3017620422003", p.Barcode)
		assert.Equal(t, "Nutella", p.Name)
		assert.Equal(t, "Ferrero", p.Brand)
		assert.Equal(t, "15 g", p.ServingSize)
		assert.Equal(t, "e", p.NutriScore)
		require.NotNil(t, p.NovaGroup)
		assert.Equal(t, 4, *p.NovaGroup)
		assert.Equal(t, "openfoodfacts", p.RetrievedFrom)
		assert.False(t, p.RetrievedAt.IsZero())

		assert.Equal(t, 539.0, p.Nutrition.Calories)
		assert.Equal(t, 6.3, p.Nutrition.Protein)
		assert.Equal(t, 57.5, p.Nutrition.Carbs)
		assert.Equal(t, 30.9, p.Nutrition.Fat)
		require.NotNil(t, p.Nutrition.Sugar)
		assert.Equal(t, 56.3, *p.Nutrition.Sugar)
		require.NotNil(t, p.Nutrition.Salt)
		assert.Equal(t, 0.107, *p.Nutrition.Salt)
		assert.Nil(t, p.Nutrition.Fiber, "negative values are treated as missing")
	})

	t.Run("Sparse product gets defaults", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":1,"product":{"nutriments":{}}}`))
		})

		p, err := client.LookupByBarcode(ctx, "42")
		require.NoError(t, err)
		assert.Equal(t, "42", p.Barcode)
		assert.Equal(t, "Unknown Product", p.Name)
		assert.Equal(t, domain.DefaultServingSize, p.ServingSize)
		assert.Equal(t, 0.0, p.Nutrition.Calories)
		assert.Nil(t, p.Nutrition.Salt)
		assert.Nil(t, p.NovaGroup)
	})

	t.Run("Unknown product", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":0,"status_verbose":"product not found"}`))
		})

		_, err := client.LookupByBarcode(ctx, "0000")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("404 is not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.LookupByBarcode(ctx, "0000")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("Server errors are lookup failures", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.LookupByBarcode(ctx, "0000")
		assert.ErrorIs(t, err, domain.ErrLookupFailed)
		assert.ErrorContains(t, err, "502")
	})

	t.Run("Garbage body is a lookup failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>maintenance</html>`))
		})

		_, err := client.LookupByBarcode(ctx, "0000")
		assert.ErrorIs(t, err, domain.ErrLookupFailed)
	})

	t.Run("Timeout is a lookup failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
		})
		client.HTTPClient.Timeout = 50 * time.Millisecond

		_, err := client.LookupByBarcode(ctx, "0000")
		assert.ErrorIs(t, err, domain.ErrLookupFailed)
	})

	t.Run("Empty barcode", func(t *testing.T) {
		client := NewClient("", 0)
		_, err := client.LookupByBarcode(ctx, " ")
		assert.ErrorIs(t, err, domain.ErrEmptyBarcode)
	})
}

func TestClient_SearchByName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Sends the search parameters and skips products without code", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/cgi/search.pl", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "greek yogurt", q.Get("search_terms"))
			assert.Equal(t, "1", q.Get("json"))
			assert.Equal(t, "5", q.Get("page_size"))

			_, _ = w.Write([]byte(`{"products":[
				{"code":"1","product_name":"Yogurt A","nutriments":{"energy-kcal_100g":97}},
				{"code":"","product_name":"No code"},
				{"code":"2","product_name":"Yogurt B","nutriments":{}}
			]}`))
		})
		client.PageSize = 5

		products, err := client.SearchByName(ctx, " greek yogurt ")
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Yogurt A", products[0].Name)
		assert.Equal(t, 97.0, products[0].Nutrition.Calories)
		assert.Equal(t, "2", products[1].Barcode)
	})

	t.Run("No results", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"products":[]}`))
		})

		products, err := client.SearchByName(ctx, "zzzz")
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("Failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.SearchByName(ctx, "pasta")
		assert.ErrorIs(t, err, domain.ErrLookupFailed)
	})

	t.Run("Empty query", func(t *testing.T) {
		_, err := NewClient("", 0).SearchByName(ctx, "")
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	})
}
