package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

func TestHistoryHandler(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, apiOptions{})
	ctx := context.Background()
	for _, name := range []string{"Eggs", "Toast", "Coffee"} {
		require.NoError(t, api.history.Record(ctx, domain.FoodEntry{Name: name, Servings: 1}))
	}

	w := api.do(t, http.MethodGet, "/api/v1/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.HistoryItem](t, w), 3)

	w = api.do(t, http.MethodGet, "/api/v1/history?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.HistoryItem](t, w), 2)

	for _, bad := range []string{"abc", "-1"} {
		w = api.do(t, http.MethodGet, "/api/v1/history?limit="+bad, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
}
