package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"justfood/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuItems(t *testing.T) {
	var gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/query/production", r.URL.Path)
		gotQuery = r.URL.Query().Get("query")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"result":[
			{"_id":"m1","sku":"pz-01","title":"Margherita","price":249,"isVeg":true,"isAvailable":true,"category":"pizza"}
		]}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL, "production", "tok123", logger.New("test"))

	veg := true
	items, err := client.MenuItems(context.Background(), "pizza", &veg)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Margherita", items[0].Title)
	assert.Equal(t, 249.0, items[0].Price)

	assert.Contains(t, gotQuery, `_type == "menuItem"`)
	assert.Contains(t, gotQuery, `category->slug.current == "pizza"`)
	assert.Contains(t, gotQuery, `isVeg == true`)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":[{"_id":"c1","name":"Pizza","slug":"pizza","position":1}]}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL, "production", "", logger.New("test"))

	categories, err := client.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "pizza", categories[0].Slug)
}

func TestQueryErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL, "production", "", logger.New("test"))

	_, err := client.Categories(context.Background())
	assert.Error(t, err)
}
