package country

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRESTClient_FetchAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name":{"common":"Spain"},"cca3":"ESP","flags":{"png":"https://flagcdn.com/w320/es.png"},"capital":["Madrid"],"region":"Europe","population":48000000},
			{"name":{"common":"Nowhere"},"cca3":"","flags":{"png":""}}
		]`))
	}))
	defer server.Close()

	records, err := NewRESTClient(server.URL).FetchAll(context.Background())
	require.NoError(t, err)

	// The record with a missing code and flag is skipped.
	require.Len(t, records, 1)
	assert.Equal(t, "ESP", records[0].Code)
	assert.Equal(t, "Spain", records[0].Name)
	assert.Equal(t, "Madrid", records[0].Capital)
	assert.Equal(t, int64(48000000), records[0].Population)
}

func TestRESTClient_FetchAllNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewRESTClient(server.URL).FetchAll(context.Background())
	assert.Error(t, err)
}

func TestRESTClient_FetchAllEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := NewRESTClient(server.URL).FetchAll(context.Background())
	assert.Error(t, err, "an empty catalog must not replace the snapshot")
}
