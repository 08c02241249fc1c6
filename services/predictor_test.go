package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPPredictor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req predictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "powai", req.Locality)
		assert.Equal(t, 12000000.0, req.Price)
		_, _ = w.Write([]byte(`{"roi": 4.25}`))
	}))
	defer srv.Close()

	roi, err := NewHTTPPredictor(srv.URL, time.Second).Predict(context.Background(), "powai", 12000000)
	require.NoError(t, err)
	assert.Equal(t, 4.25, roi)
}

func TestHTTPPredictorErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{"server error", http.StatusInternalServerError, `boom`},
		{"bad json", http.StatusOK, `not json`},
		{"missing roi", http.StatusOK, `{}`},
		{"model error", http.StatusOK, `{"roi": 1, "error": "unknown locality"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			_, err := NewHTTPPredictor(srv.URL, time.Second).Predict(context.Background(), "powai", 1)
			assert.Error(t, err)
		})
	}
}

func TestHTTPPredictorTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"roi": 4}`))
	}))
	defer srv.Close()

	_, err := NewHTTPPredictor(srv.URL, 20*time.Millisecond).Predict(context.Background(), "powai", 1)
	assert.Error(t, err)
}
