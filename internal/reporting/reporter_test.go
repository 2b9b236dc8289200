package reporting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"train-service/pkg/models"
)

const testSecret = "test-secret"

func TestReportSendsSignedTokenAndStatus(t *testing.T) {
	var gotPath string
	var gotBody models.StatusUpdateRequest
	var gotToken string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewCoreClient(server.URL, testSecret, time.Minute)
	require.NoError(t, client.Report(context.Background(), 42, 7, models.RunProcessing))

	assert.Equal(t, "/runs/42/status", gotPath)
	assert.Equal(t, models.RunProcessing, gotBody.Status)

	token, err := jwt.Parse(gotToken, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Contains(t, claims, "exp")
}

func TestReportErrorTaxonomy(t *testing.T) {
	cases := []struct {
		code int
		want error
	}{
		{http.StatusNotFound, ErrRunNotFound},
		{http.StatusForbidden, ErrAccessDenied},
		{http.StatusInternalServerError, ErrServiceUnavailable},
		{http.StatusBadGateway, ErrServiceUnavailable},
	}

	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.code)
		}))

		client := NewCoreClient(server.URL, testSecret, time.Minute)
		err := client.Report(context.Background(), 1, 1, models.RunFailed)
		assert.ErrorIs(t, err, tc.want, "status code %d", tc.code)

		server.Close()
	}
}

func TestReportTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewCoreClient(server.URL, testSecret, time.Minute)
	err := client.Report(context.Background(), 1, 1, models.RunCompleted)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}
