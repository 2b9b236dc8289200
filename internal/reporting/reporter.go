package reporting

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"train-service/pkg/models"
)

var (
	// ErrRunNotFound and ErrAccessDenied are terminal; retrying the report
	// will not change the outcome.
	ErrRunNotFound  = errors.New("run not found")
	ErrAccessDenied = errors.New("access denied")

	// ErrServiceUnavailable covers transport failures and unexpected status
	// codes from the core service.
	ErrServiceUnavailable = errors.New("core service unavailable")
)

// StatusReporter transitions a run's lifecycle state in the core service.
type StatusReporter interface {
	Report(ctx context.Context, runId, userId int64, status models.RunStatus) error
}

// CoreClient reports run status to the core service, minting a short-lived
// HS256 token asserting the run owner's user id for each call.
type CoreClient struct {
	client   *resty.Client
	secret   []byte
	tokenTTL time.Duration
}

var _ StatusReporter = (*CoreClient)(nil)

func NewCoreClient(baseURL, jwtSecret string, tokenTTL time.Duration) *CoreClient {
	return &CoreClient{
		client:   resty.New().SetBaseURL(baseURL).SetTimeout(30 * time.Second),
		secret:   []byte(jwtSecret),
		tokenTTL: tokenTTL,
	}
}

func (c *CoreClient) mintToken(userId int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId,
		"exp":     jwt.NewNumericDate(time.Now().Add(c.tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}

func (c *CoreClient) Report(ctx context.Context, runId, userId int64, status models.RunStatus) error {
	token, err := c.mintToken(userId)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	res, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(models.StatusUpdateRequest{Status: status}).
		Post(fmt.Sprintf("/runs/%d/status", runId))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	switch {
	case res.IsSuccess():
		return nil
	case res.StatusCode() == http.StatusNotFound:
		return fmt.Errorf("%w: run %d", ErrRunNotFound, runId)
	case res.StatusCode() == http.StatusForbidden:
		return fmt.Errorf("%w: run %d, user %d", ErrAccessDenied, runId, userId)
	default:
		return fmt.Errorf("%w: unexpected status %d", ErrServiceUnavailable, res.StatusCode())
	}
}
