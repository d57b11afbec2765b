package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/studyclock/internal/domain"
)

// Client calls the remote study advisor.
type Client interface {
	// Predict asks for a study/break rhythm given the user's history and
	// the current instant.
	Predict(ctx context.Context, sessions []*domain.StudySession, now time.Time) (*domain.Prediction, error)

	// Feedback asks for textual coaching about the user's history.
	Feedback(ctx context.Context, sessions []*domain.StudySession) (*domain.Feedback, error)
}

type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewHTTPClient creates a Client that talks to the advisor over HTTP.
func NewHTTPClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 2 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

func (c *httpClient) Predict(ctx context.Context, sessions []*domain.StudySession, now time.Time) (*domain.Prediction, error) {
	local := now.Local()
	body := predictRequest{
		TrainingData: TrainingData(sessions),
		CurrentHour:  local.Hour(),
		DayOfWeek:    int(local.Weekday()),
	}

	var resp predictResponse
	if err := c.call(ctx, EndpointPredict, len(sessions), body, &resp); err != nil {
		return nil, err
	}
	if resp.Duration == nil || resp.BreakTime == nil || resp.Confidence == nil {
		return nil, fmt.Errorf("%w: prediction missing fields", ErrInvalidResponse)
	}
	if *resp.Confidence < 0 || *resp.Confidence > 1 || *resp.Duration < 0 || *resp.BreakTime < 0 {
		return nil, fmt.Errorf("%w: prediction out of range", ErrInvalidResponse)
	}
	return &domain.Prediction{
		Duration:   secondsToDuration(*resp.Duration),
		BreakTime:  secondsToDuration(*resp.BreakTime),
		Confidence: *resp.Confidence,
	}, nil
}

func (c *httpClient) Feedback(ctx context.Context, sessions []*domain.StudySession) (*domain.Feedback, error) {
	body := feedbackRequest{TrainingData: TrainingData(sessions)}

	var resp feedbackResponse
	if err := c.call(ctx, EndpointFeedback, len(sessions), body, &resp); err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Summary) == "" {
		return nil, fmt.Errorf("%w: feedback without summary", ErrInvalidResponse)
	}
	return &domain.Feedback{
		Summary:             resp.Summary,
		Strengths:           nonNil(resp.Strengths),
		AreasForImprovement: nonNil(resp.AreasForImprovement),
		Recommendations:     nonNil(resp.Recommendations),
	}, nil
}

// call posts body to the endpoint and decodes the JSON answer into out.
// Retries are bounded by cfg.MaxRetries and never outlive the timeout.
func (c *httpClient) call(ctx context.Context, endpoint Endpoint, sessions int, body, out any) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling %s request: %w", endpoint, err)
	}

	var lastErr error
	attempts := 0
	for i := 0; i < 1+c.cfg.MaxRetries; i++ {
		attempts++
		lastErr = c.doRequest(ctx, endpoint, data, out)
		if lastErr == nil {
			c.observer.OnCallComplete(CallEvent{
				Endpoint:  endpoint,
				Sessions:  sessions,
				Attempts:  attempts,
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   true,
			})
			return nil
		}
		// Don't retry on context cancellation/timeout or a malformed body.
		if ctx.Err() != nil || errors.Is(lastErr, ErrInvalidResponse) {
			break
		}
	}

	switch {
	case ctx.Err() != nil:
		lastErr = ErrTimeout
	case isConnectionError(lastErr):
		lastErr = fmt.Errorf("%w: %v", ErrAdvisorUnavailable, lastErr)
	case !errors.Is(lastErr, ErrInvalidResponse) && !errors.Is(lastErr, ErrAdvisorUnavailable):
		lastErr = fmt.Errorf("%w: %v", ErrAdvisorUnavailable, lastErr)
	}

	c.observer.OnCallComplete(CallEvent{
		Endpoint:  endpoint,
		Sessions:  sessions,
		Attempts:  attempts,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(lastErr),
	})
	return lastErr
}

func (c *httpClient) doRequest(ctx context.Context, endpoint Endpoint, data []byte, out any) error {
	url := strings.TrimRight(c.cfg.Endpoint, "/") + "/" + string(endpoint)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", ErrAdvisorUnavailable, httpResp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrAdvisorUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	default:
		return "UNKNOWN"
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
