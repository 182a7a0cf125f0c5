package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const (
	santimentBaseURL = "https://api.santiment.net/graphql"

	// MetricDailyActiveAddresses is the default on-chain activity metric.
	MetricDailyActiveAddresses = "daily_active_addresses"

	santimentLookback = 7 * 24 * time.Hour
)

// SantimentProvider issues GraphQL timeseries queries against the Santiment
// API for on-chain activity metrics.
type SantimentProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
	now     func() time.Time
}

func NewSantimentProvider(tracer trace.Tracer, apiKey string, timeout time.Duration) *SantimentProvider {
	return &SantimentProvider{
		client:  newFetchClient(timeout),
		baseURL: santimentBaseURL,
		apiKey:  apiKey,
		tracer:  tracer,
		now:     time.Now,
	}
}

// FetchDailyActivity queries the trailing week of the metric at daily
// granularity for the given project slug and returns the most recent value.
func (p *SantimentProvider) FetchDailyActivity(ctx context.Context, slug, metric string) (float64, error) {
	_, span := p.tracer.Start(ctx, "santiment.fetch-daily-activity")
	defer span.End()

	to := p.now().UTC()
	from := to.Add(-santimentLookback)

	query := fmt.Sprintf(`{
  getMetric(metric: %q) {
    timeseriesData(slug: %q, from: %q, to: %q, interval: "1d") {
      datetime
      value
    }
  }
}`, metric, slug, from.Format(time.RFC3339), to.Format(time.RFC3339))

	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Apikey "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("santiment API error %d: %s", resp.StatusCode, string(raw))
	}

	var payload struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
		Data struct {
			GetMetric struct {
				TimeseriesData []struct {
					Datetime string   `json:"datetime"`
					Value    *float64 `json:"value"`
				} `json:"timeseriesData"`
			} `json:"getMetric"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode santiment response: %w", err)
	}
	if len(payload.Errors) > 0 {
		return 0, fmt.Errorf("santiment API error: %s", payload.Errors[0].Message)
	}

	series := payload.Data.GetMetric.TimeseriesData
	if len(series) == 0 {
		return 0, fmt.Errorf("santiment returned no timeseries data for %s", slug)
	}

	// Series is oldest first; walk back to the newest non-null point.
	for i := len(series) - 1; i >= 0; i-- {
		if series[i].Value != nil {
			return *series[i].Value, nil
		}
	}
	return 0, fmt.Errorf("santiment series for %s has no values", slug)
}
