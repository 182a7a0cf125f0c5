package provider

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/trace"
)

const vixQuoteURL = "https://finance.yahoo.com/quote/%5EVIX/"

// VIX band analysis strings surfaced to users alongside the index value.
const (
	VIXAnalysisFear        = "High Volatility (Market Fear)"
	VIXAnalysisCaution     = "Moderate Volatility (Market Caution)"
	VIXAnalysisComplacency = "Low Volatility (Market Complacency)"
)

// VIXProvider scrapes the CBOE Volatility Index from the Yahoo Finance quote
// page. There is no free documented API for this, so the markup selectors are
// the contract; a selector change is isolated here.
type VIXProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewVIXProvider(tracer trace.Tracer, timeout time.Duration) *VIXProvider {
	return &VIXProvider{
		client:  newFetchClient(timeout),
		baseURL: vixQuoteURL,
		tracer:  tracer,
	}
}

// FetchQuote returns the current VIX value, its day change fields, and the
// band analysis text.
func (p *VIXProvider) FetchQuote(ctx context.Context) (*VIXQuote, error) {
	_, span := p.tracer.Start(ctx, "vix.fetch-quote")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, err
	}
	// Yahoo rejects requests without a browser User-Agent.
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo finance error %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse yahoo finance page: %w", err)
	}

	value, err := scrapeStreamerValue(doc, "regularMarketPrice")
	if err != nil {
		return nil, err
	}
	change, err := scrapeStreamerValue(doc, "regularMarketChange")
	if err != nil {
		return nil, err
	}
	changePct, err := scrapeStreamerValue(doc, "regularMarketChangePercent")
	if err != nil {
		return nil, err
	}

	return &VIXQuote{
		Value:         value,
		Change:        change,
		ChangePercent: changePct,
		Analysis:      AnalyzeVIX(value),
	}, nil
}

// AnalyzeVIX maps a VIX value to its discrete band description.
func AnalyzeVIX(value float64) string {
	switch {
	case value >= 30:
		return VIXAnalysisFear
	case value >= 20:
		return VIXAnalysisCaution
	default:
		return VIXAnalysisComplacency
	}
}

func scrapeStreamerValue(doc *goquery.Document, field string) (float64, error) {
	sel := doc.Find(fmt.Sprintf(`fin-streamer[data-field=%q]`, field)).First()
	if sel.Length() == 0 {
		return 0, fmt.Errorf("vix element %s not found in yahoo finance markup", field)
	}
	text := strings.TrimSpace(sel.Text())
	// Thousands separators and the (x%) wrapping on the percent field.
	text = strings.ReplaceAll(text, ",", "")
	text = strings.Trim(text, "()%")
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("parse vix %s %q: %w", field, text, err)
	}
	return value, nil
}
