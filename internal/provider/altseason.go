package provider

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/trace"
)

const (
	altcoinSeasonURL = "https://www.blockchaincenter.net/en/altcoin-season-index/"

	// Index above this means altcoins outperform bitcoin.
	altcoinSeasonThreshold = 75
)

var altSeasonValueRe = regexp.MustCompile(`\((\d+)\)`)

// AltcoinSeasonProvider scrapes the Altcoin Season Index from
// blockchaincenter.net. The value sits as "(NN)" inside the active timeframe
// selector button.
type AltcoinSeasonProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewAltcoinSeasonProvider(tracer trace.Tracer, timeout time.Duration) *AltcoinSeasonProvider {
	return &AltcoinSeasonProvider{
		client:  newFetchClient(timeout),
		baseURL: altcoinSeasonURL,
		tracer:  tracer,
	}
}

func (p *AltcoinSeasonProvider) FetchIndex(ctx context.Context) (*AltcoinSeasonPoint, error) {
	_, span := p.tracer.Start(ctx, "altseason.fetch-index")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, err
	}
	// The page rejects requests without a browser User-Agent.
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("blockchaincenter error %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse altcoin season page: %w", err)
	}

	sel := doc.Find("button.nav-link.timeselect.active").First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("altcoin season control not found in page markup")
	}

	match := altSeasonValueRe.FindStringSubmatch(sel.Text())
	if match == nil {
		return nil, fmt.Errorf("altcoin season value not found in %q", sel.Text())
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return nil, fmt.Errorf("parse altcoin season value: %w", err)
	}

	season := "Bitcoin Season"
	if value > altcoinSeasonThreshold {
		season = "Altcoin Season"
	}
	return &AltcoinSeasonPoint{Value: value, Season: season}, nil
}
