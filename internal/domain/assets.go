package domain

import "strings"

// PriceSnapshot represents the latest price data for an asset.
type PriceSnapshot struct {
	Symbol          string  `json:"symbol"`
	PriceUSD        float64 `json:"price_usd"`
	Volume24h       float64 `json:"volume_24h"`
	Change24hPct    float64 `json:"change_24h_pct"`
	LastUpdatedUnix int64   `json:"last_updated_unix"`
}

// CoinGeckoID maps internal symbols to CoinGecko API identifiers.
var CoinGeckoID = map[string]string{
	"BTC": "bitcoin",
	"ETH": "ethereum",
	"SOL": "solana",
	"SUI": "sui",
}

// CoinGeckoIDToSymbol is the reverse mapping.
var CoinGeckoIDToSymbol map[string]string

func init() {
	CoinGeckoIDToSymbol = make(map[string]string, len(CoinGeckoID))
	for sym, id := range CoinGeckoID {
		CoinGeckoIDToSymbol[id] = sym
	}
}

// SupportedSymbols lists the assets with curated strategy templates.
// Free-form assets still work; they get the generic template and their
// lowercased name is used as the CoinGecko/Santiment slug.
var SupportedSymbols = []string{"BTC", "ETH", "SOL", "SUI"}

// SantimentSlug maps internal symbols to Santiment project slugs.
var SantimentSlug = map[string]string{
	"BTC": "bitcoin",
	"ETH": "ethereum",
	"SOL": "solana",
	"SUI": "sui",
}

// DefaultSantimentSlug is the fallback project when the requested asset has
// no on-chain data at Santiment.
const DefaultSantimentSlug = "ethereum"

// CanonicalAsset resolves a user-entered asset name to the internal symbol.
// Known slugs and full names fold to the curated symbols; everything else is
// upper-cased and passed through.
func CanonicalAsset(in string) string {
	trimmed := strings.TrimSpace(in)
	if trimmed == "" {
		return ""
	}
	if sym, ok := CoinGeckoIDToSymbol[strings.ToLower(trimmed)]; ok {
		return sym
	}
	return strings.ToUpper(trimmed)
}
