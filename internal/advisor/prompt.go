package advisor

import (
	"fmt"
	"strings"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"
)

const analystSystemPrompt = "You are a Crypto Finance Analyst specializing in DeFi and Yield Farming."

// Curated playbooks for the assets we track closely. Anything else falls
// back to the generic prompt.
var curatedPlaybooks = map[string]string{
	"BTC": `If the asset is BTC and the market condition is bullish, include the following strategy on the Base network:
1. Wrap BTC to cbBTC (Coinbase BTC) on Base.
2. Lend cbBTC on Aave (Base network) and use it as collateral.
3. Borrow a stable asset like USDC against this collateral on Aave (Base network).
4. Take the borrowed USDC and provide liquidity in a high APY pool like the USDC/ETH concentrated pool on Aerodrome on Base L2.
5. The interest earned should cover the borrow APR, and you keep the upside of BTC price appreciation in a bull market.

If the asset is BTC and the market condition is bearish, include the following strategy:
1. Convert BTC to USDC.
2. Lend USDC on Aave and use it as collateral.
3. Borrow a depreciating asset like BTC or ETH against this collateral on Aave.
4. Convert the borrowed BTC/ETH back to USDC.
5. Provide the USDC in liquidity pools on decentralized exchanges like Aerodrome for stable yields.
6. The interest earned should cover the borrowing costs, and you benefit from the falling value of the borrowed asset.`,

	"ETH": `If the asset is ETH and the market condition is bullish, include strategies such as:
- Staking ETH in Lido or Rocket Pool for staking rewards.
- Providing liquidity in Uniswap V3 or Curve pools.
- Leveraging ETH in Aave or Compound for borrowing and yield farming.

If the asset is ETH and the market condition is bearish, include the following strategy:
1. Convert ETH to USDC.
2. Lend USDC on Aave and use it as collateral.
3. Borrow a depreciating asset like ETH or BTC against this collateral on Aave.
4. Convert the borrowed ETH/BTC back to USDC.
5. Provide the USDC in liquidity pools on decentralized exchanges like Aerodrome for stable yields.
6. The interest earned should cover the borrowing costs, and you benefit from the falling value of the borrowed asset.`,

	"SOL": `If the asset is SOL and the market condition is bullish, include strategies such as:
- Staking SOL with native validators or platforms like Marinade Finance.
- Providing liquidity in Raydium or Orca pools.
- Leveraging SOL in lending protocols like Solend.

If the asset is SOL and the market condition is bearish, include the following strategy:
1. Convert SOL to USDC.
2. Lend USDC on Aave or Solend and use it as collateral.
3. Borrow a depreciating asset like SOL or ETH against this collateral.
4. Convert the borrowed SOL/ETH back to USDC.
5. Provide the USDC in liquidity pools on decentralized exchanges like Raydium or Orca for stable yields.
6. The interest earned should cover the borrowing costs, and you benefit from the falling value of the borrowed asset.`,

	"SUI": `If the asset is SUI and the market condition is bullish, include strategies such as:
- Staking SUI with native validators.
- Providing liquidity in AlphaFi's stSUI-USDC pair.
- Leveraging SUI in lending protocols on Sui.

If the asset is SUI and the market condition is bearish, include the following strategy:
1. Convert SUI to USDC.
2. Lend USDC on Sui lending protocols and use it as collateral.
3. Borrow a depreciating asset like SUI or ETH against this collateral.
4. Convert the borrowed SUI/ETH back to USDC.
5. Provide the USDC in liquidity pools on decentralized exchanges like AlphaFi for stable yields.
6. The interest earned should cover the borrowing costs, and you benefit from the falling value of the borrowed asset.`,
}

// BuildStrategyPrompt renders the user prompt for one asset and condition.
func BuildStrategyPrompt(asset string, condition domain.MarketCondition) string {
	asset = strings.ToUpper(strings.TrimSpace(asset))
	label := conditionLabel(condition)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Provide a %s DeFi/Yield Farming strategy for %s.\n", label, asset)
	fmt.Fprintf(&sb, "Focus only on %s and provide multiple strategies tailored to it.\n", asset)
	fmt.Fprintf(&sb, "Do not include strategies for other cryptocurrencies or for market conditions other than %s.\n\n", label)

	if playbook, ok := curatedPlaybooks[asset]; ok {
		sb.WriteString(playbook)
	} else {
		fmt.Fprintf(&sb, `For %[1]s, consider the following general strategies:
- Staking %[1]s in native protocols or platforms.
- Providing liquidity in decentralized exchanges.
- Leveraging %[1]s in lending protocols for borrowing and yield farming.

If the market condition is bullish, focus on strategies that maximize returns, such as:
- Providing liquidity in high APY pools.
- Leveraging %[1]s for borrowing and yield farming.
- Staking %[1]s for rewards.

If the market condition is bearish, focus on strategies that minimize risk, such as:
- Converting %[1]s to stablecoins like USDC.
- Lending stablecoins and borrowing depreciating assets.
- Providing liquidity in stablecoin pairs.`, asset)
	}

	if condition == domain.ConditionNeutral {
		sb.WriteString("\n\nThe market is range-bound, so prefer market-neutral positions: stablecoin pools, delta-neutral lending, and staking over directional leverage.")
	}

	sb.WriteString("\n\nBe concise and actionable.")
	return sb.String()
}

func conditionLabel(condition domain.MarketCondition) string {
	switch condition {
	case domain.ConditionBullish:
		return "bullish"
	case domain.ConditionBearish:
		return "bearish"
	default:
		return "market-neutral"
	}
}
