// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides ASCII dashboard for the client book
package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/harperreed/clientdesk/models"
)

type DashboardStats struct {
	// Overall stats
	TotalClients    int `json:"total_clients"`
	ActiveContracts int `json:"active_contracts"`

	// Breakdowns
	ByStatus  map[string]int `json:"by_status"`
	ByProduct map[string]int `json:"by_product"`
	ByChannel map[string]int `json:"by_channel"`

	// Money
	TotalDealAmount    decimal.Decimal `json:"total_deal_amount"`
	TotalMonthlyVolume decimal.Decimal `json:"total_monthly_volume"`

	AsOf models.Date `json:"as_of"`
}

// unknownBucket groups records with an empty breakdown field.
const unknownBucket = "unknown"

// GenerateStats summarizes records. A contract is active when asOf falls
// within its start and end dates.
func GenerateStats(records []models.Client, asOf models.Date) *DashboardStats {
	stats := &DashboardStats{
		ByStatus:           make(map[string]int),
		ByProduct:          make(map[string]int),
		ByChannel:          make(map[string]int),
		TotalDealAmount:    decimal.Zero,
		TotalMonthlyVolume: decimal.Zero,
		AsOf:               asOf,
	}

	for _, c := range records {
		stats.TotalClients++
		stats.ByStatus[bucket(c.Status)]++
		stats.ByProduct[bucket(c.Product)]++
		stats.ByChannel[bucket(c.Channel)]++

		if c.DealAmount.Valid {
			stats.TotalDealAmount = stats.TotalDealAmount.Add(c.DealAmount.Decimal)
		}
		if c.MonthlyVolume.Valid {
			stats.TotalMonthlyVolume = stats.TotalMonthlyVolume.Add(c.MonthlyVolume.Decimal)
		}
		if c.ActiveOn(asOf) {
			stats.ActiveContracts++
		}
	}

	return stats
}

func bucket(v string) string {
	if strings.TrimSpace(v) == "" {
		return unknownBucket
	}
	return v
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	// Header
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  CLIENTDESK DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  🏢 %d clients  📄 %d active contracts (as of %s)\n",
		stats.TotalClients, stats.ActiveContracts, stats.AsOf))
	out.WriteString(fmt.Sprintf("  💰 %s total deals  📈 %s monthly volume\n\n",
		formatMoney(stats.TotalDealAmount), formatMoney(stats.TotalMonthlyVolume)))

	renderBreakdown(&out, "BY STATUS", stats.ByStatus)
	renderBreakdown(&out, "BY PRODUCT", stats.ByProduct)
	renderBreakdown(&out, "BY CHANNEL", stats.ByChannel)

	return out.String()
}

func renderBreakdown(out *strings.Builder, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	out.WriteString(title + "\n")

	keys := make([]string, 0, len(counts))
	maxCount := 0
	for k, n := range counts {
		keys = append(keys, k)
		if n > maxCount {
			maxCount = n
		}
	}
	// Largest first, then by name
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		// Calculate bar length (0-10 blocks)
		barLength := (counts[k] * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		out.WriteString(fmt.Sprintf("  %-16s %s  %2d\n", truncate(k, 16), bar, counts[k]))
	}
	out.WriteString("\n")
}

// formatMoney renders an amount in thousands once it is large enough to
// crowd the line.
func formatMoney(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(10000)) {
		return "$" + d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return "$" + d.StringFixed(2)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
