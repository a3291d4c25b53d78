package report

import (
	"fmt"
	"strings"

	"github.com/tealscan/tealscan/internal/common"
	"github.com/tealscan/tealscan/internal/models"
)

// FormatSummary renders the scan as markdown: portfolio totals, the holdings
// table, the commission-loss callout, and concentration warnings.
func FormatSummary(scan *models.PortfolioScan) string {
	var sb strings.Builder

	sb.WriteString("# Portfolio X-Ray\n\n")
	sb.WriteString(fmt.Sprintf("**Date:** %s\n", scan.AsOf.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("**Total Value:** %s\n", common.FormatMoney(scan.TotalValue)))
	sb.WriteString(fmt.Sprintf("**Total Invested:** %s\n", common.FormatMoney(scan.TotalCost)))
	sb.WriteString(fmt.Sprintf("**Total Gain:** %s (%s)\n\n", common.FormatSignedMoney(scan.TotalGain), common.FormatSignedPct(scan.TotalGainPct)))

	sb.WriteString("## Holdings\n\n")
	sb.WriteString("| Fund | Class | Category | Value | Invested | Plan | XIRR | Abs Return | Rating | Status |\n")
	sb.WriteString("|------|-------|----------|-------|----------|------|------|------------|--------|--------|\n")
	for _, row := range scan.Schemes {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			row.FundName, row.AssetClass, row.SubCategory,
			common.FormatMoney(row.CurrentValue), common.FormatMoney(row.InvestedCost),
			row.Plan,
			common.FormatOptionalPct(row.XIRR), common.FormatSignedPct(row.AbsoluteReturn),
			row.Rating, row.Status,
		))
	}
	sb.WriteString("\n")

	if scan.TotalCommissionLoss > 0 {
		sb.WriteString("## Commission Leak\n\n")
		sb.WriteString(fmt.Sprintf("You are losing an estimated **%s every year** to distributor commissions.\n",
			common.FormatMoney(scan.TotalCommissionLoss)))
		sb.WriteString("Funds without \"Direct\" in their name embed a recurring distributor fee; ")
		sb.WriteString("switching them to direct plans removes it.\n\n")
		sb.WriteString("| Fund | Value | Yearly Loss |\n")
		sb.WriteString("|------|-------|-------------|\n")
		for _, row := range scan.Schemes {
			if row.CommissionLoss <= 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
				row.FundName, common.FormatMoney(row.CurrentValue), common.FormatMoney(row.CommissionLoss)))
		}
		sb.WriteString("\n")
	} else if len(scan.Schemes) > 0 {
		sb.WriteString("## Commission Leak\n\n")
		sb.WriteString("Your portfolio is 100% direct plans. No distributor commissions detected.\n\n")
	}

	if len(scan.Concentrations) > 0 {
		sb.WriteString("## Concentration Risk\n\n")
		for _, risk := range scan.Concentrations {
			sb.WriteString(fmt.Sprintf("- **%s**: %d funds in the same category — consider consolidating to reduce overlap\n",
				risk.SubCategory, risk.Count))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
