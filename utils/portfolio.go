package utils

import (
	"sort"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"
)

// Capital-deployed versus returns-generating category sets. Categories in
// neither set contribute to neither total.
var (
	capitalCategories = map[string]bool{
		models.CategoryPreSeed:  true,
		models.CategorySeed:     true,
		models.CategoryPostSeed: true,
	}
	returnCategories = map[string]bool{
		models.CategoryRevenueBased:     true,
		models.CategoryConvertibleNotes: true,
		models.CategorySAFEs:            true,
		models.CategoryEquityCrowdfund:  true,
	}
)

type ProjectTotal struct {
	ProjectName string `json:"project_name"`
	Amount      int64  `json:"amount"`
	Units       int    `json:"units"`
}

type PortfolioSummary struct {
	TotalInvested   int64          `json:"total_invested"`
	TotalReturns    int64          `json:"total_returns"`
	ActiveProjects  int            `json:"active_projects"`
	ByProject       []ProjectTotal `json:"by_project"`
	StatusBreakdown map[string]int `json:"status_breakdown"`
}

// SummarizePortfolio reduces a set of ledger rows (already scoped to one user
// or to all users by the caller's query) into display totals. Pure: no reads,
// no writes. projects maps project name to its reference row and may omit
// names the ledger denormalized away; missing projects simply never count as
// active.
func SummarizePortfolio(rows []models.Investment, projects map[string]models.Project) PortfolioSummary {
	summary := PortfolioSummary{StatusBreakdown: make(map[string]int)}
	perProject := make(map[string]*ProjectTotal)
	activeSeen := make(map[string]bool)

	for i := range rows {
		inv := &rows[i]
		summary.StatusBreakdown[inv.TransactionStatus]++

		if !IsSuccessfulStatus(inv.TransactionStatus) {
			continue
		}

		switch {
		case capitalCategories[inv.Category]:
			summary.TotalInvested += inv.Amount
		case returnCategories[inv.Category]:
			summary.TotalReturns += inv.Amount
		}

		if inv.InvestmentType == models.TypeInvestment || inv.InvestmentType == models.TypeFollowOn {
			pt, ok := perProject[inv.ProjectName]
			if !ok {
				pt = &ProjectTotal{ProjectName: inv.ProjectName}
				perProject[inv.ProjectName] = pt
			}
			pt.Amount += inv.Amount
			pt.Units += inv.Units
		}

		if p, ok := projects[inv.ProjectName]; ok && p.Status == models.ProjectActive {
			activeSeen[inv.ProjectName] = true
		}
	}

	summary.ActiveProjects = len(activeSeen)
	summary.ByProject = make([]ProjectTotal, 0, len(perProject))
	for _, pt := range perProject {
		summary.ByProject = append(summary.ByProject, *pt)
	}
	sort.Slice(summary.ByProject, func(i, j int) bool {
		return summary.ByProject[i].ProjectName < summary.ByProject[j].ProjectName
	})
	return summary
}
