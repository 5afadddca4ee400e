package supervisor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/finsage/finsage/assistant/portfolio"
)

// Defaults applied when the query does not specify a parameter.
const (
	defaultIndustry     = portfolio.IndustryTechnology
	defaultCompanyCount = 3
)

// companyCountPattern matches "<integer> companies|company|stocks", allowing
// up to two descriptive words in between so "5 technology companies" and
// "5 real estate companies" bind the number to the noun.
var companyCountPattern = regexp.MustCompile(`(\d+)(?:\s+[a-z]+){0,2}?\s+(?:companies|company|stocks)`)

// PortfolioParams are the structured parameters of a portfolio request.
type PortfolioParams struct {
	Industry     portfolio.Industry
	CompanyCount int
}

// ExtractPortfolioParams derives portfolio parameters from the query text.
//
// Industry is detected by substring: technology terms are checked before
// real estate terms, so a query naming both resolves to technology. The
// company count is the first "<n> companies" style match; no upper bound is
// enforced here - bounds belong to the agent function service.
func ExtractPortfolioParams(query string) PortfolioParams {
	lower := strings.ToLower(query)

	params := PortfolioParams{
		Industry:     defaultIndustry,
		CompanyCount: defaultCompanyCount,
	}

	if strings.Contains(lower, "tech") || strings.Contains(lower, "technology") {
		params.Industry = portfolio.IndustryTechnology
	} else if strings.Contains(lower, "real estate") || strings.Contains(lower, "property") {
		params.Industry = portfolio.IndustryRealEstate
	}

	if match := companyCountPattern.FindStringSubmatch(lower); match != nil {
		if count, err := strconv.Atoi(match[1]); err == nil {
			params.CompanyCount = count
		}
	}

	return params
}
