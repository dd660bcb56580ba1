package listing

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// InsightSampleLimit bounds how many same-category listings feed the
// market-average computation.
const InsightSampleLimit = 20

// SalaryComparison classifies a listing's pay against its category average
type SalaryComparison string

const (
	SalaryHigher  SalaryComparison = "higher"
	SalaryLower   SalaryComparison = "lower"
	SalaryAverage SalaryComparison = "average"
)

// salaryFigure matches comma-grouped figures such as "150,000".
// This parser is a best-effort heuristic: plain numbers without comma
// grouping, currency symbols, and textual ranges are out of contract.
var salaryFigure = regexp.MustCompile(`(\d+),(\d+)`)

var (
	higherThreshold = decimal.NewFromFloat(1.1)
	lowerThreshold  = decimal.NewFromFloat(0.9)
)

// ParseSalary extracts every comma-grouped figure from the free-text
// salary field and returns their mean as the listing's midpoint. A text
// with no parseable figure returns ok=false and must be excluded from
// any aggregate, never counted as zero.
func ParseSalary(text string) (midpoint decimal.Decimal, ok bool) {
	matches := salaryFigure.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return decimal.Zero, false
	}

	sum := decimal.Zero
	for _, m := range matches {
		figure, err := decimal.NewFromString(m[1] + m[2])
		if err != nil {
			continue
		}
		sum = sum.Add(figure)
	}

	count := int64(len(matches))
	return sum.Div(decimal.NewFromInt(count)), true
}

// MarketAverage averages the parseable salary midpoints of a sample of
// listings. Listings whose salary text yields no figure are skipped.
// Returns ok=false when nothing in the sample is parseable.
func MarketAverage(sample []*Job) (avg decimal.Decimal, sampled int, ok bool) {
	if len(sample) > InsightSampleLimit {
		sample = sample[:InsightSampleLimit]
	}

	sum := decimal.Zero
	for _, job := range sample {
		midpoint, parsed := ParseSalary(job.Salary)
		if !parsed {
			continue
		}
		sum = sum.Add(midpoint)
		sampled++
	}

	if sampled == 0 {
		return decimal.Zero, 0, false
	}
	return sum.Div(decimal.NewFromInt(int64(sampled))), sampled, true
}

// CompareSalary classifies a midpoint against the market average:
// more than 10% above is "higher", more than 10% below is "lower",
// anything within the band is "average".
func CompareSalary(midpoint, marketAvg decimal.Decimal) SalaryComparison {
	switch {
	case midpoint.GreaterThan(marketAvg.Mul(higherThreshold)):
		return SalaryHigher
	case midpoint.LessThan(marketAvg.Mul(lowerThreshold)):
		return SalaryLower
	default:
		return SalaryAverage
	}
}
