package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Ayash-Bera/propsearch/internal/models"
	"github.com/Ayash-Bera/propsearch/internal/nlp"
)

const (
	DefaultSalary      = 240_000
	DefaultSavingsRate = 0.20
)

// salaryPattern finds "with 300k salary", "with an annual income of aed 250,000" and similar.
var salaryPattern = regexp.MustCompile(
	`\bwith\s+(?:an?\s+|my\s+)?(?:(?:annual|yearly)\s+)?(?:(?:salary|income)\s+of\s+)?(?:aed\s*)?(` + nlp.AmountExpr + `)\s*(?:aed\s+)?(?:(?:annual|yearly|a year|per year)\s+)?(?:salary|income)?`)

// Analytics computes aggregate answers over listing sets.
type Analytics struct {
	search      Searcher
	salary      int
	savingsRate float64
	logger      *logrus.Logger
}

func NewAnalytics(search Searcher, salary int, savingsRate float64, logger *logrus.Logger) *Analytics {
	if salary <= 0 {
		salary = DefaultSalary
	}
	if savingsRate <= 0 || savingsRate > 1 {
		savingsRate = DefaultSavingsRate
	}
	return &Analytics{
		search:      search,
		salary:      salary,
		savingsRate: savingsRate,
		logger:      logger,
	}
}

// PriceStats summarizes the priced listings. Count covers every listing,
// priced or not. It returns nil when no listing has a price.
func PriceStats(listings []models.Listing) *models.PriceStats {
	var sum float64
	stats := models.PriceStats{Count: len(listings)}
	for _, l := range listings {
		if l.Price == nil || *l.Price <= 0 {
			continue
		}
		p := *l.Price
		if stats.PricedCount == 0 || p < stats.Min {
			stats.Min = p
		}
		if p > stats.Max {
			stats.Max = p
		}
		sum += p
		stats.PricedCount++
	}
	if stats.PricedCount == 0 {
		return nil
	}
	stats.Average = sum / float64(stats.PricedCount)
	return &stats
}

// Compare fetches each location independently and contrasts the mean
// prices. The two searches run concurrently; a failed side is reported with
// no stats and does not cancel the other.
func (a *Analytics) Compare(ctx context.Context, first, second string, base models.FilterRecord, limit int) *models.Comparison {
	locations := [2]string{first, second}
	var sides [2]models.LocationStats

	var g errgroup.Group
	for i, loc := range locations {
		i, loc := i, loc
		g.Go(func() error {
			filters := base.Clone()
			filters.LocationQuery = loc
			filters.Keywords = ""

			result, err := a.search.Execute(ctx, filters, 1, limit)
			sides[i] = models.LocationStats{
				Location: loc,
				Count:    len(result.Listings),
				Stats:    PriceStats(result.Listings),
			}
			if err != nil {
				return fmt.Errorf("search %s: %w", loc, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.logger.WithError(err).Warn("Comparison search failed")
	}

	cmp := &models.Comparison{First: sides[0], Second: sides[1]}
	if sides[0].Stats == nil || sides[1].Stats == nil {
		return cmp
	}

	diff := sides[0].Stats.Average - sides[1].Stats.Average
	cmp.Difference = math.Abs(diff)
	if sides[1].Stats.Average > 0 {
		cmp.DifferencePercent = math.Abs(diff) / sides[1].Stats.Average * 100
	}
	switch {
	case diff > 0:
		cmp.Higher = first
	case diff < 0:
		cmp.Higher = second
	}
	return cmp
}

// Affordability estimates the years of saving needed to buy at the average
// price. A "with N salary" phrase in query overrides the default salary.
func (a *Analytics) Affordability(listings []models.Listing, query string) *models.Affordability {
	stats := PriceStats(listings)
	if stats == nil {
		return nil
	}

	salary := a.salary
	if s, ok := SalaryFromQuery(query); ok {
		salary = s
	}

	annual := float64(salary) * a.savingsRate
	result := &models.Affordability{
		AveragePrice:  stats.Average,
		Salary:        salary,
		SavingsRate:   a.savingsRate,
		AnnualSavings: annual,
	}
	if annual <= 0 {
		result.Infinite = true
		return result
	}
	years := stats.Average / annual
	result.Years = &years
	return result
}

// SalaryFromQuery extracts an explicit salary figure.
func SalaryFromQuery(query string) (int, bool) {
	for _, m := range salaryPattern.FindAllStringSubmatch(strings.ToLower(query), -1) {
		if strings.Contains(m[0], "salary") || strings.Contains(m[0], "income") {
			return nlp.NormalizePrice(m[1])
		}
	}
	return 0, false
}

// Estimate derives a price per square foot from the listings and, when the
// filters carry a target size, a point estimate for that size.
func Estimate(listings []models.Listing, filters models.FilterRecord) *models.Estimate {
	stats := PriceStats(listings)
	if stats == nil {
		return nil
	}

	var areaSum float64
	var areaCount int
	for _, l := range listings {
		if l.Area != nil && *l.Area > 0 {
			areaSum += *l.Area
			areaCount++
		}
	}
	if areaCount == 0 {
		return nil
	}

	avgArea := areaSum / float64(areaCount)
	est := &models.Estimate{
		AveragePrice: math.Round(stats.Average),
		MinPrice:     stats.Min,
		MaxPrice:     stats.Max,
		SampleSize:   len(listings),
		PricePerSqft: math.Round(stats.Average / avgArea),
	}

	target := filters.MaxArea
	if target == nil {
		target = filters.MinArea
	}
	if target != nil && *target > 0 {
		v := math.Round(float64(*target) * stats.Average / avgArea)
		est.TargetArea = models.IntPtr(*target)
		est.EstimatedPrice = &v
	}
	return est
}

// Market counts listings per property type and per location.
func Market(listings []models.Listing) *models.MarketInsight {
	if len(listings) == 0 {
		return nil
	}
	m := &models.MarketInsight{
		TotalListings: len(listings),
		PropertyTypes: make(map[string]int),
		Locations:     make(map[string]int),
		Stats:         PriceStats(listings),
	}
	for _, l := range listings {
		pt := l.PropertyType
		if pt == "" {
			pt = "unknown"
		}
		m.PropertyTypes[pt]++
		if l.LocationName != "" {
			m.Locations[l.LocationName]++
		}
	}
	return m
}
