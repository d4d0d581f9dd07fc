package panels

import (
	"html/template"
	"math"

	"github.com/ziadkadry99/opsdash/internal/apiclient"
)

// Tally counts passing sub-results of one category.
type Tally struct {
	Passed int
	Total  int
}

// Summary aggregates a BIST run.
type Summary struct {
	Total        int
	Passed       int
	Failed       int
	PassRate     int
	Endpoints    Tally
	Pages        Tally
	Dependencies Tally
}

// Summarize counts passing sub-results across all categories.
func Summarize(r *apiclient.BISTResults) Summary {
	var s Summary
	if r == nil {
		return s
	}
	for _, e := range r.Endpoints {
		s.Endpoints.Total++
		if e.Success {
			s.Endpoints.Passed++
		}
	}
	for _, p := range r.DashboardPages {
		s.Pages.Total++
		if p.Success {
			s.Pages.Passed++
		}
	}
	for _, d := range r.ExternalDependencies {
		s.Dependencies.Total++
		if d.Success {
			s.Dependencies.Passed++
		}
	}
	s.Total = s.Endpoints.Total + s.Pages.Total + s.Dependencies.Total
	s.Passed = s.Endpoints.Passed + s.Pages.Passed + s.Dependencies.Passed
	s.Failed = s.Total - s.Passed
	s.PassRate = PassRate(s.Passed, s.Total)
	return s
}

// PassRate is round(100*passed/total), or 0 when total is 0.
func PassRate(passed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(passed) / float64(total)))
}

// BIST holds the four rendered containers of the self-test page.
type BIST struct {
	Endpoints    template.HTML
	Pages        template.HTML
	Dependencies template.HTML
	Summary      template.HTML
}

// BISTResults renders every container from one result set.
func BISTResults(r *apiclient.BISTResults) BIST {
	if r == nil {
		r = &apiclient.BISTResults{}
	}
	return BIST{
		Endpoints:    Endpoints(r.Endpoints),
		Pages:        Pages(r.DashboardPages),
		Dependencies: Dependencies(r.ExternalDependencies),
		Summary:      render("bist-summary", Summarize(r)),
	}
}

// BISTPlaceholder shows msg in every container.
func BISTPlaceholder(msg string) BIST {
	p := Placeholder(msg)
	return BIST{Endpoints: p, Pages: p, Dependencies: p, Summary: p}
}

// Endpoints renders the endpoint test results.
func Endpoints(results []apiclient.EndpointResult) template.HTML {
	if len(results) == 0 {
		return Placeholder("No endpoints tested")
	}
	return render("bist-endpoints", results)
}

// Pages renders the dashboard page test results.
func Pages(results []apiclient.PageResult) template.HTML {
	if len(results) == 0 {
		return Placeholder("No pages tested")
	}
	return render("bist-pages", results)
}

// Dependencies renders the external dependency probes.
func Dependencies(results []apiclient.DependencyResult) template.HTML {
	if len(results) == 0 {
		return Placeholder("No dependencies configured")
	}
	return render("bist-dependencies", results)
}
