package dashboard

import (
	"context"
	"log"
	"net/http"

	"github.com/ziadkadry99/opsdash/internal/apiclient"
	"github.com/ziadkadry99/opsdash/internal/panels"
)

// Test categories a run can be scoped to. Each one names a tab.
const (
	TestTypeAll          = "all"
	TestTypeEndpoints    = "endpoints"
	TestTypePages        = "pages"
	TestTypeDependencies = "dependencies"
)

const noResultsMessage = `No test results available. Click "Run Tests" to start.`

// ValidTestType reports whether t names a known run scope.
func ValidTestType(t string) bool {
	switch t {
	case TestTypeAll, TestTypeEndpoints, TestTypePages, TestTypeDependencies:
		return true
	}
	return false
}

// LoadBIST fetches the latest self-test results into the BIST containers.
func (d *Dashboard) LoadBIST(ctx context.Context) Update {
	results, err := d.backend.BISTResults(ctx)
	switch {
	case err == nil:
		return bistUpdate(panels.BISTResults(results))
	case apiclient.IsApplication(err), apiclient.StatusCode(err) == http.StatusNotFound:
		// The backend answers 404 with success:false until the first run.
		return bistUpdate(panels.BISTPlaceholder(noResultsMessage))
	default:
		log.Printf("dashboard: loading BIST results: %v", err)
		return bistUpdate(panels.BISTPlaceholder("Error loading test results"))
	}
}

// RunBIST triggers a self-test run. A scoped run also switches the
// active tab to its category. On failure the containers keep their
// previous content.
func (d *Dashboard) RunBIST(ctx context.Context, testType string) Update {
	if testType == "" {
		testType = TestTypeAll
	}
	results, err := d.backend.RunBIST(ctx)
	if err != nil {
		log.Printf("dashboard: running BIST (%s): %v", testType, err)
		var u Update
		u.text(targetRunStatus, "✗ Error running tests")
		return u
	}
	u := bistUpdate(panels.BISTResults(results))
	u.text(targetRunStatus, "✓ Tests completed")
	if testType != TestTypeAll {
		u.ActiveTab = testType
	}
	return u
}

func bistUpdate(b panels.BIST) Update {
	var u Update
	u.add(targetEndpoints, b.Endpoints)
	u.add(targetPages, b.Pages)
	u.add(targetDependencies, b.Dependencies)
	u.add(targetSummary, b.Summary)
	return u
}
