package driver

import (
	"fmt"

	"nock/reducer-go/pkg/noun"
	"nock/reducer-go/pkg/reduce"
)

// CaseResult records the outcome of executing one fixture case.
type CaseResult struct {
	Case    *Case
	Product noun.Noun
	Err     error
	Pass    bool
	Detail  string
}

// RunSuite executes every case against a fresh interpreter. A nonzero
// maxSteps bounds each case's step budget; zero runs unbounded, which
// is only sane for trusted fixtures.
func RunSuite(suite *Suite, maxSteps uint64) []*CaseResult {
	results := make([]*CaseResult, 0, len(suite.Cases))
	for _, c := range suite.Cases {
		results = append(results, runCase(c, maxSteps))
	}
	return results
}

func runCase(c *Case, maxSteps uint64) *CaseResult {
	interp := reduce.New()
	if maxSteps != 0 {
		interp = reduce.NewBounded(maxSteps)
	}

	product, err := interp.Reduce(c.Subject, c.Formula)
	result := &CaseResult{Case: c, Product: product, Err: err}

	switch {
	case c.Failure != "":
		switch {
		case err == nil:
			result.Detail = fmt.Sprintf("expected %s failure, got product %s", c.Failure, product)
		case !MatchFailure(c.Failure, err):
			result.Detail = fmt.Sprintf("expected %s failure, got: %v", c.Failure, err)
		default:
			result.Pass = true
		}
	case err != nil:
		result.Detail = fmt.Sprintf("reduction failed: %v", err)
	case !noun.Equal(product, c.Product):
		result.Detail = fmt.Sprintf("product %s does not match expected %s", product, c.Product)
	default:
		result.Pass = true
	}
	return result
}
