package evaluation

import (
	"errors"
	"sort"
)

var (
	// ErrNoCandidates is returned when there is nothing to select from.
	ErrNoCandidates = errors.New("no candidate results")

	// ErrNoEligibleModel is returned in strict mode when every candidate
	// was flagged.
	ErrNoEligibleModel = errors.New("no candidate passed the divergence check")
)

// DefaultMaxDivergence is the tolerated gap between CV and held-out R².
const DefaultMaxDivergence = 0.15

// SelectOptions controls winner selection.
type SelectOptions struct {
	MaxDivergence float64
	Strict        bool
}

// Flag marks a candidate whose CV score disagrees with its held-out R².
type Flag struct {
	Model      string  `json:"model"`
	R2         float64 `json:"r2"`
	CVScore    float64 `json:"cv_score"`
	Divergence float64 `json:"divergence"`
}

// Selection is the outcome of ranking candidate results.
type Selection struct {
	Best   Result   `json:"best"`
	Index  int      `json:"-"` // position of Best in the input slice
	Ranked []Result `json:"ranked"`
	Flags  []Flag   `json:"flags,omitempty"`
}

// Select ranks results by R² descending, then MAE ascending. Remaining
// ties keep input order. The first eligible row wins.
func Select(results []Result, opts SelectOptions) (*Selection, error) {
	if len(results) == 0 {
		return nil, ErrNoCandidates
	}
	if opts.MaxDivergence <= 0 {
		opts.MaxDivergence = DefaultMaxDivergence
	}

	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := results[order[a]], results[order[b]]
		if ra.R2 != rb.R2 {
			return ra.R2 > rb.R2
		}
		return ra.MAE < rb.MAE
	})

	sel := &Selection{
		Index:  -1,
		Ranked: make([]Result, 0, len(results)),
	}
	for _, i := range order {
		r := results[i]
		sel.Ranked = append(sel.Ranked, r)

		flagged := r.Divergence > opts.MaxDivergence
		if flagged {
			sel.Flags = append(sel.Flags, Flag{
				Model:      r.Model,
				R2:         r.R2,
				CVScore:    r.CVScore,
				Divergence: r.Divergence,
			})
		}

		if sel.Index >= 0 || (flagged && opts.Strict) {
			continue
		}
		sel.Index = i
		sel.Best = r
	}

	if sel.Index < 0 {
		return sel, ErrNoEligibleModel
	}
	return sel, nil
}
