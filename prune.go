package dash2pdf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PruneRule names one class of elements excluded from the export.
type PruneRule struct {
	Name     string
	Selector string
}

// PrunePolicy is the declarative list of elements removed before printing.
// Every match of every rule is removed; rules with zero matches are valid.
type PrunePolicy struct {
	Rules []PruneRule
}

// DefaultPrunePolicy removes the tab-title bars and the dashboard toolbar.
func DefaultPrunePolicy() PrunePolicy {
	return PrunePolicy{Rules: []PruneRule{
		{
			Name:     "tab-header",
			Selector: "#app > div > div:nth-child(1) > div.dragdroppable.dragdroppable-column > div > div.with-popover-menu > div > div",
		},
		{
			Name:     "dashboard-header",
			Selector: ".dashboard-header",
		},
	}}
}

// ErrEmptySelector is returned by Validate for a rule without a selector.
var ErrEmptySelector = errors.New("prune rule has empty selector")

// Validate checks that every rule carries a selector.
func (p PrunePolicy) Validate() error {
	for i, r := range p.Rules {
		if strings.TrimSpace(r.Selector) == "" {
			return fmt.Errorf("%w: rule %d (%s)", ErrEmptySelector, i, r.Name)
		}
	}
	return nil
}

// Selectors returns the rule selectors in declaration order.
func (p PrunePolicy) Selectors() []string {
	sels := make([]string, 0, len(p.Rules))
	for _, r := range p.Rules {
		sels = append(sels, r.Selector)
	}
	return sels
}

// Apply removes all matches from doc and returns how many were removed.
// It mirrors the in-page removal so the policy can be checked against a
// static DOM.
func (p PrunePolicy) Apply(doc *goquery.Document) int {
	removed := 0
	for _, r := range p.Rules {
		sel := doc.Find(r.Selector)
		removed += sel.Length()
		sel.Remove()
	}
	return removed
}

// Remaining counts, per rule name, the matches still present in doc.
// Rules without matches are omitted.
func (p PrunePolicy) Remaining(doc *goquery.Document) map[string]int {
	left := make(map[string]int)
	for _, r := range p.Rules {
		if n := doc.Find(r.Selector).Length(); n > 0 {
			left[r.Name] += n
		}
	}
	return left
}

// remainingInHTML parses an HTML snapshot and reports leftover matches.
func (p PrunePolicy) remainingInHTML(html string) (map[string]int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing DOM snapshot: %w", err)
	}
	return p.Remaining(doc), nil
}
