package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/carlist"
)

// Ensure AdDetector implements carlist.AdDetector at compile time.
var _ carlist.AdDetector = (*AdDetector)(nil)

// AdDetector finds advertisement containers by attribute substring rules.
// Matching is heuristic: any element carrying a matching id, class or source
// is reported, whether or not it actually hosts an ad.
type AdDetector struct {
	selector string
	matcher  cascadia.Selector
}

// NewAdDetector compiles the rules into a single selector group.
// With no rules given, carlist.DefaultAdRules is used.
func NewAdDetector(rules ...carlist.AdRule) (*AdDetector, error) {
	if len(rules) == 0 {
		rules = carlist.DefaultAdRules()
	}

	parts := make([]string, 0, len(rules))
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		parts = append(parts, ruleSelector(r))
	}

	selector := strings.Join(parts, ", ")
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, carlist.Errorf(carlist.EINVALID, "invalid ad rules %q: %v", selector, err)
	}

	return &AdDetector{selector: selector, matcher: m}, nil
}

// Selector returns the compiled selector group, for diagnostics.
func (d *AdDetector) Selector() string {
	return d.selector
}

// Detect returns every matching container in document order. An element
// matched by several rules is reported once. Positions start at 1.
func (d *AdDetector) Detect(html string, page int) ([]*carlist.Ad, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, carlist.Errorf(carlist.EINVALID, "failed to parse HTML: %v", err)
	}

	containers := doc.FindMatcher(d.matcher)
	ads := make([]*carlist.Ad, 0, containers.Length())
	containers.Each(func(i int, s *goquery.Selection) {
		content, _ := s.Html()
		ads = append(ads, &carlist.Ad{
			Page:     page,
			Position: i + 1,
			Content:  content,
		})
	})
	return ads, nil
}

// ruleSelector renders a rule as a CSS attribute-substring selector,
// e.g. div[class*="ad"].
func ruleSelector(r carlist.AdRule) string {
	tag := r.Tag
	if tag == "" {
		tag = "*"
	}
	return tag + "[" + r.Attr + "*=" + cssString(r.Substring) + "]"
}

// cssString quotes s as a CSS string literal.
func cssString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
