package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carlist"
)

// All is a Step index that keeps every match instead of narrowing to one.
const All = -1

// Step selects descendants by tag name and, unless Index is All,
// narrows the result to the match at Index (0-based, document order).
type Step struct {
	Tag   string
	Index int
}

// Path is a chain of Steps resolved one after another.
type Path []Step

// Resolve walks the path from the given selection. A step that matches
// nothing yields an empty selection, and every later step stays empty.
func (p Path) Resolve(from *goquery.Selection) *goquery.Selection {
	sel := from
	for _, s := range p {
		sel = sel.Find(s.Tag)
		if s.Index != All {
			sel = sel.Eq(s.Index)
		}
	}
	return sel
}

// String renders the path as "div[3] div h3".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		if s.Index == All {
			parts[i] = s.Tag
			continue
		}
		parts[i] = s.Tag + "[" + strconv.Itoa(s.Index) + "]"
	}
	return strings.Join(parts, " ")
}

// Probe records what one price hypothesis observed on a card.
type Probe struct {
	Hypothesis string

	// Evaluated is false when the hypothesis did not apply and its path
	// was never resolved.
	Evaluated bool

	// Present reports whether the path matched at least one element.
	// A matched element with no content is Present with empty Text and HTML;
	// an unmatched path has no markup at all.
	Present bool

	Text string
	HTML string
}

// PriceHypothesis describes one known layout variant of the price block.
type PriceHypothesis struct {
	Name string

	// Path locates the price heading, starting at the card's first section.
	Path Path

	// Applies reports whether the hypothesis should be evaluated, given the
	// probes of the hypotheses before it. Nil means it always applies.
	Applies func(earlier []Probe) bool
}

// WhenAbsent applies a hypothesis only if the named earlier hypothesis was
// evaluated and matched no element at all. A match with empty content does
// not satisfy it.
func WhenAbsent(name string) func([]Probe) bool {
	return func(earlier []Probe) bool {
		for _, p := range earlier {
			if p.Hypothesis == name {
				return p.Evaluated && !p.Present
			}
		}
		return false
	}
}

// DefaultPriceHypotheses returns the known price layouts, shallowest first.
// Each deeper layout corresponds to one more wrapper div in front of the
// price block, added for badges and promotions.
func DefaultPriceHypotheses() []PriceHypothesis {
	return []PriceHypothesis{
		{
			Name: "simple",
			Path: Path{{"div", 3}, {"div", All}, {"h3", All}},
		},
		{
			Name: "complex",
			Path: Path{{"div", 4}, {"div", 2}, {"div", All}, {"h3", All}},
		},
		{
			Name: "compound",
			Path: Path{{"div", 5}, {"div", 2}, {"div", All}, {"h3", All}},
		},
		{
			Name:    "nested-compound",
			Path:    Path{{"div", 6}, {"div", 2}, {"div", All}, {"h3", All}},
			Applies: WhenAbsent("compound"),
		},
	}
}

// PriceResolver recovers a card's displayed price by trying each layout
// hypothesis in order until one yields text.
type PriceResolver struct {
	hypotheses []PriceHypothesis
	currency   string
}

// NewPriceResolver returns a resolver that appends currency to every price.
// With no hypotheses given, DefaultPriceHypotheses is used.
func NewPriceResolver(currency string, hypotheses ...PriceHypothesis) *PriceResolver {
	if len(hypotheses) == 0 {
		hypotheses = DefaultPriceHypotheses()
	}
	if currency == "" {
		currency = carlist.DefaultCurrency
	}
	return &PriceResolver{hypotheses: hypotheses, currency: currency}
}

// Resolve returns the first non-empty price text followed by the currency,
// or an empty string when no hypothesis matched.
func (r *PriceResolver) Resolve(card *goquery.Selection) string {
	price, _ := r.resolve(card)
	return price
}

// Trace returns the probes taken while resolving the card's price, up to and
// including the hypothesis that produced it.
func (r *PriceResolver) Trace(card *goquery.Selection) []Probe {
	_, probes := r.resolve(card)
	return probes
}

func (r *PriceResolver) resolve(card *goquery.Selection) (string, []Probe) {
	section := card.Find("section").First()

	probes := make([]Probe, 0, len(r.hypotheses))
	for _, h := range r.hypotheses {
		if h.Applies != nil && !h.Applies(probes) {
			probes = append(probes, Probe{Hypothesis: h.Name})
			continue
		}

		p := probe(h.Name, h.Path.Resolve(section))
		probes = append(probes, p)
		if p.Text != "" {
			return p.Text + " " + r.currency, probes
		}
	}
	return "", probes
}

func probe(name string, sel *goquery.Selection) Probe {
	p := Probe{Hypothesis: name, Evaluated: true}
	html, ok := innerHTML(sel)
	if !ok {
		return p
	}
	p.Present = true
	p.HTML = html
	p.Text = strings.TrimSpace(sel.Text())
	return p
}

// innerHTML returns the inner markup of the first element in sel and whether
// sel matched anything. An empty selection has no markup, which is distinct
// from a matched element whose markup is the empty string.
func innerHTML(sel *goquery.Selection) (string, bool) {
	if sel.Length() == 0 {
		return "", false
	}
	html, err := sel.Html()
	if err != nil {
		return "", true
	}
	return html, true
}
