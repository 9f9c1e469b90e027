package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const dataIDAttr = "data-id"

// Parameter keys carried in the data-parameter attribute of a card's metadata slots.
const (
	ParamMileage     = "mileage"
	ParamEnginePower = "engine_power"
	ParamYear        = "year"
)

// titleLinks returns the heading links inside the card's own content section.
// Each step is a separate Find so every ancestor in the chain lies within the card.
func titleLinks(card *goquery.Selection) *goquery.Selection {
	return card.Find("section").Find("div").Find("h1").Find("a")
}

// ExtractTitle returns the trimmed text of the card's heading link.
func ExtractTitle(card *goquery.Selection) string {
	return strings.TrimSpace(titleLinks(card).Text())
}

// ExtractURL returns the link target of the card's heading link,
// or an empty string if the card has none.
func ExtractURL(card *goquery.Selection) string {
	href, _ := titleLinks(card).First().Attr("href")
	return href
}

// ExtractDataID returns the site-assigned identifier carried on the card itself.
func ExtractDataID(card *goquery.Selection) string {
	id, _ := card.Attr(dataIDAttr)
	return id
}

// ExtractParameter returns the trimmed text of the metadata slot tagged
// with the given parameter name. A missing slot yields an empty string.
func ExtractParameter(card *goquery.Selection, name string) string {
	return strings.TrimSpace(card.Find(`dd[data-parameter="` + name + `"]`).Text())
}

// ExtractMileage returns the card's mileage slot.
func ExtractMileage(card *goquery.Selection) string {
	return ExtractParameter(card, ParamMileage)
}

// ExtractEnginePower returns the card's engine power slot.
func ExtractEnginePower(card *goquery.Selection) string {
	return ExtractParameter(card, ParamEnginePower)
}

// ExtractYear returns the card's production year slot.
func ExtractYear(card *goquery.Selection) string {
	return ExtractParameter(card, ParamYear)
}

// IsSponsoredInsert reports whether the card embeds a secondary article
// holding an ordered list of links with text. Such cards are promotional
// modules rather than standalone listings.
func IsSponsoredInsert(card *goquery.Selection) bool {
	return card.Find("article").Find("ol").Find("a").Text() != ""
}
