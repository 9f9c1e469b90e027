package carlist

import "strconv"

// Ad represents an advertisement container found on a search-results page.
type Ad struct {
	// Page is the 1-based page number the ad was found on.
	Page int `json:"page"`

	// Position is the 1-based rank of the container on its page, in document order.
	Position int `json:"position"`

	// Content is the raw inner markup of the container. It is not parsed further.
	Content string `json:"content"`
}

// AdColumns are the export column names, in field declaration order.
var AdColumns = []string{"page", "position", "content"}

// Row returns the ad as a table row matching AdColumns.
func (a *Ad) Row() []string {
	return []string{
		strconv.Itoa(a.Page),
		strconv.Itoa(a.Position),
		a.Content,
	}
}

// AdRule matches elements whose attribute contains a substring.
// An empty Tag matches any element.
type AdRule struct {
	Tag       string `json:"tag"`
	Attr      string `json:"attr"`
	Substring string `json:"substring"`
}

// Validate returns an error if the rule cannot match anything meaningful.
func (r AdRule) Validate() error {
	if r.Attr == "" {
		return Errorf(EINVALID, "ad rule attribute required")
	}
	if r.Substring == "" {
		return Errorf(EINVALID, "ad rule substring required")
	}
	return nil
}

// DefaultAdRules returns the container signatures used to spot ads:
// ad-like ids and class names on divs, and ad-network iframes.
func DefaultAdRules() []AdRule {
	return []AdRule{
		{Tag: "div", Attr: "id", Substring: "ads"},
		{Tag: "div", Attr: "class", Substring: "ads"},
		{Tag: "div", Attr: "class", Substring: "ad"},
		{Tag: "div", Attr: "class", Substring: "ad-container"},
		{Tag: "iframe", Attr: "src", Substring: "googleads"},
	}
}

// AdDetector finds advertisement containers in a page of markup.
type AdDetector interface {
	// Detect returns one Ad per matching container, numbered from 1 in
	// document order and tagged with the given page number.
	Detect(html string, page int) ([]*Ad, error)
}
