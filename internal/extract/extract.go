// Package extract reads activity entries out of feed page HTML and derives
// the signals the condition engine works on.
package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bnema/activity-feed-filter/internal/models"
)

// Feed page selectors
const (
	SelectorEntry    = "div.activity-entry"
	SelectorLoadMore = "div.load-more"
	SelectorReplies  = "div.action.replies"
	SelectorLikes    = "div.action.likes"
	SelectorCount    = "span.count"
	SelectorImage    = "img"
	SelectorVideo    = "video"
	SelectorYouTube  = "span.youtube"
	ClassText        = "activity-text"
	ClassMessage     = "activity-message"
	classEntry       = "activity-entry"
	classPrefix      = "activity-"
)

// Parser extracts feed entries from HTML
type Parser struct {
	stats Stats
}

// Stats tracks extraction statistics
type Stats struct {
	Total    int
	Text     int
	Images   int
	Gifs     int
	Videos   int
	LoadMore bool // page carries a "Load More" button
}

// New creates a new parser
func New() *Parser {
	return &Parser{}
}

// Stats returns extraction statistics
func (p *Parser) Stats() Stats {
	return p.stats
}

// Parse reads a feed page and returns its entries in document order
func (p *Parser) Parse(r io.Reader) ([]models.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	p.stats.LoadMore = doc.Find(SelectorLoadMore).Length() > 0

	var entries []models.Entry
	doc.Find(SelectorEntry).Each(func(_ int, sel *goquery.Selection) {
		entries = append(entries, p.entry(len(entries), sel))
	})

	return entries, nil
}

// ParseEntry reads a fragment holding a single activity. When the fragment
// has no activity-entry element its first body element is used.
func (p *Parser) ParseEntry(r io.Reader) (models.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return models.Entry{}, fmt.Errorf("parse html: %w", err)
	}

	sel := doc.Find(SelectorEntry).First()
	if sel.Length() == 0 {
		sel = doc.Find("body").Children().First()
	}
	if sel.Length() == 0 {
		return models.Entry{}, fmt.Errorf("no activity found")
	}

	return p.entry(0, sel), nil
}

func (p *Parser) entry(index int, sel *goquery.Selection) models.Entry {
	signals := SignalsOf(sel)

	p.stats.Total++
	switch {
	case signals.IsTextOnly:
		p.stats.Text++
	case signals.IsGif:
		p.stats.Gifs++
	case signals.HasImage:
		p.stats.Images++
	}
	if signals.HasVideo {
		p.stats.Videos++
	}

	return models.Entry{
		Index:   index,
		Kind:    kindOf(sel),
		Signals: signals,
	}
}

// SignalsOf derives the signals of one activity node. Missing markup yields
// the negative signal.
func SignalsOf(sel *goquery.Selection) models.Signals {
	s := models.Signals{
		HasComments: hasCount(sel, SelectorReplies),
		HasLikes:    hasCount(sel, SelectorLikes),
		HasVideo:    sel.Find(SelectorVideo).Length() > 0 || sel.Find(SelectorYouTube).Length() > 0,
		Text:        sel.Text(),
	}

	if img := sel.Find(SelectorImage).First(); img.Length() > 0 {
		s.HasImage = true
		src, _ := img.Attr("src")
		s.IsGif = isGif(src)
	}

	textKind := sel.HasClass(ClassText) || sel.HasClass(ClassMessage)
	s.IsTextOnly = textKind && !s.HasImage && !s.HasVideo

	return s
}

func hasCount(sel *goquery.Selection, action string) bool {
	return sel.Find(action).Find(SelectorCount).Length() > 0
}

// isGif checks the image source path, ignoring query and fragment
func isGif(src string) bool {
	src = strings.TrimSpace(src)
	if src == "" {
		return false
	}
	if u, err := url.Parse(src); err == nil && u.Path != "" {
		src = u.Path
	}
	return strings.HasSuffix(strings.ToLower(src), ".gif")
}

// kindOf returns the activity type from the node's activity-* class
func kindOf(sel *goquery.Selection) string {
	class, _ := sel.Attr("class")
	for _, c := range strings.Fields(class) {
		if c != classEntry && strings.HasPrefix(c, classPrefix) {
			return strings.TrimPrefix(c, classPrefix)
		}
	}
	return ""
}
