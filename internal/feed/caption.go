package feed

import "regexp"

// CaptionPreviewLimit is the character budget before a caption gets the
// truncate-and-"expand" affordance.
const CaptionPreviewLimit = 50

var urlPattern = regexp.MustCompile(`https?://\S+`)

// Segment is one span of caption or description text. Link spans are
// rendered clickable by the presentation layer; embedded URLs are never
// parsed into structured link data beyond this split.
type Segment struct {
	Text string `json:"text"`
	Link bool   `json:"link"`
}

// SplitLinks splits free text into plain and link spans, preserving
// order and content.
func SplitLinks(text string) []Segment {
	if text == "" {
		return nil
	}
	var segments []Segment
	last := 0
	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Text: text[last:loc[0]]})
		}
		segments = append(segments, Segment{Text: text[loc[0]:loc[1]], Link: true})
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

// TruncateCaption cuts text to the limit and reports whether anything
// was cut, so the caller knows to offer the expand affordance.
func TruncateCaption(text string, limit int) (string, bool) {
	runes := []rune(text)
	if len(runes) <= limit {
		return text, false
	}
	return string(runes[:limit]) + "...", true
}
