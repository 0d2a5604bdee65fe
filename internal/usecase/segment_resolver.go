package usecase

import (
	"regexp"
	"strings"
)

// Characters trimmed from both ends of an inter-label value
const segmentTrimSet = " \t\n\r:;,-"

// Characters trimmed from every value before it is returned
const finalTrimSet = " \t\n\r,:;"

var whitespaceRunRegex = regexp.MustCompile(`\s+`)

// Segment is the raw text between one label and the next
type Segment struct {
	Match LabelMatch
	Raw   string
}

// NormalizeText joins fragment texts with single spaces and collapses whitespace runs
func NormalizeText(texts []string) string {
	joined := strings.Join(texts, " ")
	return strings.TrimSpace(whitespaceRunRegex.ReplaceAllString(joined, " "))
}

// ResolveSegments cuts text into one raw value per label match.
// Fields are assumed to be laid out as a flat sequence of label/value pairs.
func ResolveSegments(text string, matches []LabelMatch) []Segment {
	segments := make([]Segment, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1].Start
		}
		if end < m.End {
			continue
		}
		segments = append(segments, Segment{
			Match: m,
			Raw:   strings.Trim(text[m.End:end], segmentTrimSet),
		})
	}
	return segments
}
