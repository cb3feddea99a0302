package brief

import (
	"regexp"
	"strings"
)

// Block is one label-bounded sub-block of a section.
type Block struct {
	Category string
	Text     string
}

// reUnknownLabel is an all-caps, multi-word "LABEL:" at line start.
var reUnknownLabel = regexp.MustCompile(`(?m)^[A-Z][A-Z0-9&/'\-]*(?: [A-Z0-9&/'\-]+)+ ?:`)

// SliceLabels cuts a section body into blocks bounded by consecutive label
// occurrences. A label found inside an earlier label's match (HOTEL SITE in
// EVENT/HOTEL SITE) belongs to the earlier one.
func SliceLabels(text string, labels []Label, trimUnknown bool) []Block {
	return sliceLabels(text, compileLabels(labels), trimUnknown)
}

func sliceLabels(text string, ms markerSet, trimUnknown bool) []Block {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var kept []occurrence
	for _, o := range ms.find(text) {
		if len(kept) > 0 && o.start < kept[len(kept)-1].end {
			continue
		}
		kept = append(kept, o)
	}
	blocks := make([]Block, 0, len(kept))
	for i, o := range kept {
		end := len(text)
		if i+1 < len(kept) {
			end = kept[i+1].start
		}
		body := text[o.end:end]
		if trimUnknown {
			body = cutAtUnknownLabel(body)
		}
		blocks = append(blocks, Block{Category: o.name, Text: body})
	}
	return blocks
}

// cutAtUnknownLabel trims a block at the first all-caps label line after its
// first line, so an unlisted label does not bleed into the previous block.
func cutAtUnknownLabel(body string) string {
	first := strings.IndexByte(body, '\n')
	if first < 0 {
		return body
	}
	rest := body[first+1:]
	for _, loc := range reUnknownLabel.FindAllStringIndex(rest, -1) {
		if reFieldLabel.MatchString(rest[loc[0]:loc[1]]) {
			continue
		}
		return body[:first+1+loc[0]]
	}
	return body
}
