package metrics

import (
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
)

// blockOverhead is added per content block for minimal formatting.
const blockOverhead = 4

// EstimateTokens is a deterministic input-size estimate for a prompt: runes of
// the system text and of every text block, plus a fixed overhead per block.
// Non-text blocks count overhead only. It is logged beside the usage the API
// reports, never used to shape requests.
func EstimateTokens(system string, msgs []anthropic.MessageParam) int {
	total := 0
	if system != "" {
		total += utf8.RuneCountInString(system) + blockOverhead
	}
	for _, m := range msgs {
		for _, blk := range m.Content {
			total += estimateBlock(blk)
		}
	}
	return total
}

func estimateBlock(blk anthropic.ContentBlockParamUnion) int {
	if tb := blk.OfText; tb != nil {
		return utf8.RuneCountInString(tb.Text) + blockOverhead
	}
	if tr := blk.OfToolResult; tr != nil {
		n := 0
		for _, c := range tr.Content {
			if c.OfText != nil {
				n += utf8.RuneCountInString(c.OfText.Text)
			}
		}
		return n + blockOverhead
	}
	return blockOverhead
}
