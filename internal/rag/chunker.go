package rag

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// SplitText splits text into fixed-size windows with overlap between
// consecutive windows. An overlap configured at or above the window size is
// clamped to 10% of the window so the cursor always advances; if the
// overlap-adjusted step still would not move forward, the cursor jumps a
// full window instead. Windows that are empty after trimming are discarded.
func SplitText(text string, chunkSize, chunkOverlap int) []string {
	if text == "" {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 10
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + chunkSize
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])

		next := start + (chunkSize - chunkOverlap)
		if next <= start {
			log.Warn().Int("start", start).Msg("Text splitting would not advance, moving forward by full chunk size")
			start += chunkSize
		} else {
			start = next
		}
	}

	valid := chunks[:0]
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) != "" {
			valid = append(valid, chunk)
		}
	}
	return valid
}
