package sequence

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/REDDITARUN/helix/internal/domain"
	"github.com/rs/zerolog/log"
)

// sequencePayload is the structure the generation prompts demand
type sequencePayload struct {
	Sequences []any `json:"sequences"`
}

// ParseSequences decodes a raw model reply into exactly four non-empty
// strings. The cardinality gate runs on the raw decoded list, before
// per-item filtering: a 5-element list with a blank entry is rejected for
// count, never repaired. Items that decode as empty or non-string are
// skipped with a warning; since that leaves fewer than four valid items,
// the parse then fails as malformed. No count is ever truncated or padded
// because any correction would silently fabricate or discard
// recruiter-facing content.
func ParseSequences(raw string) ([]string, error) {
	stripped := StripCodeFence(raw)

	var payload sequencePayload
	if err := json.Unmarshal([]byte(stripped), &payload); err != nil {
		log.Warn().Err(err).Msg("JSON decode failed for sequence response")
		return nil, &domain.MalformedResponseError{
			Reason: fmt.Sprintf("failed to decode JSON: %v", err),
			Raw:    raw,
		}
	}

	if len(payload.Sequences) != domain.SequenceCount {
		return nil, &domain.MalformedResponseError{
			Reason: fmt.Sprintf("expected %d sequences in JSON list, found %d", domain.SequenceCount, len(payload.Sequences)),
			Raw:    raw,
		}
	}

	contents := make([]string, 0, domain.SequenceCount)
	for i, item := range payload.Sequences {
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			log.Warn().Int("index", i).Msg("Skipping invalid sequence item in model response")
			continue
		}
		contents = append(contents, s)
	}

	if len(contents) != domain.SequenceCount {
		return nil, &domain.MalformedResponseError{
			Reason: fmt.Sprintf("only %d of %d sequence items were valid strings", len(contents), domain.SequenceCount),
			Raw:    raw,
		}
	}

	return contents, nil
}

// StripCodeFence removes an enclosing ```json fence if present
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(s[len("```json"):])
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(s[len("```"):])
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(s[:len(s)-len("```")])
	}
	return s
}
