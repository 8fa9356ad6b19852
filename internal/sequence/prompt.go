package sequence

import (
	"fmt"
	"strings"

	"github.com/REDDITARUN/helix/internal/domain"
)

// BuildGenerationPrompt embeds the five gathered requirements into a
// deterministic prompt that requests exactly 4 parts as a JSON object.
func BuildGenerationPrompt(gctx domain.GenerationContext) string {
	tone := gctx.Tone
	if tone == "" {
		tone = "professional"
	}

	return strings.TrimSpace(fmt.Sprintf(`Based on the following recruitment requirements, generate exactly 4 new parts of an outreach message suitable for an outreach template.

Requirements:
- Target Role: %s
- Company Context: %s
- Key Selling Points: %s
- Ideal Candidate Persona: %s
- Desired Tone: %s

Output MUST be a valid JSON object containing ONLY a single key "sequences", which is an array of 4 strings. Each string should be a part of the message sequence. DO NOT include any other text or explanations before or after the JSON object.

Example JSON Output Structure:
`+"```json"+`
{
  "sequences": [ /* 4 sequence strings here */ ]
}
`+"```"+`
Generate the JSON output now:`,
		orNA(gctx.TargetRole),
		orNA(gctx.CompanyContext),
		strings.Join(gctx.KeySellingPoints, ", "),
		orNA(gctx.CandidatePersona),
		tone,
	))
}

// BuildModificationPrompt embeds the instruction and all four prior parts.
// The model re-emits the complete replacement set; partial patching is not
// supported.
func BuildModificationPrompt(instruction string, previous []string) string {
	var numbered strings.Builder
	for i, content := range previous {
		if i > 0 {
			numbered.WriteString("\n")
		}
		numbered.WriteString(fmt.Sprintf("%d. %s", i+1, content))
	}

	return strings.TrimSpace(fmt.Sprintf(`You are tasked with modifying a set of 4 previously generated outreach message parts based on a specific instruction.

Modification Instruction:
%s

Previous Message Parts:
%s

Your goal is to apply the modification instruction to the previous message parts and output the complete, updated set of 4 message parts.

Output MUST be a valid JSON object containing ONLY a single key "sequences", which is an array of the 4 modified strings. Each string should be a part of the message sequence. DO NOT include any other text or explanations before or after the JSON object.

Example JSON Output Structure:
`+"```json"+`
{
  "sequences": [
    "MODIFIED Sequence 1 text here...",
    "MODIFIED Sequence 2 text here...",
    "MODIFIED Sequence 3 text here...",
    "MODIFIED Sequence 4 text here..."
  ]
}
`+"```"+`

Generate the JSON output containing the 4 modified sequences now:`,
		instruction, numbered.String()))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
