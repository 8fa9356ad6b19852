package chat

import (
	"fmt"
	"strings"

	"github.com/REDDITARUN/helix/internal/domain"
	"github.com/REDDITARUN/helix/internal/llm"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"
)

// OutcomeKind classifies a model reply into exactly one branch
type OutcomeKind string

const (
	// OutcomeText is a free-form reply with no structured action
	OutcomeText OutcomeKind = "text"
	// OutcomeGenerate requests initial sequence generation
	OutcomeGenerate OutcomeKind = "generate"
	// OutcomeModify requests modification of the existing sequence set
	OutcomeModify OutcomeKind = "modify"
	// OutcomeDropped is a structured action downgraded to a diagnostic
	// turn: unknown tool name, or modify without its instruction. The
	// original payload is discarded.
	OutcomeDropped OutcomeKind = "dropped"
)

// Outcome is the router's closed result variant. Text always carries
// something to persist and display, including on the error branches.
type Outcome struct {
	Kind        OutcomeKind
	Text        string
	Generate    *domain.GenerationContext
	Instruction string
}

// Diagnostic turns recorded in place of a reply
const (
	noticeGenerate       = "[System: Function call generated. Preparing to generate sequences...]"
	noticeModify         = "[System: Modification request received. Preparing to modify sequences...]"
	noticeBadModify      = "[System Error: Modification function called incorrectly by AI. Missing instruction.]"
	noticeNoContent      = "[System: No valid response content received]"
	unknownCallNoticeFmt = "[System: Received unexpected function call '%s']"
)

// Route classifies a raw model reply. It never returns an error: a chat
// turn must degrade to a visible, recorded message when the model says
// something unexpected, not crash the turn.
func Route(res *llm.Result) Outcome {
	if res == nil {
		return Outcome{Kind: OutcomeText, Text: noticeNoContent}
	}

	if res.Call != nil {
		switch res.Call.Name {
		case llm.ToolGenerateSequences:
			return routeGenerate(res.Call)
		case llm.ToolModifySequences:
			return routeModify(res.Call)
		default:
			// Silently dropping unknown actions mirrors upstream model
			// resilience; Warn level so production can alarm on it.
			log.Warn().Str("tool", res.Call.Name).Msg("Unexpected function call received, dropping")
			return Outcome{
				Kind: OutcomeDropped,
				Text: fmt.Sprintf(unknownCallNoticeFmt, res.Call.Name),
			}
		}
	}

	if res.Text != "" {
		return Outcome{Kind: OutcomeText, Text: res.Text}
	}

	log.Warn().Msg("No function call and no text content found in model response")
	return Outcome{Kind: OutcomeText, Text: noticeNoContent}
}

func routeGenerate(call *llm.ToolCall) Outcome {
	var gctx domain.GenerationContext
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &gctx,
		WeaklyTypedInput: true,
	})
	if err == nil {
		err = decoder.Decode(call.Args)
	}
	if err != nil {
		// Keep whatever decoded; missing fields are the model's contract
		// violation and are surfaced, not dropped.
		log.Warn().Err(err).Msg("Failed to fully decode generate arguments")
	}
	if missing := gctx.MissingFields(); len(missing) > 0 {
		log.Warn().Strs("missing", missing).Msg("Generate call missing required fields")
	}

	return Outcome{Kind: OutcomeGenerate, Text: noticeGenerate, Generate: &gctx}
}

func routeModify(call *llm.ToolCall) Outcome {
	instruction, _ := call.Args[llm.ArgModificationInstruction].(string)
	if strings.TrimSpace(instruction) == "" {
		log.Warn().Msg("modify_sequences called without required modification_instruction")
		return Outcome{Kind: OutcomeDropped, Text: noticeBadModify}
	}
	return Outcome{Kind: OutcomeModify, Text: noticeModify, Instruction: instruction}
}
