package gemini

import (
	"github.com/REDDITARUN/helix/internal/llm"
	"github.com/google/generative-ai-go/genai"
)

// outreachTools declares the two actions the assistant may invoke:
// sequence generation (after all five requirements are gathered) and
// sequence modification (any change request once a set exists).
func outreachTools() []*genai.Tool {
	generate := &genai.FunctionDeclaration{
		Name:        llm.ToolGenerateSequences,
		Description: "Generates 4 parts of a single outreach message sequence based on the collected user requirements for recruitment.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"target_role": {
					Type:        genai.TypeString,
					Description: "The job title or role the user is recruiting for.",
				},
				"company_context": {
					Type:        genai.TypeString,
					Description: "Brief description of the company or team.",
				},
				"key_selling_points": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "List of key reasons why a candidate should be interested.",
				},
				"candidate_persona": {
					Type:        genai.TypeString,
					Description: "Description of the ideal candidate profile.",
				},
				"tone": {
					Type:        genai.TypeString,
					Description: "Desired tone of the messages (e.g., formal, casual, enthusiastic).",
				},
				"enhancement_context": {
					Type:        genai.TypeString,
					Description: "Optional. Extra context for the sequences (e.g., names from documents) or 'NONE FOR NOW'.",
				},
			},
			Required: []string{"target_role", "company_context", "key_selling_points", "candidate_persona", "tone"},
		},
	}

	modify := &genai.FunctionDeclaration{
		Name:        llm.ToolModifySequences,
		Description: "Modifies previously generated outreach sequences based ONLY on the user's specific instruction. Use this AFTER sequences have been generated and the user asks for changes.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				llm.ArgModificationInstruction: {
					Type:        genai.TypeString,
					Description: "The user's specific request for how to change the existing sequences (e.g., 'use the name Tarun instead of [Candidate Name]', 'make the tone professional').",
				},
			},
			Required: []string{llm.ArgModificationInstruction},
		},
	}

	return []*genai.Tool{
		{FunctionDeclarations: []*genai.FunctionDeclaration{generate}},
		{FunctionDeclarations: []*genai.FunctionDeclaration{modify}},
	}
}
