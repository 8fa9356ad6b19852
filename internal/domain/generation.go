package domain

// GenerationContext carries the five requirements gathered in conversation
// before a sequence can be generated, plus optional enhancement context.
// key_selling_points is semantically expected to hold 3 entries but the
// length is not enforced here; the model is instructed to collect 3.
type GenerationContext struct {
	TargetRole         string   `json:"target_role" mapstructure:"target_role" validate:"required"`
	CompanyContext     string   `json:"company_context" mapstructure:"company_context" validate:"required"`
	KeySellingPoints   []string `json:"key_selling_points" mapstructure:"key_selling_points" validate:"required,min=1"`
	CandidatePersona   string   `json:"candidate_persona" mapstructure:"candidate_persona" validate:"required"`
	Tone               string   `json:"tone" mapstructure:"tone" validate:"required"`
	EnhancementContext string   `json:"enhancement_context,omitempty" mapstructure:"enhancement_context"`
}

// MissingFields lists required fields the upstream model failed to supply.
// A non-empty result is a contract violation by the model; the payload is
// still surfaced so the caller sees what was available.
func (c GenerationContext) MissingFields() []string {
	var missing []string
	if c.TargetRole == "" {
		missing = append(missing, "target_role")
	}
	if c.CompanyContext == "" {
		missing = append(missing, "company_context")
	}
	if len(c.KeySellingPoints) == 0 {
		missing = append(missing, "key_selling_points")
	}
	if c.CandidatePersona == "" {
		missing = append(missing, "candidate_persona")
	}
	if c.Tone == "" {
		missing = append(missing, "tone")
	}
	return missing
}
