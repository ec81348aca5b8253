// Package llm centralizes model configuration and the provider client
// used for document analysis.
package llm

// ModelTier names a capability level rather than a concrete model, so
// callers pick "how much reasoning" and the config maps it to a model.
type ModelTier string

const (
	// TierLite handles cheap tasks: classification, section extraction.
	TierLite ModelTier = "lite"
	// TierStandard handles structured output: red flags, completeness.
	TierStandard ModelTier = "standard"
	// TierAdvanced handles heavier reasoning: contextual validation
	// against retrieved regulations, suggestion drafting.
	TierAdvanced ModelTier = "advanced"
)

// Provider names an LLM vendor.
type Provider string

const (
	// ProviderGemini is the Google Gemini provider.
	ProviderGemini Provider = "gemini"
)

// Config maps model tiers to concrete provider models.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini).
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini tier mapping.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel resolves a tier to a model name, falling back to standard
// then lite when the requested tier is unmapped. Returns "" when no
// tier is configured at all.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with one tier remapped.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string, len(c.Models)+1),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
