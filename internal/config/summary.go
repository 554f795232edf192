package config

// SummaryConfig points at the LLM used for prose summaries.
type SummaryConfig struct {
	OllamaURL string
	Model     string
}

func loadSummary() SummaryConfig {
	return SummaryConfig{
		OllamaURL: envOrDefault(envOllamaURL, defaultOllamaURL),
		Model:     envOrDefault(envOllamaModel, defaultOllamaModel),
	}
}
