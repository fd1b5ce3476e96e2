package config

// DefaultConfig returns the built-in configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			MaxPagesPerPart:     12,
			ConfidenceThreshold: 70,
		},
		Vision: VisionConfig{
			Enabled:    false,
			Model:      "gpt-4o-mini",
			APIKey:     "${OPENAI_API_KEY}",
			RateLimit:  2.0,
			MaxRetries: 3,
		},
		Splitter: SplitterConfig{
			OutputDir: "parts",
		},
	}
}
