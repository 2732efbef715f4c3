package faq

// Config holds runtime knobs for the FAQ service.
type Config struct {
	// Prompt replaces the built-in base instructions when set.
	Prompt string
	// MinItems is the minimum number of valid questions a generated FAQ needs.
	MinItems int
	// MaxContentTokens caps the post body placed in the prompt. Zero disables the cap.
	MaxContentTokens int
	// BatchRatePerMinute paces provider calls during batch analysis. Zero disables pacing.
	BatchRatePerMinute float64
}

const defaultMinItems = 2

func (c Config) minItems() int {
	if c.MinItems <= 0 {
		return defaultMinItems
	}
	return c.MinItems
}
