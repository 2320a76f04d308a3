package questiongen

// Config controls a Generator.
type Config struct {
	// Validators run in order on each item; the first failure drops it.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxPriorQuestions caps the "already asked" list sent in the prompt.
	MaxPriorQuestions int
}

func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&ChoiceValidator{},
		},
		MaxTokens:         4096,
		Temperature:       0.7,
		MaxPriorQuestions: 40,
	}
}
