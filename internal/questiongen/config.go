package questiongen

// Config controls the generation pipeline.
type Config struct {
	// TargetCount is how many validated items a session needs.
	TargetCount int

	// MaxAttempts bounds the creator→solver→validator cycles.
	MaxAttempts int

	// RetrievalLimit is how many skill records each retrieval call asks for.
	RetrievalLimit int

	// MaxRetrievalCalls caps retrieval invocations per role call. The
	// source system left this unbounded; 3 keeps interpretation latency
	// predictable.
	MaxRetrievalCalls int

	// InterpretMaxTokens / CreateMaxTokens / SolveMaxTokens /
	// ReviewMaxTokens are per-role response budgets.
	InterpretMaxTokens int
	CreateMaxTokens    int
	SolveMaxTokens     int
	ReviewMaxTokens    int

	// Temperature applies to creator and solver calls. The validator
	// always runs at zero.
	Temperature float64
}

// DefaultConfig returns the standard pipeline settings.
func DefaultConfig() Config {
	return Config{
		TargetCount:        3,
		MaxAttempts:        3,
		RetrievalLimit:     5,
		MaxRetrievalCalls:  3,
		InterpretMaxTokens: 512,
		CreateMaxTokens:    1024,
		SolveMaxTokens:     1536,
		ReviewMaxTokens:    256,
		Temperature:        0.7,
	}
}
