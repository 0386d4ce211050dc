package domain

// Invocation is one external tool run requested after generation.
type Invocation struct {
	// Name labels the invocation in logs and progress output.
	Name        string
	Command     []string
	WorkingDir  string
	Environment map[string]string
}
