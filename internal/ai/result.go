package ai

// Result is the {success, message} envelope returned by every AI-backed operation.
// On failure Message is a human-readable diagnostic; on success it is the generated text.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Succeeded wraps generated text.
func Succeeded(text string) Result {
	return Result{Success: true, Message: text}
}

// Failed wraps a diagnostic.
func Failed(message string) Result {
	return Result{Success: false, Message: message}
}
