// Package prompt assembles the instruction text sent to the LLM. Builders are
// pure template-assembly functions taking explicit parameters so they stay
// independently testable without the UI or network.
package prompt

import "strings"

// MedicalPreamble is the policy preamble prepended to every prompt. It pins
// the assistant's persona and the behavioral guidelines every reply must
// follow.
const MedicalPreamble = `You are MediAssist, a helpful and compassionate medical AI assistant. Your purpose is to provide
information about medical conditions, treatments, and general health advice.

Important guidelines:
1. Always clarify that you're an AI and not a doctor
2. Recommend consulting healthcare professionals for diagnosis and treatment
3. Provide factual, evidence-based information
4. Be empathetic and supportive in your tone
5. Never make definitive diagnoses
6. Emphasize the importance of seeking proper medical care
7. Use clear, understandable language without excessive medical jargon`

// searchSectionLabel names the search-results section of an augmented prompt.
// It appears whenever a search was run for the turn, regardless of outcome.
const searchSectionLabel = "Medical Search Results"

// Greeting is the static introductory assistant message shown at the start of
// every session. It exists only in display history and is never sent to the
// model.
const Greeting = "Hello! I'm MediAssist, your medical AI assistant. I can help answer your health questions and provide general medical information. How may I assist you today? Remember, I'm not a doctor, and my responses shouldn't replace professional medical advice."

// Build composes the plain prompt from the policy preamble and the user's
// query. Deterministic given its inputs.
func Build(preamble, userQuery string) string {
	var b strings.Builder

	writeHeader(&b, preamble, userQuery)
	b.WriteString("Please provide a helpful response based on your medical knowledge.\n")
	b.WriteString("Remember to follow the medical guidelines provided above.")

	return b.String()
}

// BuildWithSearch composes the search-augmented prompt. The search section is
// always present, labeled, and followed by citation instructions. The block
// may be empty (a search that found nothing) or a single error line (a search
// that failed); either way the model is told search was consulted.
func BuildWithSearch(preamble, userQuery, searchBlock string) string {
	var b strings.Builder

	writeHeader(&b, preamble, userQuery)
	b.WriteString("Here are relevant ")
	b.WriteString(searchSectionLabel)
	b.WriteString(" from the web:\n")
	b.WriteString(searchBlock)
	b.WriteString("\n\n")
	b.WriteString("Please provide a helpful response based on these search results and your knowledge.\n")
	b.WriteString("If the search results are relevant, incorporate that information.\n")
	b.WriteString("Always cite the sources if you use information from the search results.\n")
	b.WriteString("Remember to follow the medical guidelines provided above.")

	return b.String()
}

func writeHeader(b *strings.Builder, preamble, userQuery string) {
	b.WriteString(preamble)
	b.WriteString("\n\nThe user query is: ")
	b.WriteString(userQuery)
	b.WriteString("\n\n")
}
