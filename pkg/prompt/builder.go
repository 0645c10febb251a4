package prompt

import (
	"fmt"
	"strings"

	"ai-studymate-be/internal/constant"
	"ai-studymate-be/pkg/docstore"
	"ai-studymate-be/pkg/llm"
)

// Builder assembles the ordered message sequence for an answer request: one
// fixed system instruction, the session's recent context, then exactly one
// user message. The user message takes one of three distinct forms depending
// on whether passages were retrieved, whether documents were bound at all,
// or neither — the three cases are deliberately separate prompts.
type Builder struct {
	question string
	history  []llm.Message
	passages []docstore.SearchResult
	boundIDs []string
}

// NewBuilder creates a builder for one request. history may be nil when the
// request carries no session; passages and boundIDs may be nil for
// document-free queries.
func NewBuilder(question string, history []llm.Message, passages []docstore.SearchResult, boundIDs []string) *Builder {
	return &Builder{
		question: question,
		history:  history,
		passages: passages,
		boundIDs: boundIDs,
	}
}

// Build produces the full message list, oldest context first.
func (b *Builder) Build() []llm.Message {
	messages := make([]llm.Message, 0, len(b.history)+2)

	messages = append(messages, llm.Message{
		Role:    constant.MessageRoleSystem,
		Content: constant.AssistantSystemPromptV1,
	})
	messages = append(messages, b.history...)
	messages = append(messages, llm.Message{
		Role:    constant.MessageRoleUser,
		Content: b.userMessage(),
	})

	return messages
}

func (b *Builder) userMessage() string {
	switch {
	case len(b.passages) > 0:
		return b.groundedQuestion()
	case len(b.boundIDs) > 0:
		return b.noMatchQuestion()
	default:
		return b.unboundQuestion()
	}
}

// groundedQuestion embeds each retrieved passage labeled by 1-based position
// and source filename, followed by the question.
func (b *Builder) groundedQuestion() string {
	var sb strings.Builder

	sb.WriteString("Please answer my question based on the following document content:\n\n")
	sb.WriteString("=== Relevant document content ===\n")
	for i, passage := range b.passages {
		source := passage.Chunk.SourceName
		if source == "" {
			source = fmt.Sprintf("document %d", i+1)
		}
		sb.WriteString(fmt.Sprintf("[Document %d: %s]\n%s", i+1, source, passage.Chunk.Content))
		if i < len(b.passages)-1 {
			sb.WriteString("\n\n")
		}
	}
	sb.WriteString("\n\n=== My question ===\n")
	sb.WriteString(b.question)
	sb.WriteString("\n\nAnswer from the document content above. If it contains relevant information, explain in detail; if not, say so and give general guidance.")

	return sb.String()
}

// noMatchQuestion covers the case where documents were bound but retrieval
// found nothing relevant in them.
func (b *Builder) noMatchQuestion() string {
	var sb strings.Builder

	sb.WriteString("My question is: ")
	sb.WriteString(b.question)
	sb.WriteString("\n\nNote: no relevant content was found in the ")
	sb.WriteString(fmt.Sprintf("%d", len(b.boundIDs)))
	sb.WriteString(" bound document(s). Answer from your own knowledge, or suggest checking whether the documents actually cover this topic.")

	return sb.String()
}

// unboundQuestion covers the document-free mode where the user bound no
// documents at all.
func (b *Builder) unboundQuestion() string {
	var sb strings.Builder

	sb.WriteString("My question is: ")
	sb.WriteString(b.question)
	sb.WriteString("\n\nNote: this is a pure model answer with no documents bound. Answer from your training knowledge.")

	return sb.String()
}
