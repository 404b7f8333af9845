package llm

// StreamChunk is a single unit of streamed LLM output.
type StreamChunk struct {
	// Role is set on the first chunk of a response (e.g., "assistant").
	Role string

	// Content is the text delta carried by this chunk.
	Content string

	// Finished is true on the final chunk of a successful stream.
	Finished bool

	// Error is set when the stream failed; no further chunks follow.
	Error error
}

// IsError reports whether the chunk carries a stream error.
func (c *StreamChunk) IsError() bool {
	return c.Error != nil
}
