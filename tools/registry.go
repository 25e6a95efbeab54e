package tools

// Registry returns all tool definitions declared to the model.
func Registry(g ReadingListGenerator) []ToolDefinition {
	return []ToolDefinition{ReadingListDefinition(g)}
}
