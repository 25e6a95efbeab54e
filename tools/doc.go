// Package tools defines the tool contracts declared to the model.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - generate_wikipedia_reading_list: resolve article titles and append
//     them to the reading file under a topic heading.
package tools
