package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/petasbytes/wiki-research/readinglist"
)

// ReadingListToolName is the name the model must invoke.
const ReadingListToolName = "generate_wikipedia_reading_list"

type ReadingListInput struct {
	ResearchTopic string   `json:"research_topic" jsonschema_description:"The given wikipedia topic to research"`
	ArticleTitles []string `json:"article_titles" jsonschema_description:"A list of generated article titles"`
}

var ReadingListInputSchema = GenerateSchema[ReadingListInput]()

// ReadingListGenerator is satisfied by *readinglist.Builder.
type ReadingListGenerator interface {
	Generate(ctx context.Context, topic string, titles []string) (readinglist.Report, error)
}

// ReadingListDefinition binds the reading-list tool to g.
func ReadingListDefinition(g ReadingListGenerator) ToolDefinition {
	return ToolDefinition{
		Name:        ReadingListToolName,
		Description: "Generates a list of appropriate wikipedia articles",
		InputSchema: ReadingListInputSchema,
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			return generateReadingList(ctx, g, input)
		},
	}
}

// generateReadingList decodes the invocation input and runs g. The result is
// the JSON-encoded readinglist.Report.
func generateReadingList(ctx context.Context, g ReadingListGenerator, input json.RawMessage) (string, error) {
	var in ReadingListInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	rep, err := g.Generate(ctx, in.ResearchTopic, in.ArticleTitles)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(rep)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
