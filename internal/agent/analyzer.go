package agent

import (
	"context"
	"fmt"
	"log/slog"
)

// StyleFields is the structured output of a style analysis.
type StyleFields struct {
	StyleName   string `json:"style_name"`
	FeatureDesc string `json:"feature_desc"`
	Category    string `json:"category"`
}

// StyleAnalyzer extracts a style fingerprint from one post. It has no
// persistence side effects; writing the result is the orchestrator's job.
type StyleAnalyzer struct {
	gen *Generator
}

func NewStyleAnalyzer(backend Backend, logger *slog.Logger) *StyleAnalyzer {
	gen := NewGenerator(
		AnalyzerName,
		"analyze_style",
		"writing-style analysis expert",
		analyzerSystemPrompt,
		[]Field{
			{Name: "style_name", Desc: "short name for the style"},
			{Name: "feature_desc", Desc: "one sentence describing the post's distinguishing voice and structure"},
			{Name: "category", Desc: "recommended classification tags, hyphen-separated"},
		},
		backend,
		logger,
	)
	return &StyleAnalyzer{gen: gen}
}

// AnalysisTask composes the fixed two-section task sent to the model.
func AnalysisTask(title, body string) string {
	return fmt.Sprintf(analysisTaskTemplate, title, body)
}

func (a *StyleAnalyzer) ExtractStyle(ctx context.Context, title, body string) (*StyleFields, error) {
	fields, err := a.gen.Invoke(ctx, AnalysisTask(title, body))
	if err != nil {
		return nil, err
	}
	return &StyleFields{
		StyleName:   fields["style_name"],
		FeatureDesc: fields["feature_desc"],
		Category:    fields["category"],
	}, nil
}
