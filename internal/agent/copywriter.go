package agent

import (
	"context"
	"fmt"
	"log/slog"
)

// StyleSpec is everything the copywriter needs to reproduce a voice: the
// stored style fields plus the original sample as a few-shot exemplar.
type StyleSpec struct {
	StyleName   string
	FeatureDesc string
	WordCount   int
	Exemplar    string
}

// GeneratedPost is the structured output of a synthesis call.
type GeneratedPost struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tags    string `json:"tags"`
}

// Copywriter synthesizes a new original post in a stored style.
type Copywriter struct {
	gen *Generator
}

func NewCopywriter(backend Backend, logger *slog.Logger) *Copywriter {
	gen := NewGenerator(
		CopywriterName,
		"compose_post",
		"viral short-form content rewriting expert",
		copywriterSystemPrompt,
		[]Field{
			{Name: "title", Desc: "post title"},
			{Name: "content", Desc: "post body"},
			{Name: "tags", Desc: "hashtag keywords, #-prefixed, space-separated"},
		},
		backend,
		logger,
	)
	return &Copywriter{gen: gen}
}

// SynthesisTask builds the composite prompt embedding style, exemplar and
// the caller's free-text requirements.
func SynthesisTask(spec StyleSpec, userTask string) string {
	return fmt.Sprintf(synthesisTaskTemplate, spec.StyleName, spec.FeatureDesc, spec.WordCount, spec.Exemplar, userTask)
}

func (c *Copywriter) Synthesize(ctx context.Context, spec StyleSpec, userTask string) (*GeneratedPost, error) {
	fields, err := c.gen.Invoke(ctx, SynthesisTask(spec, userTask))
	if err != nil {
		return nil, err
	}
	return &GeneratedPost{
		Title:   fields["title"],
		Content: fields["content"],
		Tags:    fields["tags"],
	}, nil
}
