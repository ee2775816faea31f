package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type analyzeRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (m analyzeRequest) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required, validation.Length(1, 512)),
		validation.Field(&m.Content, validation.Required),
	)
}

type analyzeURLsRequest struct {
	URLs []string `json:"urls"`
}

func (m analyzeURLsRequest) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.URLs, validation.Required, validation.Length(1, 50)),
	)
}

type rewriteRequest struct {
	StyleID   int64  `json:"style_id"`
	UserTask  string `json:"user_task"`
	WordCount int    `json:"word_count"`
}

func (m rewriteRequest) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.StyleID, validation.Required, validation.Min(int64(1))),
		validation.Field(&m.UserTask, validation.Required),
		validation.Field(&m.WordCount, validation.Min(0)),
	)
}

type updateStyleRequest struct {
	StyleName   *string `json:"style_name"`
	FeatureDesc *string `json:"feature_desc"`
	Category    *string `json:"category"`
	SampleTitle *string `json:"sample_title"`
}

func (m updateStyleRequest) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.StyleName, validation.NilOrNotEmpty),
		validation.Field(&m.FeatureDesc, validation.NilOrNotEmpty),
		validation.Field(&m.Category, validation.NilOrNotEmpty),
	)
}

type createTopicRequest struct {
	Name        string `json:"name"`
	Level       int    `json:"level"`
	ParentID    int64  `json:"parent_id"`
	Description string `json:"description"`
}

func (m createTopicRequest) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&m.Level, validation.Required, validation.Min(1), validation.Max(3)),
		validation.Field(&m.ParentID, validation.Min(int64(0))),
	)
}

type updateTopicRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (m updateTopicRequest) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name, validation.NilOrNotEmpty),
	)
}
