package bus

import (
	"encoding/json"
	"testing"
)

func TestRewriteCompletedParsing(t *testing.T) {
	raw := `{
		"event_id": "0f9b2c41-9a1e-4e5b-8a0a-2f6f0c9d6b11",
		"style_id": 7,
		"style_name": "中医养生风",
		"user_task": "突出课程的专业性",
		"word_count": 140,
		"title": "new title",
		"content": "new content",
		"tags": "#中医 #养生",
		"execution_time": 3.2
	}`

	var evt RewriteCompleted
	if err := json.Unmarshal([]byte(raw), &evt); err != nil {
		t.Fatalf("failed to parse RewriteCompleted: %v", err)
	}

	if evt.EventID != "0f9b2c41-9a1e-4e5b-8a0a-2f6f0c9d6b11" {
		t.Errorf("unexpected event_id %q", evt.EventID)
	}
	if evt.StyleID != 7 {
		t.Errorf("expected style_id 7, got %d", evt.StyleID)
	}
	if evt.StyleName != "中医养生风" {
		t.Errorf("unexpected style_name %q", evt.StyleName)
	}
	if evt.WordCount != 140 {
		t.Errorf("expected word_count 140, got %d", evt.WordCount)
	}
	if evt.ExecutionTime != 3.2 {
		t.Errorf("expected execution_time 3.2, got %f", evt.ExecutionTime)
	}
}
