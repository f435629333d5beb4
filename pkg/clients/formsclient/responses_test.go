package formsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/forms/v1"
)

func textAnswer(values ...string) forms.Answer {
	answers := make([]*forms.TextAnswer, len(values))
	for i, v := range values {
		answers[i] = &forms.TextAnswer{Value: v}
	}
	return forms.Answer{TextAnswers: &forms.TextAnswers{Answers: answers}}
}

func TestBuildResponseTable(t *testing.T) {
	form := &forms.Form{Items: []*forms.Item{
		{Title: "In-game name", QuestionItem: &forms.QuestionItem{Question: &forms.Question{QuestionId: "q1"}}},
		{Title: "Section break"},
		{Title: "Availability", QuestionItem: &forms.QuestionItem{Question: &forms.Question{QuestionId: "q2"}}},
		{Title: "Troops", QuestionGroupItem: &forms.QuestionGroupItem{Questions: []*forms.Question{
			{QuestionId: "q3", RowQuestion: &forms.RowQuestion{Title: "Infantry"}},
			{QuestionId: "q4", RowQuestion: &forms.RowQuestion{Title: "Lancer"}},
		}}},
	}}

	responses := []*forms.FormResponse{
		{
			CreateTime:        "2026-10-02T10:00:00Z",
			LastSubmittedTime: "2026-10-02T10:05:00Z",
			Answers: map[string]forms.Answer{
				"q1": textAnswer("Bob"),
				"q2": textAnswer("14-15 UTC"),
			},
		},
		{
			CreateTime:        "2026-10-01T09:00:00Z",
			LastSubmittedTime: "2026-10-01T09:00:00Z",
			Answers: map[string]forms.Answer{
				"q1": textAnswer("Alice"),
				"q2": textAnswer("9-11 UTC"),
				"q3": textAnswer("T10"),
				"q4": textAnswer("T9", "T8"),
			},
		},
	}

	table := BuildResponseTable(form, responses)

	assert.Equal(t, [][]string{
		{"Timestamp", "In-game name", "Availability", "Troops [Infantry]", "Troops [Lancer]"},
		{"2026-10-01T09:00:00Z", "Alice", "9-11 UTC", "T10", "T9, T8"},
		{"2026-10-02T10:05:00Z", "Bob", "14-15 UTC", "", ""},
	}, table)
}

func TestBuildResponseTable_NoResponses(t *testing.T) {
	form := &forms.Form{Items: []*forms.Item{
		{Title: "In-game name", QuestionItem: &forms.QuestionItem{Question: &forms.Question{QuestionId: "q1"}}},
	}}

	assert.Equal(t, [][]string{{"Timestamp", "In-game name"}}, BuildResponseTable(form, nil))
}
