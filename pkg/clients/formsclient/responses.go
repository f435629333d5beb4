package formsclient

import (
	"fmt"
	"sort"
	"strings"

	"google.golang.org/api/forms/v1"
)

// TimestampHeader is the first column of a response table, as in a linked responses sheet
const TimestampHeader = "Timestamp"

// GetResponseTable reads every response of the signup form and lays it out
// like the form's linked responses tab: a header row of question titles
// followed by one row per response, oldest first.
func (c *Client) GetResponseTable(formID string) ([][]string, error) {
	form, err := c.service.Forms.Get(formID).Context(c.ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	var responses []*forms.FormResponse
	pageToken := ""
	for {
		call := c.service.Forms.Responses.List(formID).Context(c.ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		page, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list form responses: %w", err)
		}

		responses = append(responses, page.Responses...)
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	return BuildResponseTable(form, responses), nil
}

type question struct {
	id    string
	title string
}

// questions lists the form's questions in display order. Rows of a grid
// question become "<grid title> [<row title>]" like the linked sheet.
func questions(form *forms.Form) []question {
	var result []question
	for _, item := range form.Items {
		switch {
		case item.QuestionItem != nil && item.QuestionItem.Question != nil:
			result = append(result, question{id: item.QuestionItem.Question.QuestionId, title: item.Title})
		case item.QuestionGroupItem != nil:
			for _, q := range item.QuestionGroupItem.Questions {
				title := item.Title
				if q.RowQuestion != nil {
					title = fmt.Sprintf("%s [%s]", item.Title, q.RowQuestion.Title)
				}
				result = append(result, question{id: q.QuestionId, title: title})
			}
		}
	}
	return result
}

// BuildResponseTable converts API responses into a header row plus one row per response
func BuildResponseTable(form *forms.Form, responses []*forms.FormResponse) [][]string {
	qs := questions(form)

	header := make([]string, 0, len(qs)+1)
	header = append(header, TimestampHeader)
	for _, q := range qs {
		header = append(header, q.title)
	}

	sorted := make([]*forms.FormResponse, len(responses))
	copy(sorted, responses)
	// RFC3339 timestamps from the API sort lexically
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreateTime < sorted[j].CreateTime
	})

	table := [][]string{header}
	for _, response := range sorted {
		row := make([]string, 0, len(header))
		row = append(row, response.LastSubmittedTime)
		for _, q := range qs {
			row = append(row, answerText(response.Answers[q.id]))
		}
		table = append(table, row)
	}
	return table
}

// answerText joins the text answers of one question with ", "
func answerText(answer forms.Answer) string {
	if answer.TextAnswers == nil {
		return ""
	}
	values := make([]string, 0, len(answer.TextAnswers.Answers))
	for _, text := range answer.TextAnswers.Answers {
		values = append(values, text.Value)
	}
	return strings.Join(values, ", ")
}
