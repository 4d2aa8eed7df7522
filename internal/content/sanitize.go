package content

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/mind-engage/imuno/internal/bank"
)

// richText is shared; a bluemonday policy is safe for concurrent use once built.
var richText = newPolicy()

func newPolicy() *bluemonday.Policy {
	return bluemonday.UGCPolicy().
		AllowElements("img").
		AllowAttrs("src", "alt").OnElements("img").
		AllowElements("sub", "sup", "span").
		AllowAttrs("class").OnElements("span")
}

// SanitizeQuestion returns a copy of q with the clinical case, prompt,
// feedback and option texts cleaned for rendering as HTML. Ids, letters and
// the answer key are left as they are.
func SanitizeQuestion(q bank.Question) bank.Question {
	out := q
	out.Case = richText.Sanitize(q.Case)
	out.Prompt = richText.Sanitize(q.Prompt)
	out.Feedback = richText.Sanitize(q.Feedback)
	out.Options = make(bank.Options, len(q.Options))
	for i, o := range q.Options {
		out.Options[i] = bank.Option{Letter: o.Letter, Text: richText.Sanitize(o.Text)}
	}
	return out
}
