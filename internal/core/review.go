package core

import "time"

// CodeSnippet is a unit of submitted source code, stored verbatim.
type CodeSnippet struct {
	ID        int64     `db:"id" json:"id" yaml:"id"`
	Code      string    `db:"code" json:"code" yaml:"code"`
	CreatedAt time.Time `db:"created_at" json:"created_at" yaml:"created_at"`
}

// Review represents a single piece of feedback stored for a snippet.
type Review struct {
	ID        int64         `db:"id" json:"id" yaml:"id"`
	SnippetID int64         `db:"snippet_id" json:"snippet_id" yaml:"snippet_id"`
	Feedback  string        `db:"feedback" json:"feedback" yaml:"feedback"`
	Status    OutcomeStatus `db:"status" json:"status" yaml:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at" yaml:"created_at"`
}

// SnippetDetail is a stored snippet together with every review recorded for it.
type SnippetDetail struct {
	Snippet *CodeSnippet `json:"snippet" yaml:"snippet"`
	Reviews []Review     `json:"reviews" yaml:"reviews"`
}

// Submission is the result of a single submit-for-review request.
type Submission struct {
	SnippetID int64         `json:"snippet_id"`
	ReviewID  int64         `json:"review_id"`
	Feedback  string        `json:"feedback"`
	Status    OutcomeStatus `json:"status"`
}
