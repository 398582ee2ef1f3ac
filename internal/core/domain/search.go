package domain

import "strings"

type TaskStatus string

const (
	TaskPending   TaskStatus = "Pending"
	TaskCompleted TaskStatus = "Completed"
)

// SearchQuery describes a tag match over the uploaded-file catalog. Every
// query tag must be satisfied by at least one file tag; a file with extra
// tags beyond the query set still matches.
type SearchQuery struct {
	Tags            []string `json:"tags"`
	Substring       bool     `json:"substring"`
	CaseInsensitive bool     `json:"caseInsensitive"`
}

func (q SearchQuery) Matches(file TaggedFile) bool {
	for _, want := range q.Tags {
		if !q.anyTagMatches(file.Tags, want) {
			return false
		}
	}
	return true
}

func (q SearchQuery) anyTagMatches(tags []Tag, want string) bool {
	if q.CaseInsensitive {
		want = strings.ToLower(want)
	}
	for _, tag := range tags {
		have := tag.Text
		if q.CaseInsensitive {
			have = strings.ToLower(have)
		}
		if q.Substring {
			if strings.Contains(have, want) {
				return true
			}
		} else if have == want {
			return true
		}
	}
	return false
}

// SearchTask is the in-memory record of one deferred tag search. It moves
// from Pending to Completed exactly once and is never revisited afterwards.
type SearchTask struct {
	ID     string        `json:"taskId"`
	Status TaskStatus    `json:"status"`
	Query  SearchQuery   `json:"query"`
	Result []FileSummary `json:"result,omitempty"`
}
