package domain

import "time"

// IssueStatus tracks the lifecycle of an issue.
type IssueStatus string

// IssuePriority ranks how urgent an issue is.
type IssuePriority string

// IssueTag classifies what kind of work an issue represents.
type IssueTag string

const (
	StatusToDo       IssueStatus = "to_do"
	StatusInProgress IssueStatus = "in_progress"
	StatusFinished   IssueStatus = "finished"

	PriorityLow    IssuePriority = "low"
	PriorityMedium IssuePriority = "medium"
	PriorityHigh   IssuePriority = "high"

	TagBug     IssueTag = "bug"
	TagTask    IssueTag = "task"
	TagFeature IssueTag = "feature"
)

var IssueStatuses = []Choice{
	{Value: string(StatusToDo), Label: "To Do"},
	{Value: string(StatusInProgress), Label: "In Progress"},
	{Value: string(StatusFinished), Label: "Finished"},
}

var IssuePriorities = []Choice{
	{Value: string(PriorityLow), Label: "Low"},
	{Value: string(PriorityMedium), Label: "Medium"},
	{Value: string(PriorityHigh), Label: "High"},
}

var IssueTags = []Choice{
	{Value: string(TagBug), Label: "Bug"},
	{Value: string(TagTask), Label: "Task"},
	{Value: string(TagFeature), Label: "Feature"},
}

func (s IssueStatus) Valid() bool   { return choiceValid(IssueStatuses, string(s)) }
func (p IssuePriority) Valid() bool { return choiceValid(IssuePriorities, string(p)) }
func (t IssueTag) Valid() bool      { return choiceValid(IssueTags, string(t)) }

func choiceValid(choices []Choice, v string) bool {
	for _, c := range choices {
		if c.Value == v {
			return true
		}
	}
	return false
}

// Issue is a unit of work filed within a project. Project and author are
// immutable after creation; the assignee, when set, must be a contributor
// of the same project.
type Issue struct {
	ID          int64         `json:"id"`
	ProjectID   int64         `json:"project"`
	AuthorID    int64         `json:"author"`
	AssigneeID  *int64        `json:"assignee"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      IssueStatus   `json:"status"`
	Priority    IssuePriority `json:"priority"`
	Tag         IssueTag      `json:"tag"`
	CreatedAt   time.Time     `json:"created_time"`
}
