package domain

import "time"

// ProjectType categorises a project by its technical scope.
type ProjectType string

const (
	TypeBackEnd  ProjectType = "back-end"
	TypeFrontEnd ProjectType = "front-end"
	TypeIOS      ProjectType = "ios"
	TypeAndroid  ProjectType = "android"
)

// ProjectTypes lists every valid project type with its display label.
// This is the single authoritative definition; the choices endpoint and
// request validation both derive from it.
var ProjectTypes = []Choice{
	{Value: string(TypeBackEnd), Label: "Back-end"},
	{Value: string(TypeFrontEnd), Label: "Front-end"},
	{Value: string(TypeIOS), Label: "iOS"},
	{Value: string(TypeAndroid), Label: "Android"},
}

// Valid reports whether t is one of the declared project types.
func (t ProjectType) Valid() bool {
	for _, c := range ProjectTypes {
		if c.Value == string(t) {
			return true
		}
	}
	return false
}

// Choice is a single enum value with its human-readable label.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Project is the root of the resource hierarchy. The author is fixed at
// creation and is always also a contributor.
type Project struct {
	ID          int64       `json:"id"`
	AuthorID    int64       `json:"author"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Type        ProjectType `json:"project_type"`
	CreatedAt   time.Time   `json:"created_time"`
}

// Contributor links a user to a project. The pair (project, user) is unique.
type Contributor struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project"`
	UserID    int64     `json:"user"`
	CreatedAt time.Time `json:"created_time"`
}
