package model

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on-hold"
)

type Project struct {
	Id          string        `json:"id"`
	ClientId    string        `json:"clientId"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate,omitempty"`
	Status      ProjectStatus `json:"status"`
	Budget      float64       `json:"budget"`
}

func (p Project) Identity() string { return p.Id }

func (p Project) WithIdentity(id string) Project {
	p.Id = id
	return p
}
