package model

type MilestoneStatus string

const (
	MilestonePending   MilestoneStatus = "pending"
	MilestoneCompleted MilestoneStatus = "completed"
)

type Milestone struct {
	Id          string          `json:"id"`
	ProjectId   string          `json:"projectId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     string          `json:"dueDate"`
	Status      MilestoneStatus `json:"status"`
	Amount      float64         `json:"amount"`
}

func (m Milestone) Identity() string { return m.Id }

func (m Milestone) WithIdentity(id string) Milestone {
	m.Id = id
	return m
}
