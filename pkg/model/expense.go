package model

type Expense struct {
	Id          string  `json:"id"`
	ProjectId   string  `json:"projectId"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	// Receipt is an optional URL of the scanned receipt.
	Receipt string `json:"receipt,omitempty"`
}

func (e Expense) Identity() string { return e.Id }

func (e Expense) WithIdentity(id string) Expense {
	e.Id = id
	return e
}
