package model

type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
)

type Invoice struct {
	Id        string        `json:"id"`
	ProjectId string        `json:"projectId"`
	ClientId  string        `json:"clientId"`
	Number    string        `json:"number"`
	Date      string        `json:"date"`
	DueDate   string        `json:"dueDate"`
	Items     []InvoiceItem `json:"items"`
	Status    InvoiceStatus `json:"status"`
}

// InvoiceItem keeps Amount persisted for compatibility; it must always equal
// Quantity * Rate.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

func (i Invoice) Identity() string { return i.Id }

func (i Invoice) WithIdentity(id string) Invoice {
	i.Id = id
	return i
}
