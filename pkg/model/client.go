package model

type Client struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

func (c Client) Identity() string { return c.Id }

func (c Client) WithIdentity(id string) Client {
	c.Id = id
	return c
}
