package model

type Document struct {
	Id         string `json:"id"`
	ProjectId  string `json:"projectId"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Url        string `json:"url"`
	UploadDate string `json:"uploadDate"`
}

func (d Document) Identity() string { return d.Id }

func (d Document) WithIdentity(id string) Document {
	d.Id = id
	return d
}
