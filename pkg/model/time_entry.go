package model

import "time"

type TimeEntry struct {
	Id          string    `json:"id"`
	ProjectId   string    `json:"projectId"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	HourlyRate  float64   `json:"hourlyRate"`
}

func (e TimeEntry) Identity() string { return e.Id }

func (e TimeEntry) WithIdentity(id string) TimeEntry {
	e.Id = id
	return e
}
