package jira

import (
	"encoding/json"
	"time"
)

// Issue is the raw Jira search result shape, restricted to the fields
// the importer maps.
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

type IssueFields struct {
	Summary string `json:"summary"`
	// Description is a plain string on API v2 and an ADF document on v3;
	// the mapper handles both.
	Description    json.RawMessage `json:"description"`
	IssueType      *NamedField     `json:"issuetype"`
	Status         *Status         `json:"status"`
	Priority       *NamedField     `json:"priority"`
	Assignee       *User           `json:"assignee"`
	Reporter       *User           `json:"reporter"`
	Created        string          `json:"created"`
	Updated        string          `json:"updated"`
	ResolutionDate string          `json:"resolutiondate"`
	// customfield_10016 is the Jira Cloud default for story points.
	StoryPoints *float64 `json:"customfield_10016"`
	// customfield_10020 is the Jira Cloud default for sprints.
	Sprints []Sprint `json:"customfield_10020"`
}

type NamedField struct {
	Name string `json:"name"`
}

type Status struct {
	Name           string          `json:"name"`
	StatusCategory *StatusCategory `json:"statusCategory"`
}

type StatusCategory struct {
	Key string `json:"key"`
}

type User struct {
	AccountID    string            `json:"accountId"`
	EmailAddress string            `json:"emailAddress"`
	DisplayName  string            `json:"displayName"`
	AvatarURLs   map[string]string `json:"avatarUrls"`
}

type Sprint struct {
	ID      int    `json:"id"`
	BoardID int    `json:"boardId"`
	Name    string `json:"name"`
	State   string `json:"state"`
}

type searchResponse struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

const timeLayout = "2006-01-02T15:04:05.000-0700"

// ParseTime parses Jira's issue timestamp format.
func ParseTime(raw string) (time.Time, error) {
	return time.Parse(timeLayout, raw)
}
