package ingest

import (
	"encoding/json"
	"strconv"
	"time"

	"devpulse/internal/domain/tracker"
	"devpulse/internal/infrastructure/provider/jira"
	"devpulse/internal/ports"
)

func jiraUser(u *jira.User) *tracker.ProviderUser {
	if u == nil {
		return nil
	}
	return &tracker.ProviderUser{
		Email:     u.EmailAddress,
		AccountID: u.AccountID,
		Name:      u.DisplayName,
		AvatarURL: u.AvatarURLs["48x48"],
	}
}

func mapJiraIssue(raw jira.Issue, projectID uint64, reporterID, assigneeID *uint64) (ports.IssueRecord, error) {
	createdAt, err := jira.ParseTime(raw.Fields.Created)
	if err != nil {
		return ports.IssueRecord{}, err
	}
	updatedAt, err := jira.ParseTime(raw.Fields.Updated)
	if err != nil {
		return ports.IssueRecord{}, err
	}

	var typeName string
	if raw.Fields.IssueType != nil {
		typeName = raw.Fields.IssueType.Name
	}

	var categoryKey, statusName string
	if raw.Fields.Status != nil {
		statusName = raw.Fields.Status.Name
		if raw.Fields.Status.StatusCategory != nil {
			categoryKey = raw.Fields.Status.StatusCategory.Key
		}
	}
	status := tracker.InferIssueStatus(categoryKey, statusName)

	var resolvedAt *time.Time
	if status.Closed() {
		resolved := updatedAt
		if raw.Fields.ResolutionDate != "" {
			if parsed, parseErr := jira.ParseTime(raw.Fields.ResolutionDate); parseErr == nil {
				resolved = parsed
			}
		}
		resolvedAt = &resolved
	}

	var priorityName string
	if raw.Fields.Priority != nil {
		priorityName = raw.Fields.Priority.Name
	}

	record := ports.IssueRecord{
		Key:         raw.Key,
		ProjectID:   projectID,
		Title:       raw.Fields.Summary,
		Description: decodeJiraDescription(raw.Fields.Description),
		Type:        tracker.InferIssueType(typeName),
		Status:      status,
		Priority:    tracker.InferIssuePriority(priorityName),
		ReporterID:  reporterID,
		AssigneeID:  assigneeID,
		StoryPoints: raw.Fields.StoryPoints,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		ResolvedAt:  resolvedAt,
	}

	if len(raw.Fields.Sprints) > 0 {
		sprint := raw.Fields.Sprints[0]
		sprintID := strconv.Itoa(sprint.ID)
		record.SprintID = &sprintID
		if sprint.BoardID != 0 {
			boardID := strconv.Itoa(sprint.BoardID)
			record.BoardID = &boardID
		}
	}

	return record, nil
}

// decodeJiraDescription accepts the plain-string (API v2) and ADF
// document (API v3) encodings; null and empty stay nil.
func decodeJiraDescription(raw json.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		if plain == "" {
			return nil
		}
		return &plain
	}

	var doc tracker.RichTextNode
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	flattened := tracker.FlattenRichText(&doc)
	if flattened == "" {
		return nil
	}
	return &flattened
}
