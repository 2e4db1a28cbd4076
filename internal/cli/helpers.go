package cli

import (
	"fmt"
	"os"
	"strings"

	"iws/internal/domain/issue"
	"iws/internal/ui"
)

// resolveProjectID returns the project to operate on: the flag value when
// given, the only project when exactly one exists, otherwise an interactive
// selection.
func resolveProjectID(e *env, flagValue string) (string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return strings.TrimSpace(flagValue), nil
	}

	projects, warnings, err := e.projects.List()
	if err != nil {
		return "", err
	}
	warnAll(e, warnings)
	if len(projects) == 0 {
		return "", fmt.Errorf("no projects defined, run: iws project add")
	}
	if len(projects) == 1 {
		return projects[0].ID, nil
	}
	if !e.canPrompt() {
		return "", fmt.Errorf("project is required (-p)")
	}

	choices := make([]ui.Choice, 0, len(projects))
	for _, p := range projects {
		choices = append(choices, ui.Choice{ID: p.ID, Description: p.Name})
	}
	return ui.PromptSelect("iws", "project", choices, e.theme, e.color)
}

// resolveIssueID returns the issue to operate on: the positional argument
// when given, otherwise an interactive selection from the project's state.
func resolveIssueID(e *env, projectID, arg string) (string, error) {
	if strings.TrimSpace(arg) != "" {
		return strings.TrimSpace(arg), nil
	}

	issues, warnings, err := e.issues.Load(projectID)
	if err != nil {
		return "", err
	}
	warnAll(e, warnings)
	if len(issues) == 0 {
		return "", fmt.Errorf("no issues in project %s", projectID)
	}
	if !e.canPrompt() {
		return "", fmt.Errorf("issue id is required")
	}

	choices := make([]ui.Choice, 0, len(issues))
	for _, record := range issues {
		choices = append(choices, ui.Choice{ID: record.ID, Description: issueSummary(record)})
	}
	return ui.PromptSelect("iws", "issue", choices, e.theme, e.color)
}

func issueSummary(record issue.Issue) string {
	if strings.TrimSpace(record.Title) != "" {
		return fmt.Sprintf("%s (%s)", record.Title, record.Status)
	}
	return string(record.Status)
}

func warnAll(e *env, warnings []error) {
	r := ui.NewRenderer(os.Stderr, e.theme, e.color)
	for _, warning := range warnings {
		r.Warn(warning.Error())
	}
}
