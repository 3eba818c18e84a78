package seed

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/caseguard/caseguard/internal/application/workflow/usecases"
	"github.com/caseguard/caseguard/internal/shared/utils"
)

// File is the YAML layout of an organization import.
type File struct {
	OrganizationID string       `yaml:"organization_id" validate:"required,max=64"`
	Policies       []PolicyItem `yaml:"policies" validate:"dive"`
	Rules          []RuleItem   `yaml:"rules" validate:"dive"`
	Reports        []ReportItem `yaml:"reports" validate:"dive"`
}

type PolicyItem struct {
	Name                 string  `yaml:"name" validate:"required,max=255"`
	CriticalResponseTime int     `yaml:"critical_response_time" validate:"required,gt=0"`
	HighResponseTime     int     `yaml:"high_response_time" validate:"required,gt=0"`
	MediumResponseTime   int     `yaml:"medium_response_time" validate:"required,gt=0"`
	LowResponseTime      int     `yaml:"low_response_time" validate:"required,gt=0"`
	EscalateAfterBreach  bool    `yaml:"escalate_after_breach"`
	EscalateToUserID     *string `yaml:"escalate_to_user_id" validate:"omitempty,max=64"`
	IsDefault            bool    `yaml:"is_default"`
}

type RuleConditions struct {
	Category   *string  `yaml:"category"`
	Urgency    string   `yaml:"urgency" validate:"omitempty,oneof=critical high medium low any"`
	Keywords   []string `yaml:"keywords"`
	Department *string  `yaml:"department"`
}

type RuleItem struct {
	Name           string         `yaml:"name" validate:"required,max=255"`
	Priority       int            `yaml:"priority"`
	Conditions     RuleConditions `yaml:"conditions"`
	AssignToUserID string         `yaml:"assign_to_user_id" validate:"omitempty,max=64"`
	AssignToTeam   string         `yaml:"assign_to_team" validate:"omitempty,max=255"`
}

type ReportItem struct {
	ID          string     `yaml:"id" validate:"required,max=64"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Category    string     `yaml:"category"`
	Department  string     `yaml:"department"`
	Urgency     string     `yaml:"urgency" validate:"required,oneof=critical high medium low"`
	CreatedAt   *time.Time `yaml:"created_at"`
}

// Parse decodes and validates an import file. Unknown keys are rejected so
// typos surface instead of silently dropping conditions.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	if err := utils.ValidateStruct(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Command converts the file into an import command.
func (f *File) Command() usecases.ImportWorkflowCommand {
	cmd := usecases.ImportWorkflowCommand{OrganizationID: f.OrganizationID}

	for _, p := range f.Policies {
		cmd.Policies = append(cmd.Policies, usecases.ImportPolicy{
			Policy: usecases.PolicySpec{
				Name:                 p.Name,
				CriticalResponseTime: p.CriticalResponseTime,
				HighResponseTime:     p.HighResponseTime,
				MediumResponseTime:   p.MediumResponseTime,
				LowResponseTime:      p.LowResponseTime,
				EscalateAfterBreach:  p.EscalateAfterBreach,
				EscalateToUserID:     p.EscalateToUserID,
			},
			IsDefault: p.IsDefault,
		})
	}

	for _, r := range f.Rules {
		cmd.Rules = append(cmd.Rules, usecases.RuleSpec{
			Name:           r.Name,
			Priority:       r.Priority,
			Category:       r.Conditions.Category,
			Urgency:        r.Conditions.Urgency,
			Keywords:       r.Conditions.Keywords,
			Department:     r.Conditions.Department,
			AssignToUserID: r.AssignToUserID,
			AssignToTeam:   r.AssignToTeam,
		})
	}

	for _, r := range f.Reports {
		cmd.Reports = append(cmd.Reports, usecases.ImportReport{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Category:    r.Category,
			Department:  r.Department,
			Urgency:     r.Urgency,
			CreatedAt:   r.CreatedAt,
		})
	}

	return cmd
}
