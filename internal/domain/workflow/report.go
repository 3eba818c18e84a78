package workflow

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
)

// Report is the workflow engine's view of a whistleblowing report. The
// report lifecycle belongs to the report-management subsystem; the engine
// only reads match inputs and issues ownership and deadline changes.
type Report struct {
	id             string
	organizationID string
	title          string
	description    string
	category       string
	department     string
	urgency        vo.Urgency
	assignedTo     *string
	slaDeadline    *time.Time
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	deletedAt      *time.Time
}

func NewReport(
	id string,
	organizationID string,
	title string,
	description string,
	category string,
	department string,
	urgency vo.Urgency,
	createdAt time.Time,
) (*Report, error) {
	if id == "" {
		return nil, fmt.Errorf("report ID is required")
	}
	if organizationID == "" {
		return nil, fmt.Errorf("organization ID is required")
	}
	if !urgency.IsValid() {
		return nil, fmt.Errorf("invalid urgency: %s", urgency)
	}
	if createdAt.IsZero() {
		return nil, fmt.Errorf("created time is required")
	}

	return &Report{
		id:             id,
		organizationID: organizationID,
		title:          title,
		description:    description,
		category:       category,
		department:     department,
		urgency:        urgency,
		version:        1,
		createdAt:      createdAt.UTC(),
		updatedAt:      createdAt.UTC(),
	}, nil
}

func ReconstructReport(
	id string,
	organizationID string,
	title string,
	description string,
	category string,
	department string,
	urgency vo.Urgency,
	assignedTo *string,
	slaDeadline *time.Time,
	version int,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
) (*Report, error) {
	if id == "" {
		return nil, fmt.Errorf("report ID is required")
	}
	if organizationID == "" {
		return nil, fmt.Errorf("organization ID is required")
	}
	if !urgency.IsValid() {
		return nil, fmt.Errorf("invalid urgency: %s", urgency)
	}

	return &Report{
		id:             id,
		organizationID: organizationID,
		title:          title,
		description:    description,
		category:       category,
		department:     department,
		urgency:        urgency,
		assignedTo:     assignedTo,
		slaDeadline:    slaDeadline,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		deletedAt:      deletedAt,
	}, nil
}

func (r *Report) ID() string {
	return r.id
}

func (r *Report) OrganizationID() string {
	return r.organizationID
}

func (r *Report) Title() string {
	return r.title
}

func (r *Report) Description() string {
	return r.description
}

func (r *Report) Category() string {
	return r.category
}

func (r *Report) Department() string {
	return r.department
}

func (r *Report) Urgency() vo.Urgency {
	return r.urgency
}

func (r *Report) AssignedTo() *string {
	return r.assignedTo
}

func (r *Report) SLADeadline() *time.Time {
	return r.slaDeadline
}

func (r *Report) Version() int {
	return r.version
}

func (r *Report) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Report) UpdatedAt() time.Time {
	return r.updatedAt
}

func (r *Report) DeletedAt() *time.Time {
	return r.deletedAt
}

func (r *Report) IsDeleted() bool {
	return r.deletedAt != nil
}

// SearchableText is the text keyword conditions are matched against.
func (r *Report) SearchableText() string {
	return r.title + "\n" + r.description
}

// IsOwnedBy reports whether the current owner equals owner; nil means unassigned.
func (r *Report) IsOwnedBy(owner *string) bool {
	return sameOwner(r.assignedTo, owner)
}

func (r *Report) AssignTo(owner string, now time.Time) error {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if r.assignedTo != nil && *r.assignedTo == owner {
		return nil
	}

	r.assignedTo = &owner
	r.updatedAt = now
	r.version++
	return nil
}

func (r *Report) SetSLADeadline(deadline time.Time, now time.Time) {
	d := deadline.UTC()
	r.slaDeadline = &d
	r.updatedAt = now
	r.version++
}

func (r *Report) ChangeUrgency(urgency vo.Urgency, now time.Time) error {
	if !urgency.IsValid() {
		return fmt.Errorf("invalid urgency: %s", urgency)
	}
	if r.urgency == urgency {
		return nil
	}

	r.urgency = urgency
	r.updatedAt = now
	r.version++
	return nil
}

// Clone returns a copy that shares no mutable state with r.
func (r *Report) Clone() *Report {
	c := *r
	if r.assignedTo != nil {
		owner := *r.assignedTo
		c.assignedTo = &owner
	}
	if r.slaDeadline != nil {
		d := *r.slaDeadline
		c.slaDeadline = &d
	}
	if r.deletedAt != nil {
		d := *r.deletedAt
		c.deletedAt = &d
	}
	return &c
}

func sameOwner(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
