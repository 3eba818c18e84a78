package workflow

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
)

// ResponseTimes holds the per-tier response ceilings in hours.
type ResponseTimes struct {
	Critical int
	High     int
	Medium   int
	Low      int
}

// Validate rejects non-positive ceilings and tiers ordered out of severity.
func (rt ResponseTimes) Validate() error {
	tiers := []struct {
		name  string
		hours int
	}{
		{"critical", rt.Critical},
		{"high", rt.High},
		{"medium", rt.Medium},
		{"low", rt.Low},
	}
	for _, tier := range tiers {
		if tier.hours <= 0 {
			return fmt.Errorf("%s response time must be positive", tier.name)
		}
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i-1].hours > tiers[i].hours {
			return fmt.Errorf("%s response time (%dh) must not exceed %s response time (%dh)",
				tiers[i-1].name, tiers[i-1].hours, tiers[i].name, tiers[i].hours)
		}
	}
	return nil
}

// HoursFor returns the ceiling for a concrete urgency tier.
func (rt ResponseTimes) HoursFor(u vo.Urgency) (int, error) {
	switch u {
	case vo.UrgencyCritical:
		return rt.Critical, nil
	case vo.UrgencyHigh:
		return rt.High, nil
	case vo.UrgencyMedium:
		return rt.Medium, nil
	case vo.UrgencyLow:
		return rt.Low, nil
	default:
		return 0, fmt.Errorf("no response time for urgency %q", u)
	}
}

type SLAPolicy struct {
	id                  string
	organizationID      string
	name                string
	responseTimes       ResponseTimes
	isDefault           bool
	escalateAfterBreach bool
	escalateToUserID    *string
	version             int
	createdAt           time.Time
	updatedAt           time.Time
}

func NewSLAPolicy(
	id string,
	organizationID string,
	name string,
	responseTimes ResponseTimes,
	escalateAfterBreach bool,
	escalateToUserID *string,
	now time.Time,
) (*SLAPolicy, error) {
	if id == "" {
		return nil, fmt.Errorf("policy ID is required")
	}
	if organizationID == "" {
		return nil, fmt.Errorf("organization ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("policy name is required")
	}
	if err := responseTimes.Validate(); err != nil {
		return nil, err
	}

	return &SLAPolicy{
		id:                  id,
		organizationID:      organizationID,
		name:                strings.TrimSpace(name),
		responseTimes:       responseTimes,
		escalateAfterBreach: escalateAfterBreach,
		escalateToUserID:    trimmedOrNil(escalateToUserID),
		version:             1,
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

// ReconstructSLAPolicy rebuilds a persisted policy without re-checking tier
// ordering, so rows written before validation existed still load.
func ReconstructSLAPolicy(
	id string,
	organizationID string,
	name string,
	responseTimes ResponseTimes,
	isDefault bool,
	escalateAfterBreach bool,
	escalateToUserID *string,
	version int,
	createdAt, updatedAt time.Time,
) (*SLAPolicy, error) {
	if id == "" {
		return nil, fmt.Errorf("policy ID is required")
	}
	if organizationID == "" {
		return nil, fmt.Errorf("organization ID is required")
	}

	return &SLAPolicy{
		id:                  id,
		organizationID:      organizationID,
		name:                name,
		responseTimes:       responseTimes,
		isDefault:           isDefault,
		escalateAfterBreach: escalateAfterBreach,
		escalateToUserID:    escalateToUserID,
		version:             version,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}, nil
}

func (p *SLAPolicy) ID() string {
	return p.id
}

func (p *SLAPolicy) OrganizationID() string {
	return p.organizationID
}

func (p *SLAPolicy) Name() string {
	return p.name
}

func (p *SLAPolicy) ResponseTimes() ResponseTimes {
	return p.responseTimes
}

func (p *SLAPolicy) IsDefault() bool {
	return p.isDefault
}

func (p *SLAPolicy) EscalateAfterBreach() bool {
	return p.escalateAfterBreach
}

func (p *SLAPolicy) EscalateToUserID() *string {
	return p.escalateToUserID
}

func (p *SLAPolicy) Version() int {
	return p.version
}

func (p *SLAPolicy) CreatedAt() time.Time {
	return p.createdAt
}

func (p *SLAPolicy) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *SLAPolicy) HoursFor(u vo.Urgency) (int, error) {
	return p.responseTimes.HoursFor(u)
}

func (p *SLAPolicy) Update(
	name string,
	responseTimes ResponseTimes,
	escalateAfterBreach bool,
	escalateToUserID *string,
	now time.Time,
) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("policy name is required")
	}
	if err := responseTimes.Validate(); err != nil {
		return err
	}

	p.name = strings.TrimSpace(name)
	p.responseTimes = responseTimes
	p.escalateAfterBreach = escalateAfterBreach
	p.escalateToUserID = trimmedOrNil(escalateToUserID)
	p.updatedAt = now
	p.version++
	return nil
}

func (p *SLAPolicy) MarkDefault(now time.Time) {
	if p.isDefault {
		return
	}
	p.isDefault = true
	p.updatedAt = now
	p.version++
}

func (p *SLAPolicy) ClearDefault(now time.Time) {
	if !p.isDefault {
		return
	}
	p.isDefault = false
	p.updatedAt = now
	p.version++
}
