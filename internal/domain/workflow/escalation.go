package workflow

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CaseEscalation is an immutable audit record of an ownership change caused
// by a breach or a manual trigger.
type CaseEscalation struct {
	id             string
	organizationID string
	reportID       string
	escalatedFrom  *string
	escalatedTo    string
	reason         string
	slaBreached    bool
	dedupeKey      string
	createdAt      time.Time
}

func NewCaseEscalation(
	id string,
	organizationID string,
	reportID string,
	escalatedFrom *string,
	escalatedTo string,
	reason string,
	slaBreached bool,
	dedupeKey string,
	now time.Time,
) (*CaseEscalation, error) {
	if id == "" {
		return nil, fmt.Errorf("escalation ID is required")
	}
	if organizationID == "" {
		return nil, fmt.Errorf("organization ID is required")
	}
	if reportID == "" {
		return nil, fmt.Errorf("report ID is required")
	}
	if strings.TrimSpace(escalatedTo) == "" {
		return nil, fmt.Errorf("escalation target is required")
	}
	if dedupeKey == "" {
		return nil, fmt.Errorf("dedupe key is required")
	}

	return &CaseEscalation{
		id:             id,
		organizationID: organizationID,
		reportID:       reportID,
		escalatedFrom:  escalatedFrom,
		escalatedTo:    escalatedTo,
		reason:         reason,
		slaBreached:    slaBreached,
		dedupeKey:      dedupeKey,
		createdAt:      now,
	}, nil
}

func ReconstructCaseEscalation(
	id string,
	organizationID string,
	reportID string,
	escalatedFrom *string,
	escalatedTo string,
	reason string,
	slaBreached bool,
	dedupeKey string,
	createdAt time.Time,
) *CaseEscalation {
	return &CaseEscalation{
		id:             id,
		organizationID: organizationID,
		reportID:       reportID,
		escalatedFrom:  escalatedFrom,
		escalatedTo:    escalatedTo,
		reason:         reason,
		slaBreached:    slaBreached,
		dedupeKey:      dedupeKey,
		createdAt:      createdAt,
	}
}

func (e *CaseEscalation) ID() string {
	return e.id
}

func (e *CaseEscalation) OrganizationID() string {
	return e.organizationID
}

func (e *CaseEscalation) ReportID() string {
	return e.reportID
}

func (e *CaseEscalation) EscalatedFrom() *string {
	return e.escalatedFrom
}

func (e *CaseEscalation) EscalatedTo() string {
	return e.escalatedTo
}

func (e *CaseEscalation) Reason() string {
	return e.reason
}

func (e *CaseEscalation) SLABreached() bool {
	return e.slaBreached
}

func (e *CaseEscalation) DedupeKey() string {
	return e.dedupeKey
}

func (e *CaseEscalation) CreatedAt() time.Time {
	return e.createdAt
}

// EscalationDedupeKey identifies one escalation event: a report escalated to
// a target for a specific triggering deadline. Escalations without a
// deadline are bucketed into fixed windows of the given length.
func EscalationDedupeKey(reportID, escalatedTo string, deadline *time.Time, now time.Time, window time.Duration) string {
	var slot string
	if deadline != nil {
		slot = strconv.FormatInt(deadline.UTC().Unix(), 10)
	} else {
		if window <= 0 {
			window = time.Minute
		}
		slot = "manual-" + strconv.FormatInt(now.UTC().Truncate(window).Unix(), 10)
	}
	return reportID + ":" + escalatedTo + ":" + slot
}
