// Package domain defines typed identifiers shared across the service.
//
// Judge and court IDs are distinct types over uuid.UUID so the compiler
// rejects cross-type assignment: a CourtID can never be passed where a
// JudgeID is expected.
package domain

import (
	"fmt"

	"github.com/google/uuid"

	dErrors "judgefinder/pkg/domain-errors"
)

// JudgeID identifies one decision-maker.
type JudgeID uuid.UUID

// CourtID identifies a court, the peer grouping for baseline computation.
type CourtID uuid.UUID

func (id JudgeID) String() string { return uuid.UUID(id).String() }
func (id CourtID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the ID is the nil UUID.
func (id JudgeID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
func (id CourtID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// ParseJudgeID parses and validates a judge ID from its string form.
// IDs must be valid, non-empty, non-nil UUIDs.
func ParseJudgeID(s string) (JudgeID, error) {
	u, err := parseUUID(s, "judge id")
	if err != nil {
		return JudgeID{}, err
	}
	return JudgeID(u), nil
}

// ParseCourtID parses and validates a court ID from its string form.
func ParseCourtID(s string) (CourtID, error) {
	u, err := parseUUID(s, "court id")
	if err != nil {
		return CourtID{}, err
	}
	return CourtID(u), nil
}

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("%s cannot be empty", what))
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(dErrors.CodeInvalidInput, fmt.Sprintf("%s is not a valid UUID", what), err)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("%s cannot be the nil UUID", what))
	}
	return u, nil
}
