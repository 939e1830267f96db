package hub

import (
	"slices"
	"strings"
)

var triStateColumns = map[string][]string{
	TabContent:   {"Whitelisting Approved"},
	TabContracts: {"Whitelisting Required", "Signed"},
}

// Validate checks a complete record against the vocabulary of its tab
func Validate(tab string, rec Record) error {
	return validate(tab, rec, true)
}

// ValidateKeepingStatus is Validate without the check that a campaign's Status belongs to
// its Type, for rows whose Status and Type are left as stored
func ValidateKeepingStatus(tab string, rec Record) error {
	return validate(tab, rec, false)
}

func validate(tab string, rec Record, checkTrack bool) error {
	if _, err := SchemaFor(tab); err != nil {
		return err
	}

	switch tab {
	case TabInfluencers:
		if p := rec["Platform"]; p != "" && !ValidPlatform(p) {
			return &ValidationError{Field: "Platform", Value: p, Message: "expected one of " + strings.Join(platforms, ", ")}
		}

	case TabCampaigns:
		t := rec[ColType]
		if !ValidType(t) {
			return &ValidationError{Field: ColType, Value: t, Message: "expected one of " + strings.Join(types, ", ")}
		}
		if s := rec[ColStatus]; checkTrack && !slices.Contains(StatusesForType(t), s) {
			return &ValidationError{Field: ColStatus, Value: s, Message: "not a " + t + " status"}
		}
		created, createdOk := ParseDate(rec[ColCreatedAt])
		updated, updatedOk := ParseDate(rec[ColUpdatedAt])
		if createdOk && updatedOk && updated.Before(created) {
			return &ValidationError{Field: ColUpdatedAt, Value: rec[ColUpdatedAt], Message: "must not be before " + ColCreatedAt}
		}
	}

	for _, col := range triStateColumns[tab] {
		if v := rec[col]; !ValidTriState(v) {
			return &ValidationError{Field: col, Value: v, Message: "expected '', 'Y' or 'N'"}
		}
	}

	return nil
}
