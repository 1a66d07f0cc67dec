//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "strings"

// BloodType is one of the eight ABO/Rh groups.
type BloodType string

const (
	BloodAPos  BloodType = "A+"
	BloodANeg  BloodType = "A-"
	BloodBPos  BloodType = "B+"
	BloodBNeg  BloodType = "B-"
	BloodABPos BloodType = "AB+"
	BloodABNeg BloodType = "AB-"
	BloodOPos  BloodType = "O+"
	BloodONeg  BloodType = "O-"
)

// BloodTypes lists all supported groups in display order.
var BloodTypes = []BloodType{
	BloodAPos, BloodANeg, BloodBPos, BloodBNeg,
	BloodABPos, BloodABNeg, BloodOPos, BloodONeg,
}

// Valid reports whether the blood type is one of the supported groups.
func (b BloodType) Valid() bool {
	for _, t := range BloodTypes {
		if b == t {
			return true
		}
	}
	return false
}

// ParseBloodType normalizes a blood type string and reports whether it is supported.
func ParseBloodType(value string) (BloodType, bool) {
	bt := BloodType(strings.ToUpper(strings.TrimSpace(value)))
	if bt.Valid() {
		return bt, true
	}
	return "", false
}

// Urgency ranks how quickly a blood request must be fulfilled.
type Urgency string

const (
	// UrgencyCritical: life-threatening, needed within 2 hours.
	UrgencyCritical Urgency = "critical"
	// UrgencyHigh: urgent surgery, needed within 6 hours.
	UrgencyHigh Urgency = "high"
	// UrgencyMedium: scheduled procedure, needed within 24 hours.
	UrgencyMedium Urgency = "medium"
	// UrgencyLow: stock replenishment, needed within 72 hours.
	UrgencyLow Urgency = "low"
)

// Valid reports whether the urgency is a supported level.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyCritical, UrgencyHigh, UrgencyMedium, UrgencyLow:
		return true
	default:
		return false
	}
}

// ParseUrgency normalizes an urgency string and reports whether it is supported.
func ParseUrgency(value string) (Urgency, bool) {
	u := Urgency(strings.ToLower(strings.TrimSpace(value)))
	if u.Valid() {
		return u, true
	}
	return "", false
}

// Broadcastable reports whether new requests at this urgency are pushed to
// notification sinks rather than waiting for dashboard polling.
func (u Urgency) Broadcastable() bool {
	return u == UrgencyCritical || u == UrgencyHigh
}
