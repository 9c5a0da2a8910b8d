package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the contribution pattern of an investment.
// Only the two variants below exist; callers branch on them explicitly.
type Mode string

const (
	// ModeLumpsum is a single deposit at time zero, compounded annually.
	ModeLumpsum Mode = "lumpsum"
	// ModePeriodic is a fixed deposit at the start of every month, compounded monthly.
	ModePeriodic Mode = "sip"
)

// ErrUnknownMode is returned for any mode outside ModeLumpsum and ModePeriodic.
var ErrUnknownMode = errors.New("unknown investment mode")

var modeAliases = map[string]Mode{
	"lumpsum":   ModeLumpsum,
	"lump-sum":  ModeLumpsum,
	"one-time":  ModeLumpsum,
	"sip":       ModePeriodic,
	"periodic":  ModePeriodic,
	"monthly":   ModePeriodic,
	"recurring": ModePeriodic,
}

// ParseMode resolves a user supplied mode name, accepting common aliases.
func ParseMode(s string) (Mode, error) {
	if m, ok := modeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeLumpsum || m == ModePeriodic
}

// Label is the human readable name used in reports.
func (m Mode) Label() string {
	switch m {
	case ModeLumpsum:
		return "Lumpsum"
	case ModePeriodic:
		return "SIP"
	default:
		return string(m)
	}
}

// AmountLabel names the amount input for this mode.
func (m Mode) AmountLabel() string {
	if m == ModePeriodic {
		return "Monthly SIP Amount"
	}
	return "Total Investment"
}

// UnmarshalText lets configuration files and JSON bodies use any alias.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
