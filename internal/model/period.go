package model

import (
	"bytes"
	"fmt"
)

// MandatPeriod says which mandate(s) an item is scheduled on.
type MandatPeriod uint8

const (
	PeriodUnset MandatPeriod = iota
	PeriodFirst
	PeriodSecond
	PeriodBoth
)

var periodNames = [...]string{
	PeriodUnset:  "",
	PeriodFirst:  "first",
	PeriodSecond: "second",
	PeriodBoth:   "both",
}

func (p MandatPeriod) String() string {
	if int(p) < len(periodNames) {
		return periodNames[p]
	}
	return fmt.Sprintf("MandatPeriod(%d)", uint8(p))
}

// Active reports whether the period designates at least one mandate.
func (p MandatPeriod) Active() bool {
	return p == PeriodFirst || p == PeriodSecond || p == PeriodBoth
}

// Covers reports whether mandate (1 or 2) is designated by p.
func (p MandatPeriod) Covers(mandate int) bool {
	switch p {
	case PeriodFirst:
		return mandate == 1
	case PeriodSecond:
		return mandate == 2
	case PeriodBoth:
		return mandate == 1 || mandate == 2
	}
	return false
}

// ParsePeriod reads the text form of a period. Besides "", "first", "second"
// and "both" it accepts the aliases "null" and "none" for unset, "mandat1"
// and "mandat2" for a single mandate, and "split" for both.
func ParsePeriod(s string) (MandatPeriod, error) {
	switch s {
	case "", "null", "none":
		return PeriodUnset, nil
	case "first", "mandat1":
		return PeriodFirst, nil
	case "second", "mandat2":
		return PeriodSecond, nil
	case "both", "split":
		return PeriodBoth, nil
	}
	return PeriodUnset, fmt.Errorf("invalid mandate period %q", s)
}

func (p MandatPeriod) MarshalText() ([]byte, error) {
	if int(p) >= len(periodNames) {
		return nil, fmt.Errorf("invalid mandate period %d", uint8(p))
	}
	return []byte(periodNames[p]), nil
}

func (p *MandatPeriod) UnmarshalText(b []byte) error {
	v, err := ParsePeriod(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MarshalJSON writes unset as null so stored rows never carry an empty period.
func (p MandatPeriod) MarshalJSON() ([]byte, error) {
	if p == PeriodUnset {
		return []byte("null"), nil
	}
	b, err := p.MarshalText()
	if err != nil {
		return nil, err
	}
	return []byte(`"` + string(b) + `"`), nil
}

func (p *MandatPeriod) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*p = PeriodUnset
		return nil
	}
	// Older saves stored the fare-free toggle as a bare boolean.
	switch string(b) {
	case "true":
		*p = PeriodBoth
		return nil
	case "false":
		*p = PeriodUnset
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid mandate period %s", b)
	}
	return p.UnmarshalText(b[1 : len(b)-1])
}
