package noise

import (
	"fmt"
	"strings"
)

// TriggerMask is the packed trigger information recorded with every event.
type TriggerMask uint8

const (
	TriggerThermal  TriggerMask = 1 << 0
	TriggerForced   TriggerMask = 1 << 1
	TriggerExternal TriggerMask = 1 << 2
	// Event passes the L1 cut on power concentrated in a single frequency.
	TriggerL1 TriggerMask = 1 << 3
	// Bit 4 is not used.
	TriggerL1Scaledown TriggerMask = 1 << 5
	TriggerL1Enabled   TriggerMask = 1 << 6
	// Data transfer from the digitizer cards took too long.
	TriggerExceedingBuffer TriggerMask = 1 << 7
)

var triggerNames = []struct {
	flag TriggerMask
	name string
}{
	{TriggerThermal, "thermal"},
	{TriggerForced, "forced"},
	{TriggerExternal, "external"},
	{TriggerL1, "l1"},
	{TriggerL1Scaledown, "l1_scaledown"},
	{TriggerL1Enabled, "l1_enabled"},
	{TriggerExceedingBuffer, "exceeding_buffer"},
}

// Has reports whether every bit of flag is set in m.
func (m TriggerMask) Has(flag TriggerMask) bool {
	return m&flag == flag
}

func (m TriggerMask) String() string {
	names := make([]string, 0, len(triggerNames))
	for _, t := range triggerNames {
		if m.Has(t.flag) {
			names = append(names, t.name)
		}
	}
	if unused := m &^ allTriggerFlags(); unused != 0 {
		names = append(names, fmt.Sprintf("0x%02x", uint8(unused)))
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ParseTrigger returns the flag registered under name.
func ParseTrigger(name string) (TriggerMask, error) {
	for _, t := range triggerNames {
		if t.name == name {
			return t.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown trigger %q", name)
}

// TriggerNames lists the known trigger flags in bit order.
func TriggerNames() []string {
	names := make([]string, len(triggerNames))
	for i, t := range triggerNames {
		names[i] = t.name
	}
	return names
}

func allTriggerFlags() TriggerMask {
	var all TriggerMask
	for _, t := range triggerNames {
		all |= t.flag
	}
	return all
}
