package waveform

import (
	"fmt"
	"log"
	"strings"
)

// Candidate is a channel that qualified as an X-axis vehicle-body
// accelerometer, with its mounting-location score. It only exists while the
// locator evaluates a source.
type Candidate struct {
	Channel  Channel
	Score    int
	Location string
}

// locationRule scores a sensor mounting location. Rear sill / floor sensors
// see the least noise, so they rank highest; CG next, pillar last.
type locationRule struct {
	all   []string // every substring must match
	any   []string // at least one must match (ignored when empty)
	score int
	label string
}

// metadataRules score the declared SENLOCD property.
var metadataRules = []locationRule{
	{all: []string{"REAR"}, any: []string{"SILL", "FLOOR"}, score: 3, label: "Rear Sill/Floor"},
	{all: []string{"CG"}, score: 2, label: "Vehicle CG"},
	{all: []string{"PILLAR"}, score: 1, label: "B-Pillar"},
}

// nameRules score the ISO-MME location code embedded in the channel name
// when metadata is missing, e.g. "10VEHCCG0000AC1P".
var nameRules = []locationRule{
	{any: []string{"LERE", "RIRE"}, score: 3, label: "Rear Sill/Floor (From Name)"},
	{all: []string{"CG"}, score: 2, label: "Vehicle CG (From Name)"},
	{any: []string{"PILLAR", "PIL"}, score: 1, label: "B-Pillar (From Name)"},
}

func (r locationRule) matches(s string) bool {
	for _, sub := range r.all {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	if len(r.any) == 0 {
		return true
	}
	for _, sub := range r.any {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func scoreLocation(rules []locationRule, s string) (int, string) {
	for _, r := range rules {
		if r.matches(s) {
			return r.score, r.label
		}
	}
	return 0, ""
}

// evaluate classifies one channel. Score 0 means the channel does not
// qualify. The metadata path is tried first; the name fallback only applies
// when the metadata path yields no accelerometer classification.
func evaluate(ch Channel) Candidate {
	senType := strings.ToUpper(ch.Property(PropSensorType))
	senLoc := strings.ToUpper(ch.Property(PropSensorLocation))
	axis := strings.ToUpper(ch.Property(PropAxis))
	name := strings.ToUpper(ch.Name())

	if strings.Contains(senType, "ACCEL") && (strings.Contains(axis, "X") || strings.Contains(axis, "LONG")) {
		score, label := scoreLocation(metadataRules, senLoc)
		if label == "" {
			label = senLoc
		}
		return Candidate{Channel: ch, Score: score, Location: label}
	}

	// ISO-MME name fallback: "AC1" / "ACX" identify X-axis acceleration.
	if strings.Contains(name, "AC1") || strings.Contains(name, "ACX") {
		score, label := scoreLocation(nameRules, name)
		return Candidate{Channel: ch, Score: score, Location: label}
	}

	return Candidate{Channel: ch}
}

// Locate finds the channel best representing longitudinal vehicle-body
// acceleration. The highest location score wins; ties keep the first
// channel encountered, preserving historical selection order. It returns
// ErrNoChannel when nothing qualifies or the source cannot be read; it
// never propagates a read failure.
func Locate(src Source) (Candidate, error) {
	groups, err := src.Groups()
	if err != nil {
		log.Printf("[ERROR] read waveform source: %v", err)
		return Candidate{}, fmt.Errorf("%w: unreadable source", ErrNoChannel)
	}

	var best Candidate
	for _, g := range groups {
		for _, ch := range g.Channels() {
			c := evaluate(ch)
			if c.Score > best.Score {
				best = c
			}
		}
	}

	if best.Score == 0 {
		return Candidate{}, ErrNoChannel
	}
	return best, nil
}
