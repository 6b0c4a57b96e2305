package catalog

import (
	"math/rand"
	"time"
)

// EventType identifies the kind of event being streamed.
//
// EventType is a string type so events serialize to the snake_case names the
// dashboard client matches on, while still giving call sites typed constants.
type EventType string

const (
	// EventBarrierBroken indicates a barrier gate was broken by a team.
	EventBarrierBroken EventType = "barrier_broken"

	// EventBarrierRepaired indicates a barrier gate was repaired or reset.
	EventBarrierRepaired EventType = "barrier_repaired"

	// EventLEDDisplayBroken indicates an LED display was broken or damaged.
	EventLEDDisplayBroken EventType = "led_display_broken"

	// EventLEDDisplayRepaired indicates an LED display was repaired.
	EventLEDDisplayRepaired EventType = "led_display_repaired"

	// EventScadaCompromised indicates a SCADA system was compromised.
	EventScadaCompromised EventType = "scada_compromised"

	// EventScadaRestored indicates a SCADA system was restored.
	EventScadaRestored EventType = "scada_restored"

	// EventEmergencyStop indicates an emergency traffic stop was activated.
	EventEmergencyStop EventType = "emergency_stop"

	// EventEmergencyStopDeactivated indicates an emergency stop was lifted.
	EventEmergencyStopDeactivated EventType = "emergency_stop_deactivated"

	// EventDangerModeActivated indicates danger mode was activated.
	EventDangerModeActivated EventType = "danger_mode_activated"

	// EventDangerModeDeactivated indicates danger mode was deactivated.
	EventDangerModeDeactivated EventType = "danger_mode_deactivated"

	// EventLogMessage is a free-form log line for the dashboard's event feed.
	EventLogMessage EventType = "log_message"
)

// String returns the string representation of the event type.
// This implements the fmt.Stringer interface.
func (t EventType) String() string {
	return string(t)
}

// Log severity levels used by log_message events. The dashboard understands
// all four even though the canned templates only use info and critical.
const (
	LevelInfo     = "info"
	LevelWarning  = "warning"
	LevelError    = "error"
	LevelCritical = "critical"
)

// Event is one streamed event as it appears on the wire.
//
// Which optional fields are populated depends on Type. Empty optional fields
// are omitted from the JSON output, matching the dashboard's expectation that
// absent means "not applicable" rather than "empty".
//
// Event is a plain value type: assigning it produces the shallow copy that
// [Randomize] mutates per emission, leaving the source template untouched.
type Event struct {
	// Type is the event type name. Always present.
	Type EventType `json:"type"`

	// Team is the team credited with the event, for team-based events.
	Team string `json:"team,omitempty"`

	// Message is a human-readable description of the event.
	Message string `json:"message,omitempty"`

	// Reason explains emergency_stop and danger_mode activations.
	Reason string `json:"reason,omitempty"`

	// BuildingID is the affected building for SCADA events. A nil pointer
	// omits the field entirely.
	BuildingID *int `json:"building_id,omitempty"`

	// Level is the severity of a log_message event.
	Level string `json:"level,omitempty"`
}

// pinnedTeam is the one team name the randomizer leaves alone. The original
// test data pins "Blue Team" on two templates so the dashboard always has a
// stable name to assert against.
const pinnedTeam = "Blue Team"

// teams is the candidate team pool for re-randomizing team-based events.
var teams = []string{"Red Team", "Blue Team", "Green Team", "Alpha Squad", "Omega Force"}

// templates is the fixed event table. Entries are randomization seeds:
// [Randomize] re-picks Team and BuildingID on a copy before each emission.
var templates = []Event{
	{Type: EventBarrierBroken, Team: "Red Team", Message: "Gate compromised with battering ram"},
	{Type: EventBarrierBroken, Team: "Alpha Squad", Message: "Barrier destroyed using explosives"},
	{Type: EventLEDDisplayBroken, Team: "Red Team", Message: "Display hacked via network exploit"},
	{Type: EventLEDDisplayBroken, Team: "Blue Team", Message: "Physical damage to LED matrix"},
	{Type: EventScadaCompromised, Team: "Alpha Squad", Message: "Building automation hijacked"},
	{Type: EventScadaCompromised, BuildingID: intPtr(3), Team: "Red Team", Message: "SCADA protocol exploitation"},
	{Type: EventEmergencyStop, Reason: "Security breach detected in sector 5"},
	{Type: EventEmergencyStop, Reason: "Multiple simultaneous intrusions"},
	{Type: EventDangerModeActivated, Reason: "Hazardous materials detected"},
	{Type: EventBarrierRepaired, Team: "Blue Team"},
	{Type: EventLEDDisplayRepaired},
	{Type: EventScadaRestored},
	{Type: EventEmergencyStopDeactivated},
	{Type: EventDangerModeDeactivated},
	{Type: EventLogMessage, Level: LevelCritical, Message: "Unauthorized access attempt on north perimeter"},
}

func intPtr(n int) *int {
	return &n
}

// Greeting is the fixed connection-acknowledgement event written as the first
// frame of every stream, before any randomized event. It lets a client confirm
// the stream is live without waiting out the first random delay.
func Greeting() Event {
	return Event{
		Type:    EventLogMessage,
		Level:   LevelInfo,
		Message: "Connected to test SSE server",
	}
}

// Templates returns a copy of the fixed event table.
//
// The returned slice is freshly allocated; callers may reorder or modify it
// without affecting the catalog.
func Templates() []Event {
	out := make([]Event, len(templates))
	copy(out, templates)
	return out
}

// Teams returns a copy of the candidate team name list.
func Teams() []string {
	out := make([]string, len(teams))
	copy(out, teams)
	return out
}

// Types returns every event type name in the catalog's vocabulary.
func Types() []EventType {
	return []EventType{
		EventBarrierBroken,
		EventBarrierRepaired,
		EventLEDDisplayBroken,
		EventLEDDisplayRepaired,
		EventScadaCompromised,
		EventScadaRestored,
		EventEmergencyStop,
		EventEmergencyStopDeactivated,
		EventDangerModeActivated,
		EventDangerModeDeactivated,
		EventLogMessage,
	}
}

// Pick selects a template uniformly at random and returns a randomized copy
// of it, ready for emission.
func Pick(rnd *rand.Rand) Event {
	return Randomize(rnd, templates[rnd.Intn(len(templates))])
}

// Randomize returns a per-emission copy of ev with the variable fields
// re-rolled:
//
//   - Team, when present and not the pinned "Blue Team" value, is replaced by
//     a uniform pick from [Teams]. The pick is independent of the original, so
//     it may coincidentally reselect the same name.
//   - BuildingID, when present, is replaced by a uniform integer in [1, 10].
//
// ev is received by value, so the caller's template is never mutated.
func Randomize(rnd *rand.Rand, ev Event) Event {
	if ev.Team != "" && ev.Team != pinnedTeam {
		ev.Team = teams[rnd.Intn(len(teams))]
	}
	if ev.BuildingID != nil {
		id := 1 + rnd.Intn(10)
		ev.BuildingID = &id
	}
	return ev
}

// Delay draws an emission delay uniformly from the closed interval [min, max].
// If the bounds are inverted or equal it returns min.
func Delay(rnd *rand.Rand, min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rnd.Int63n(int64(max-min)+1))
}
