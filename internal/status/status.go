package status

import (
	"fmt"

	"github.com/oshokin/doorlink-analyzer/internal/domain/trace"
)

// Door state tags decoded from payload positions 0-1.
const (
	DoorIdleClosed          = "IDLE_CLOSED"
	DoorIdleOpen            = "IDLE_OPEN"
	DoorStarting            = "STARTING"
	DoorOpening             = "OPENING"
	DoorClosing             = "CLOSING"
	DoorStoppedMidOpen      = "STOPPED_MID_OPEN"
	DoorStoppedMidClose     = "STOPPED_MID_CLOSE"
	DoorArrivedOpen         = "ARRIVED_OPEN"
	DoorArrivedClosed       = "ARRIVED_CLOSED"
	DoorObstructionReversal = "OBSTRUCTION_REVERSAL"
)

// Sub-state tags decoded from payload positions 2-4.
const (
	SubActive        = "ACTIVE"
	SubSettled       = "SETTLED"
	SubObstruction   = "OBSTRUCTION"
	SubReversing     = "REVERSING"
	SubIdleOff       = "IDLE_OFF"
	SubAtEndpoint    = "AT_ENDPOINT"
	SubAtEndpoint2   = "AT_ENDPOINT_2"
	SubActivating    = "ACTIVATING"
	SubActivating2   = "ACTIVATING_2"
	SubIdleOpen      = "IDLE_OPEN"
	SubReversalInit  = "REVERSAL_INIT"
	SubReversalInit2 = "REVERSAL_INIT_2"
)

// Light state tags decoded from payload positions 1-4.
const (
	LightOn  = "ON"
	LightOff = "OFF"
)

// Header is the constant 8-symbol header of the status message type.
// Only payloads following this header carry the state encoding below.
var Header = []int{1, 7, 2, 1, 4, 6, 2, 9}

// doorStates maps payload positions 0-1 to the door/motor state.
var doorStates = map[[2]int]string{
	{2, 6}: DoorIdleClosed,
	{9, 4}: DoorIdleOpen,
	{1, 6}: DoorStarting, // brief transitional state at motor activation
	{1, 2}: DoorOpening,
	{1, 3}: DoorClosing,
	{3, 1}: DoorStoppedMidOpen,
	{2, 1}: DoorStoppedMidClose,
	{5, 3}: DoorArrivedOpen,
	{2, 2}: DoorArrivedClosed, // or IDLE_CLOSED with light on, see sub-state
	{1, 1}: DoorObstructionReversal,
}

// doorDescriptions maps door state tags to human-readable text.
var doorDescriptions = map[string]string{
	DoorIdleClosed:          "Door closed (idle)",
	DoorIdleOpen:            "Door open (idle)",
	DoorOpening:             "Door opening",
	DoorClosing:             "Door closing",
	DoorStoppedMidOpen:      "Door stopped mid-travel (was opening)",
	DoorStoppedMidClose:     "Door stopped mid-travel (was closing)",
	DoorArrivedOpen:         "Door just arrived at fully open",
	DoorArrivedClosed:       "Door just arrived at fully closed",
	DoorObstructionReversal: "Obstruction detected, reversing",
	DoorStarting:            "Motor starting (brief transitional)",
}

// subStates maps payload positions 2-4 to the motion sub-state.
var subStates = map[[3]int]string{
	{3, 4, 4}: SubActive,      // in motion, stopped, or transitional
	{3, 4, 2}: SubSettled,     // stable idle state (light on, door closed)
	{3, 3, 3}: SubObstruction, // obstruction detected, holding position
	{3, 3, 4}: SubReversing,   // obstruction reversal in progress
	{4, 2, 1}: SubIdleOff,     // stable idle (light off, door closed)
	{4, 3, 1}: SubAtEndpoint,  // just arrived at travel endpoint (variant 1)
	{4, 3, 2}: SubAtEndpoint2, // just arrived at travel endpoint (variant 2)
	{4, 4, 1}: SubActivating,  // motor activating (variant 1)
	{4, 4, 9}: SubActivating2, // motor activating (variant 2)
	{3, 9, 1}: SubIdleOpen,    // stable idle (door open)
	{1, 3, 3}: SubReversalInit,
	{1, 3, 4}: SubReversalInit2,
}

// lightPatterns maps payload positions 1-4 to the work-light state.
// Only meaningful while the door is closed; the patterns overlap the
// door-state symbols.
var lightPatterns = map[[4]int]string{
	{6, 4, 2, 1}: LightOff,
	{2, 3, 4, 2}: LightOn,
}

// Decode interprets a status payload (the symbols after the 8-symbol
// header) into a state snapshot. It never fails: pairs missing from the
// tables are reported with their literal values, and short payloads
// simply leave fields empty. The position field (payload index 5 onward)
// is decoded separately from the (L,H) pairs by the position package.
func Decode(payload []int) *trace.DecodedStatus {
	result := &trace.DecodedStatus{
		RawPayload: append([]int(nil), payload...),
	}

	if len(payload) < 2 {
		return result
	}

	doorKey := [2]int{payload[0], payload[1]}

	door, doorKnown := doorStates[doorKey]
	if doorKnown {
		result.Door = door
		result.DoorDescription = doorDescriptions[door]
	} else {
		result.Door = fmt.Sprintf("UNKNOWN(%d,%d)", payload[0], payload[1])
	}

	if len(payload) < 5 {
		return result
	}

	subKey := [3]int{payload[2], payload[3], payload[4]}
	if sub, ok := subStates[subKey]; ok {
		result.SubState = sub
	} else {
		result.SubState = fmt.Sprintf("(%d,%d,%d)", payload[2], payload[3], payload[4])
	}

	// The light state only exists in the closed (or unrecognized) door
	// states; in motion the same positions carry other data.
	if doorKnown && door != DoorIdleClosed && door != DoorArrivedClosed {
		return result
	}

	lightKey := [4]int{payload[1], payload[2], payload[3], payload[4]}

	light, ok := lightPatterns[lightKey]
	if !ok {
		return result
	}

	result.Light = light

	// Closed-idle-with-light-on overlaps bit-for-bit with the arrival
	// state; the settled sub-state disambiguates them.
	if light == LightOn && door == DoorArrivedClosed && result.SubState == SubSettled {
		result.Door = DoorIdleClosed
		result.DoorDescription = "Door closed (idle), light on"
	}

	return result
}
