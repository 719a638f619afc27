package report

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// RollState is the roll instruction for an instrument.
type RollState string

const (
	StateNoRoll        RollState = "No_Roll"
	StatePassive       RollState = "Passive"
	StateForce         RollState = "Force"
	StateForceOutright RollState = "Force_Outright"
	StateRollAdjusted  RollState = "Roll_Adjusted"
	StateClose         RollState = "Close"
	StateNoOpen        RollState = "No_Open"
)

var rollStates = []RollState{
	StateNoRoll,
	StatePassive,
	StateForce,
	StateForceOutright,
	StateRollAdjusted,
	StateClose,
	StateNoOpen,
}

// RollStates lists every state name in the backend's order.
func RollStates() []string {
	out := make([]string, len(rollStates))
	for i, st := range rollStates {
		out[i] = string(st)
	}
	return out
}

// ParseRollState returns the RollState named s.
func ParseRollState(s string) (RollState, error) {
	for _, st := range rollStates {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown roll state %q", s)
}

// RollCommand asks the backend to move an instrument to a new roll state.
// A Roll_Adjusted command that is not Confirmed only previews the adjusted
// prices.
type RollCommand struct {
	Instrument string
	State      RollState
	Confirmed  bool
}

// Validate checks the command before it is sent.
func (c RollCommand) Validate() error {
	if c.Instrument == "" {
		return fmt.Errorf("instrument is required")
	}
	if _, err := ParseRollState(string(c.State)); err != nil {
		return err
	}
	return nil
}

// Form encodes the command as the backend's form fields.
func (c RollCommand) Form() url.Values {
	v := url.Values{}
	v.Set("instrument", c.Instrument)
	v.Set("state", string(c.State))
	v.Set("confirmed", strconv.FormatBool(c.Confirmed))
	return v
}

// RollKind identifies which shape a roll command response took.
type RollKind int

const (
	// KindUnrecognized covers every response without a known marker,
	// including the empty object sent when a preview cannot be built.
	KindUnrecognized RollKind = iota
	// KindRollAdjusted means the adjusted prices were rolled and every
	// roll row may have changed.
	KindRollAdjusted
	// KindPreviewSingle carries proposed adjusted prices for confirmation.
	KindPreviewSingle
	// KindPreviewMultiple carries proposed multiple (carry/price/forward)
	// prices for confirmation.
	KindPreviewMultiple
	// KindStatePatch carries the new state and next allowable states of
	// one instrument.
	KindStatePatch
)

func (k RollKind) String() string {
	switch k {
	case KindRollAdjusted:
		return "roll_adjusted"
	case KindPreviewSingle:
		return "preview_single"
	case KindPreviewMultiple:
		return "preview_multiple"
	case KindStatePatch:
		return "state_patch"
	default:
		return "unrecognized"
	}
}

// SinglePrice is the current and proposed adjusted price on one date.
// Current is nil for the newly added date.
type SinglePrice struct {
	Current *Text `json:"current"`
	New     Text  `json:"new"`
}

// MultiplePrice is the current and proposed multiple prices on one date.
type MultiplePrice struct {
	Current *MultipleCurrent `json:"current"`
	New     MultipleNew      `json:"new"`
}

type MultipleCurrent struct {
	Carry   Text `json:"CARRY"`
	Price   Text `json:"PRICE"`
	Forward Text `json:"FORWARD"`
}

type MultipleNew struct {
	Carry           Text `json:"CARRY"`
	CarryContract   Text `json:"CARRY_CONTRACT"`
	Price           Text `json:"PRICE"`
	PriceContract   Text `json:"PRICE_CONTRACT"`
	Forward         Text `json:"FORWARD"`
	ForwardContract Text `json:"FORWARD_CONTRACT"`
}

// RollResponse is the decoded reply to a RollCommand. Kind says which of
// the other fields are meaningful.
type RollResponse struct {
	Kind      RollKind
	NewState  string
	Allowable []string
	Single    Ordered[SinglePrice]
	Multiple  Ordered[MultiplePrice]
}

// DecodeRollResponse classifies a roll command reply by the keys present,
// checked in order: new_state of Roll_Adjusted, single, multiple,
// allowable.
func DecodeRollResponse(b []byte) (RollResponse, error) {
	var raw struct {
		NewState  *string                 `json:"new_state"`
		Allowable *[]string               `json:"allowable"`
		Single    *Ordered[SinglePrice]   `json:"single"`
		Multiple  *Ordered[MultiplePrice] `json:"multiple"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return RollResponse{}, fmt.Errorf("decode roll response: %w", err)
	}

	var resp RollResponse
	if raw.NewState != nil {
		resp.NewState = *raw.NewState
	}
	if raw.Allowable != nil {
		resp.Allowable = *raw.Allowable
	}
	if raw.Single != nil {
		resp.Single = *raw.Single
	}
	if raw.Multiple != nil {
		resp.Multiple = *raw.Multiple
	}

	switch {
	case resp.NewState == string(StateRollAdjusted):
		resp.Kind = KindRollAdjusted
	case raw.Single != nil:
		resp.Kind = KindPreviewSingle
	case raw.Multiple != nil:
		resp.Kind = KindPreviewMultiple
	case raw.Allowable != nil:
		resp.Kind = KindStatePatch
	default:
		resp.Kind = KindUnrecognized
	}
	return resp, nil
}
