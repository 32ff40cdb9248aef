package model

import "testing"

func TestRunState_IsActive(t *testing.T) {
	tests := []struct {
		state    RunState
		expected bool
	}{
		{RunStateIdle, false},
		{RunStateConverting, true},
		{RunState(""), false},
	}

	for _, test := range tests {
		result := test.state.IsActive()
		if result != test.expected {
			t.Errorf("RunState(%s).IsActive() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestRunState_String(t *testing.T) {
	state := RunStateConverting
	expected := "Converting"
	result := state.String()

	if result != expected {
		t.Errorf("RunState.String() = %s, expected %s", result, expected)
	}
}
