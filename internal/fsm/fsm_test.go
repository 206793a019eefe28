package fsm

import "testing"

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		name    string
		from    State
		event   Event
		want    State
		wantErr bool
	}{
		{"start from idle", StateIdle, EventStart, StateRecording, false},
		{"pause while recording", StateRecording, EventPause, StatePaused, false},
		{"resume while paused", StatePaused, EventResume, StateRecording, false},
		{"stop while recording", StateRecording, EventStop, StateTranscribing, false},
		{"stop while paused", StatePaused, EventStop, StateTranscribing, false},
		{"cancel while recording", StateRecording, EventCancel, StateIdle, false},
		{"cancel while paused", StatePaused, EventCancel, StateIdle, false},
		{"finish transcription", StateTranscribing, EventFinish, StateIdle, false},
		{"stop while idle rejected", StateIdle, EventStop, StateIdle, true},
		{"cancel while idle rejected", StateIdle, EventCancel, StateIdle, true},
		{"start while recording rejected", StateRecording, EventStart, StateRecording, true},
		{"start while transcribing rejected", StateTranscribing, EventStart, StateTranscribing, true},
		{"cancel while transcribing rejected", StateTranscribing, EventCancel, StateTranscribing, true},
		{"resume while recording rejected", StateRecording, EventResume, StateRecording, true},
		{"pause while paused rejected", StatePaused, EventPause, StatePaused, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Transition(tc.from, tc.event)
			if got != tc.want {
				t.Fatalf("Transition(%s, %s) = %s, want %s", tc.from, tc.event, got, tc.want)
			}
			if (err != nil) != tc.wantErr {
				t.Fatalf("Transition(%s, %s) error = %v, wantErr=%v", tc.from, tc.event, err, tc.wantErr)
			}
		})
	}
}

func TestTransitionUnknownState(t *testing.T) {
	if _, err := Transition(State("bogus"), EventStart); err == nil {
		t.Fatal("expected error for unknown state")
	}
}
