package domain

import (
	"encoding/json"
	"testing"
)

func TestAckStatus_IsTerminal(t *testing.T) {
	cases := []struct {
		name   string
		status *AckStatus
		want   bool
	}{
		{"delivery ack", &AckStatus{Name: AckDelivery}, true},
		{"read ack", &AckStatus{Name: AckRead}, true},
		{"server ack", &AckStatus{Name: AckServer}, false},
		{"pending", &AckStatus{Name: AckPending}, false},
		{"numeric read placeholder", &AckStatus{Code: 2, Numeric: true}, false},
		{"lowercase name", &AckStatus{Name: "delivery_ack"}, false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		if got := tc.status.IsTerminal(); got != tc.want {
			t.Errorf("%s: IsTerminal() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAckStatus_JSONKeepsOriginalForm(t *testing.T) {
	named, _ := ParseAckStatus("DELIVERY_ACK")
	numeric, _ := ParseAckStatus(float64(2))

	b, err := json.Marshal(map[string]any{"a": named, "b": numeric})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `{"a":"DELIVERY_ACK","b":2}` {
		t.Errorf("unexpected encoding: %s", b)
	}

	var back struct {
		A AckStatus `json:"a"`
		B AckStatus `json:"b"`
	}
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.A.Name != AckDelivery || back.A.Numeric {
		t.Errorf("unexpected named status: %+v", back.A)
	}
	if !back.B.Numeric || back.B.Code != 2 {
		t.Errorf("unexpected numeric status: %+v", back.B)
	}
}

func TestAckStatus_LabelForUnknownCode(t *testing.T) {
	s := &AckStatus{Code: 9, Numeric: true}
	if got := s.Label(); got != "Unknown (9)" {
		t.Errorf("expected Unknown (9), got %q", got)
	}
}

func TestStageForAck(t *testing.T) {
	if stage, ok := StageForAck(&AckStatus{Name: AckRead}); !ok || stage != StageRead {
		t.Errorf("expected read stage, got %q (ok=%v)", stage, ok)
	}
	if _, ok := StageForAck(&AckStatus{Name: "read_ack"}); ok {
		t.Errorf("ack names are matched exactly")
	}
	if _, ok := StageForAck(&AckStatus{Code: 1, Numeric: true}); ok {
		t.Errorf("numeric codes must not map to a stage")
	}
	if StageReplied.Rank() <= StageRead.Rank() {
		t.Errorf("replied must rank above read")
	}
}

func TestParseAckStatus_NumericCodes(t *testing.T) {
	cases := []struct {
		name string
		in   any
		ok   bool
		code int
	}{
		{"integral float", float64(3), true, 3},
		{"zero", float64(0), true, 0},
		{"fraction", 2.5, false, 0},
		{"out of range", float64(1e12), false, 0},
		{"json number", json.Number("1"), true, 1},
		{"json number fraction", json.Number("1.5"), false, 0},
	}

	for _, tc := range cases {
		s, ok := ParseAckStatus(tc.in)
		if ok != tc.ok {
			t.Errorf("%s: ok = %v, want %v", tc.name, ok, tc.ok)
			continue
		}
		if ok && (!s.Numeric || s.Code != tc.code) {
			t.Errorf("%s: got %+v, want code %d", tc.name, s, tc.code)
		}
	}
}
