package id_test

import (
	"strings"
	"testing"

	"github.com/xraph/tokenledger/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"EventID", id.NewEventID, "evt_"},
		{"ScheduleID", id.NewScheduleID, "vest_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixEvent)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixEvent {
		t.Errorf("expected prefix %q, got %q", id.PrefixEvent, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"EventID", id.NewEventID, id.ParseEventID},
		{"ScheduleID", id.NewScheduleID, id.ParseScheduleID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()

			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if parsed.String() != original.String() {
				t.Errorf("round trip: got %q, want %q", parsed.String(), original.String())
			}
		})
	}
}

func TestParseWithPrefixMismatch(t *testing.T) {
	evt := id.NewEventID()

	if _, err := id.ParseScheduleID(evt.String()); err == nil {
		t.Error("expected error parsing event ID with schedule prefix")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"Garbage", "not a typeid"},
		{"BadSuffix", "evt_!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := id.Parse(tt.input); err == nil {
				t.Errorf("Parse(%q): expected error", tt.input)
			}
		})
	}
}

func TestNilID(t *testing.T) {
	if !id.Nil.IsNil() {
		t.Error("Nil.IsNil() = false")
	}
	if id.Nil.String() != "" {
		t.Errorf("Nil.String() = %q, want empty", id.Nil.String())
	}
}

func TestTextRoundTrip(t *testing.T) {
	original := id.NewScheduleID()

	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}

	var got id.ID
	if err := got.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if got.String() != original.String() {
		t.Errorf("round trip: got %q, want %q", got.String(), original.String())
	}
}
