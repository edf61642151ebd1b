package alert

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func makeAlerts(n int) []Alert {
	alerts := make([]Alert, n)
	for i := range alerts {
		alerts[i] = Alert{
			UID:     fmt.Sprintf("a%d", i),
			SrcAddr: fmt.Sprintf("10.0.0.%d", i),
			SrcPort: 40000 + i,
			DstAddr: "192.168.1.1",
			DstPort: 443,
		}
	}
	return alerts
}

func TestNewStore_TooFewAlerts(t *testing.T) {
	_, err := NewStore(makeAlerts(MinAlerts - 1))
	if err == nil {
		t.Fatal("Expected error for too few alerts")
	}
	if !errors.Is(err, ErrTooFewAlerts) {
		t.Errorf("Expected ErrTooFewAlerts, got %v", err)
	}
	if !IsPrecondition(err) {
		t.Error("Expected too few alerts to be a precondition error")
	}
}

func TestNewStore_DuplicateUID(t *testing.T) {
	alerts := makeAlerts(6)
	alerts[4].UID = alerts[1].UID

	_, err := NewStore(alerts)
	if !errors.Is(err, ErrDuplicateUID) {
		t.Fatalf("Expected ErrDuplicateUID, got %v", err)
	}

	var storeErr *Error
	if !errors.As(err, &storeErr) {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if storeErr.Index != 4 || storeErr.UID != "a1" {
		t.Errorf("Expected uid a1 at index 4, got %q at %d", storeErr.UID, storeErr.Index)
	}
	if !strings.Contains(err.Error(), "first seen at index 1") {
		t.Errorf("Expected message to name first occurrence, got %q", err.Error())
	}
}

func TestNewStore_InvalidAlert(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Alert)
		field  string
	}{
		{"empty uid", func(a *Alert) { a.UID = "" }, "UID"},
		{"negative source port", func(a *Alert) { a.SrcPort = -1 }, "SrcPort"},
		{"destination port overflow", func(a *Alert) { a.DstPort = 70000 }, "DstPort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := makeAlerts(5)
			tt.mutate(&alerts[2])

			_, err := NewStore(alerts)
			if !errors.Is(err, ErrInvalidAlert) {
				t.Fatalf("Expected ErrInvalidAlert, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Expected error to mention %s, got %q", tt.field, err.Error())
			}
		})
	}
}

func TestStore_Lookup(t *testing.T) {
	alerts := makeAlerts(5)
	alerts[3].Extra = map[string]any{"signature": "ET SCAN"}
	s, err := NewStore(alerts)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	got, err := s.Lookup("a3")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if got.SrcAddr != "10.0.0.3" || got.Extra["signature"] != "ET SCAN" {
		t.Errorf("Unexpected alert %+v", got)
	}

	if _, err := s.Lookup("missing"); !errors.Is(err, ErrUnknownUID) {
		t.Errorf("Expected ErrUnknownUID, got %v", err)
	}

	if i, ok := s.Index("a2"); !ok || i != 2 {
		t.Errorf("Expected index 2, got %d (%v)", i, ok)
	}
}

func TestStore_LookupAllFailsLoudly(t *testing.T) {
	s, err := NewStore(makeAlerts(5))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	got, err := s.LookupAll([]string{"a4", "a0"})
	if err != nil {
		t.Fatalf("LookupAll failed: %v", err)
	}
	if got[0].UID != "a4" || got[1].UID != "a0" {
		t.Errorf("Expected lookup order preserved, got %v", got)
	}

	got, err = s.LookupAll([]string{"a0", "ghost", "a1"})
	if !errors.Is(err, ErrUnknownUID) {
		t.Fatalf("Expected ErrUnknownUID, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected no partial result, got %v", got)
	}
	if IsPrecondition(err) {
		t.Error("Lookup misses are not precondition errors")
	}
}

func TestStore_IsImmutableView(t *testing.T) {
	alerts := makeAlerts(5)
	s, err := NewStore(alerts)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	alerts[0].SrcAddr = "changed"
	if s.At(0).SrcAddr != "10.0.0.0" {
		t.Error("Store should not observe caller mutations")
	}

	all := s.All()
	all[1].SrcAddr = "changed"
	if s.At(1).SrcAddr != "10.0.0.1" {
		t.Error("All should return a copy")
	}

	uids := s.UIDs([]int{4, 0})
	if uids[0] != "a4" || uids[1] != "a0" {
		t.Errorf("Unexpected uids %v", uids)
	}
}

func TestAlert_String(t *testing.T) {
	a := Alert{UID: "x", SrcAddr: "1.1.1.1", SrcPort: 1, DstAddr: "2.2.2.2", DstPort: 2}
	if a.String() != "x 1.1.1.1:1 -> 2.2.2.2:2" {
		t.Errorf("Unexpected String() %q", a.String())
	}
	if a.SelfTraffic() {
		t.Error("Expected no self traffic")
	}
}
