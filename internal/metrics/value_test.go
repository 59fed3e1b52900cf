package metrics

import (
	"encoding/json"
	"testing"
)

func TestValueRoundTripKinds(t *testing.T) {
	tests := []struct {
		in      string
		str     string
		numeric bool
	}{
		{`247`, "247", true},
		{`8.4`, "8.4", true},
		{`"15.2%"`, "15.2%", false},
		{`null`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var v Value
			if err := json.Unmarshal([]byte(tt.in), &v); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if _, numeric := v.Float(); v.String() != tt.str || numeric != tt.numeric {
				t.Errorf("got %q numeric=%v", v.String(), numeric)
			}
			out, err := json.Marshal(v)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(out) != tt.in {
				t.Errorf("marshal changed kind: %s -> %s", tt.in, out)
			}
		})
	}
}

func TestValueRejectsObjects(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`{"a":1}`), &v); err == nil {
		t.Error("expected error for object value")
	}
}

func TestValueFloat(t *testing.T) {
	if f, ok := NumberValue(8.4).Float(); !ok || f != 8.4 {
		t.Errorf("NumberValue: %v %v", f, ok)
	}
	if _, ok := StringValue("15%").Float(); ok {
		t.Error("string value must not report a number")
	}
}

func TestParseDomain(t *testing.T) {
	for _, in := range []string{"engagement_metrics", "engagement"} {
		if d, err := ParseDomain(in); err != nil || d != DomainEngagement {
			t.Errorf("ParseDomain(%q) = %v, %v", in, d, err)
		}
	}
	if d, err := ParseDomain("buyer-intent"); err != nil || d != DomainBuyerIntent {
		t.Errorf("slug lookup failed: %v %v", d, err)
	}
	if _, err := ParseDomain("weather"); err == nil {
		t.Error("expected error for unknown domain")
	}
	if DomainAdvocates.Title() != "Advocates" {
		t.Errorf("title: %s", DomainAdvocates.Title())
	}
}
