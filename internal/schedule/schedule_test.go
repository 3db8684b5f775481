package schedule

import "testing"

func TestDecodeObjectForm(t *testing.T) {
	raw := `{"monday":{"enabled":true,"weeks":["every"]},"wednesday":{"enabled":true,"weeks":["first","third"]}}`
	s, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(s) != 2 {
		t.Fatalf("expected 2 days, got %d", len(s))
	}
	if got := s["monday"].Weeks; len(got) != 1 || got[0] != WeekEvery {
		t.Errorf("monday weeks = %v", got)
	}
	if got := s["wednesday"].Weeks; len(got) != 2 || got[0] != WeekFirst || got[1] != WeekThird {
		t.Errorf("wednesday weeks = %v", got)
	}
}

func TestDecodeLegacyBooleanForm(t *testing.T) {
	s, err := Decode(`{"monday":true,"tuesday":false}`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	entry, ok := s["monday"]
	if !ok || !entry.Enabled {
		t.Fatalf("monday not enabled: %+v", s)
	}
	if len(entry.Weeks) != 1 || entry.Weeks[0] != WeekEvery {
		t.Errorf("legacy true should mean every week, got %v", entry.Weeks)
	}
	if _, ok := s["tuesday"]; ok {
		t.Error("legacy false day should be dropped")
	}
}

func TestDecodeEmptyAndNull(t *testing.T) {
	for _, raw := range []string{"", "  ", "null"} {
		s, err := Decode(raw)
		if err != nil {
			t.Fatalf("Decode(%q): %v", raw, err)
		}
		if len(s) != 0 {
			t.Errorf("Decode(%q) = %v, want empty", raw, s)
		}
	}
}

func TestDecodeDropsUnknownKeysAndDisabledDays(t *testing.T) {
	raw := `{"sunday":{"enabled":true,"weeks":["every"]},"friday":{"enabled":false,"weeks":["every"]},"monday":{"enabled":true,"weeks":["second"]}}`
	s, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(s) != 1 {
		t.Fatalf("expected only monday, got %v", s)
	}
	if _, ok := s["monday"]; !ok {
		t.Error("monday missing")
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	if _, err := Decode("{broken"); err == nil {
		t.Error("expected error for invalid json")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	original := Schedule{
		"monday": {Enabled: true, Weeks: []WeekSelector{WeekEvery}},
		"friday": {Enabled: true, Weeks: []WeekSelector{WeekSecond, WeekFourth}},
	}
	encoded, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded) != len(original) {
		t.Fatalf("round trip lost days: %v", decoded)
	}
	for day, want := range original {
		got, ok := decoded[day]
		if !ok {
			t.Fatalf("day %s missing after round trip", day)
		}
		if len(got.Weeks) != len(want.Weeks) {
			t.Errorf("day %s weeks = %v, want %v", day, got.Weeks, want.Weeks)
		}
	}
}

func TestEncodeSkipsDisabledDays(t *testing.T) {
	encoded, err := Encode(Schedule{
		"monday":  {Enabled: false, Weeks: []WeekSelector{WeekEvery}},
		"tuesday": {Enabled: true, Weeks: []WeekSelector{WeekEvery}},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := decoded["monday"]; ok {
		t.Error("disabled day survived encode")
	}
	if _, ok := decoded["tuesday"]; !ok {
		t.Error("enabled day lost in encode")
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		in   Schedule
		want string
	}{
		{
			name: "empty",
			in:   Schedule{},
			want: "なし",
		},
		{
			name: "every week single day",
			in:   Schedule{"monday": {Enabled: true, Weeks: []WeekSelector{WeekEvery}}},
			want: "毎週月",
		},
		{
			name: "specific weeks",
			in:   Schedule{"wednesday": {Enabled: true, Weeks: []WeekSelector{WeekFirst, WeekThird}}},
			want: "第1・第3水",
		},
		{
			name: "multiple days in weekday order",
			in: Schedule{
				"friday": {Enabled: true, Weeks: []WeekSelector{WeekSecond}},
				"monday": {Enabled: true, Weeks: []WeekSelector{WeekEvery}},
			},
			want: "毎週月, 第2金",
		},
		{
			name: "disabled day ignored",
			in:   Schedule{"monday": {Enabled: false, Weeks: []WeekSelector{WeekEvery}}},
			want: "なし",
		},
		{
			name: "enabled day without weeks ignored",
			in:   Schedule{"monday": {Enabled: true}},
			want: "なし",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.in); got != tt.want {
				t.Errorf("Summarize = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLegacyBooleanEquivalentToExplicitEvery(t *testing.T) {
	legacy, err := Decode(`{"monday":true}`)
	if err != nil {
		t.Fatalf("Decode legacy: %v", err)
	}
	explicit, err := Decode(`{"monday":{"enabled":true,"weeks":["every"]}}`)
	if err != nil {
		t.Fatalf("Decode explicit: %v", err)
	}
	if Summarize(legacy) != Summarize(explicit) {
		t.Errorf("legacy %q != explicit %q", Summarize(legacy), Summarize(explicit))
	}
}
