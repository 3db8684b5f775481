package model

import (
	"testing"
	"time"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestWasteTypeActiveOn(t *testing.T) {
	today := time.Date(2026, 7, 15, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		name string
		wt   WasteType
		want bool
	}{
		{
			name: "active without window",
			wt:   WasteType{IsActive: true},
			want: true,
		},
		{
			name: "inactive flag wins over open window",
			wt:   WasteType{IsActive: false},
			want: false,
		},
		{
			name: "inside window",
			wt: WasteType{
				IsActive:   true,
				ValidFrom:  datePtr(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)),
				ValidUntil: datePtr(time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)),
			},
			want: true,
		},
		{
			name: "window starts tomorrow",
			wt: WasteType{
				IsActive:  true,
				ValidFrom: datePtr(time.Date(2026, 7, 16, 0, 0, 0, 0, time.UTC)),
			},
			want: false,
		},
		{
			name: "window ended yesterday",
			wt: WasteType{
				IsActive:   true,
				ValidUntil: datePtr(time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)),
			},
			want: false,
		},
		{
			name: "boundary days are inclusive",
			wt: WasteType{
				IsActive:   true,
				ValidFrom:  datePtr(time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)),
				ValidUntil: datePtr(time.Date(2026, 7, 15, 23, 59, 0, 0, time.UTC)),
			},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.wt.ActiveOn(today); got != tt.want {
				t.Errorf("ActiveOn = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVehicleDisplayColor(t *testing.T) {
	if got := (Vehicle{Color: "#2563eb"}).DisplayColor(); got != "#2563eb" {
		t.Errorf("DisplayColor = %q", got)
	}
	if got := (Vehicle{}).DisplayColor(); got != NeutralColor {
		t.Errorf("DisplayColor = %q, want neutral fallback", got)
	}
}
