package trace

import "testing"

func TestNewStampDecode(t *testing.T) {
	tests := []struct {
		name  string
		cpuID int
		seq   uint32
	}{
		{"zero", 0, 0},
		{"cpu only", 5, 0},
		{"seq only", 0, 1234},
		{"cpu and seq", 3, 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStamp(tt.cpuID, tt.seq)
			gotCPU, gotSeq := s.Decode()
			if gotCPU != tt.cpuID || gotSeq != tt.seq {
				t.Errorf("NewStamp(%d, %d).Decode() = (%d, %d), want (%d, %d)",
					tt.cpuID, tt.seq, gotCPU, gotSeq, tt.cpuID, tt.seq)
			}
		})
	}
}

func TestStampString(t *testing.T) {
	s := NewStamp(2, 7)
	if got, want := s.String(), "7@2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
