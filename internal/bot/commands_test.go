package bot

import (
	"reflect"
	"testing"
)

func TestParseDays(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"пн,вт,чт", []string{"MON", "TUE", "THU"}},
		{"Пн, ВТ ;чт", []string{"MON", "TUE", "THU"}},
		{"mon,sun", []string{"MON", "SUN"}},
		{"пн,пн,вт", []string{"MON", "TUE"}},
		{"понедельник", nil},
		{"", nil},
	}
	for _, tc := range tests {
		if got := parseDays(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("parseDays(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDelay(t *testing.T) {
	tests := []struct {
		in      string
		h, m    int
		ok      bool
	}{
		{"1:30", 1, 30, true},
		{"0:05", 0, 5, true},
		{"26:00", 26, 0, true},
		{"1:60", 0, 0, false},
		{"-1:10", 0, 0, false},
		{"90", 0, 0, false},
		{"a:b", 0, 0, false},
	}
	for _, tc := range tests {
		h, m, ok := parseDelay(tc.in)
		if h != tc.h || m != tc.m || ok != tc.ok {
			t.Errorf("parseDelay(%q) = (%d, %d, %v), want (%d, %d, %v)", tc.in, h, m, ok, tc.h, tc.m, tc.ok)
		}
	}
}

func TestParseTimes(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"09:00", []string{"09:00"}},
		{"09:00, 18:30", []string{"09:00", "18:30"}},
		{"9:00", []string{"9:00"}},
		{"09:00, 25:00", nil},
		{"noon", nil},
	}
	for _, tc := range tests {
		if got := parseTimes(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("parseTimes(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTimePattern(t *testing.T) {
	valid := []string{"00:00", "9:05", "09:00", "23:59"}
	invalid := []string{"24:00", "9:5", "12:60", "0900", ""}
	for _, s := range valid {
		if !timePattern.MatchString(s) {
			t.Errorf("%q should match", s)
		}
	}
	for _, s := range invalid {
		if timePattern.MatchString(s) {
			t.Errorf("%q should not match", s)
		}
	}
}
