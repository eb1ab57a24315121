package util

import "testing"

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue bool
		want         bool
	}{
		{name: "unset returns default", value: "", defaultValue: true, want: true},
		{name: "true", value: "true", defaultValue: false, want: true},
		{name: "numeric one", value: "1", defaultValue: false, want: true},
		{name: "yes uppercase", value: "YES", defaultValue: false, want: true},
		{name: "on with spaces", value: "  on  ", defaultValue: false, want: true},
		{name: "false", value: "false", defaultValue: true, want: false},
		{name: "numeric zero", value: "0", defaultValue: true, want: false},
		{name: "off", value: "off", defaultValue: true, want: false},
		{name: "invalid returns default", value: "maybe", defaultValue: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "FITTRACK_TEST_BOOL"
			if tt.value != "" {
				t.Setenv(key, tt.value)
			}
			if got := ParseBoolEnv(key, tt.defaultValue); got != tt.want {
				t.Errorf("ParseBoolEnv(%q, %v) = %v, want %v", tt.value, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestParseIntEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue int
		want         int
	}{
		{name: "unset returns default", value: "", defaultValue: 30, want: 30},
		{name: "valid integer", value: "60", defaultValue: 30, want: 60},
		{name: "negative integer", value: "-5", defaultValue: 30, want: -5},
		{name: "with spaces", value: " 15 ", defaultValue: 30, want: 15},
		{name: "invalid returns default", value: "abc", defaultValue: 30, want: 30},
		{name: "float returns default", value: "1.5", defaultValue: 30, want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "FITTRACK_TEST_INT"
			if tt.value != "" {
				t.Setenv(key, tt.value)
			}
			if got := ParseIntEnv(key, tt.defaultValue); got != tt.want {
				t.Errorf("ParseIntEnv(%q, %d) = %d, want %d", tt.value, tt.defaultValue, got, tt.want)
			}
		})
	}
}
