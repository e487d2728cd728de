package main

import (
	"flag"
	"testing"
)

func TestPeriodFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"complete", []string{"-owner", "auth0|abc", "-year", "2024", "-month", "2"}, false},
		{"missing owner", []string{"-year", "2024", "-month", "2"}, true},
		{"month out of range", []string{"-owner", "auth0|abc", "-year", "2024", "-month", "13"}, true},
		{"missing year", []string{"-owner", "auth0|abc", "-month", "2"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p periodFlags
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			p.register(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse: %v", err)
			}
			err := p.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCommandsHaveUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range commands {
		if seen[c.Name()] {
			t.Errorf("duplicate command %q", c.Name())
		}
		seen[c.Name()] = true
		if c.Synopsis() == "" || c.Usage() == "" {
			t.Errorf("command %q lacks help text", c.Name())
		}
	}
}
