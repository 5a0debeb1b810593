package cli

import (
	"reflect"
	"testing"
)

func TestParseNoArgsDefaultsToNext(t *testing.T) {
	opts, err := Parse([]string{})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if opts.Command != "next" {
		t.Errorf("Command = %q, want %q", opts.Command, "next")
	}
	if opts.ShowHelp {
		t.Error("ShowHelp = true, want false")
	}
	if opts.ShowVersion {
		t.Error("ShowVersion = true, want false")
	}
}

func TestParseHelp(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"short flag -h", []string{"-h"}},
		{"long flag --help", []string{"--help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse(%v) error: %v", tt.args, err)
			}
			if !opts.ShowHelp {
				t.Errorf("Parse(%v) ShowHelp = false, want true", tt.args)
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"short flag -v", []string{"-v"}},
		{"long flag --version", []string{"--version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse(%v) error: %v", tt.args, err)
			}
			if !opts.ShowVersion {
				t.Errorf("Parse(%v) ShowVersion = false, want true", tt.args)
			}
		})
	}
}

func TestParseSubcommands(t *testing.T) {
	for _, cmd := range []string{"waiting", "inbox", "all", "contexts", "edit"} {
		t.Run(cmd, func(t *testing.T) {
			opts, err := Parse([]string{cmd})
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if opts.Command != cmd {
				t.Errorf("Command = %q, want %q", opts.Command, cmd)
			}
		})
	}
}

func TestParseCheckoffRequiresID(t *testing.T) {
	if _, err := Parse([]string{"checkoff"}); err == nil {
		t.Fatal("Parse() error = nil, want error for missing id")
	}
	opts, err := Parse([]string{"checkoff", "3f9c"})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if opts.Command != "checkoff" || opts.CheckoffID != "3f9c" {
		t.Errorf("opts = %+v, want Command=checkoff CheckoffID=3f9c", opts)
	}
}

func TestParseContextAndExcludeFlags(t *testing.T) {
	opts, err := Parse([]string{"next", "--context", "home", "--context", "phone", "--exclude", "errand"})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !reflect.DeepEqual(opts.Context, []string{"home", "phone"}) {
		t.Errorf("Context = %v, want [home phone]", opts.Context)
	}
	if !reflect.DeepEqual(opts.Exclude, []string{"errand"}) {
		t.Errorf("Exclude = %v, want [errand]", opts.Exclude)
	}
}

func TestParseNowAndForceRefresh(t *testing.T) {
	opts, err := Parse([]string{"--now", "2013-09-04T01:00:00Z", "--force-refresh"})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if opts.Now != "2013-09-04T01:00:00Z" {
		t.Errorf("Now = %q, want RFC3339 instant", opts.Now)
	}
	if !opts.ForceRefresh {
		t.Error("ForceRefresh = false, want true")
	}
}

func TestParseDebug(t *testing.T) {
	opts, err := Parse([]string{"--debug"})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !opts.Debug {
		t.Error("Debug = false, want true")
	}
}

func TestUsage(t *testing.T) {
	usage := Usage()
	if usage == "" {
		t.Error("Usage() returned empty string")
	}
	for _, phrase := range []string{"vtd", "checkoff", "--context", "--now", "--help", "--version"} {
		if !contains(usage, phrase) {
			t.Errorf("Usage() should contain %q", phrase)
		}
	}
}

func TestVersionString(t *testing.T) {
	Version = "1.0.0"
	vs := VersionString()
	expected := "vtd version 1.0.0"
	if vs != expected {
		t.Errorf("VersionString() = %q, want %q", vs, expected)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
