package types

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

func validConfig() AppConfig {
	return AppConfig{
		Output: OutputConfig{Dir: "plantumls", File: "uml-garden.puml"},
		Render: RenderConfig{Enabled: true, Command: "plantuml", Timeout: time.Minute},
		Scan:   ScanConfig{RootObject: "object"},
		Log:    LogConfig{Dir: "logs"},
		Watch:  WatchConfig{Debounce: 300 * time.Millisecond},
	}
}

func TestAppConfig_Validation(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"valid", func(*AppConfig) {}, false},
		{"missing output dir", func(c *AppConfig) { c.Output.Dir = "" }, true},
		{"output not puml", func(c *AppConfig) { c.Output.File = "diagram.png" }, true},
		{"render enabled without command", func(c *AppConfig) { c.Render.Command = "" }, true},
		{"render disabled without command", func(c *AppConfig) { c.Render.Enabled = false; c.Render.Command = "" }, false},
		{"missing root object", func(c *AppConfig) { c.Scan.RootObject = "" }, true},
		{"missing log dir", func(c *AppConfig) { c.Log.Dir = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := validate.Struct(&cfg)
			if tt.wantErr && err == nil {
				t.Errorf("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
