package config_test

import (
	"path/filepath"
	"testing"

	"github.com/ossyrian/mintylaunch/internal/config"
)

func TestValidate(t *testing.T) {
	abs, err := filepath.Abs(".")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		cfg        config.Config
		wantErr    bool
		wantLayout string
		wantDir    string
		wantEngine string
	}{
		{
			name:       "defaults",
			cfg:        config.Config{},
			wantLayout: config.LayoutINI,
			wantDir:    abs,
			wantEngine: "diva.exe",
		},
		{
			name:       "toml layout",
			cfg:        config.Config{Layout: "toml", GameDir: "/games/diva", Engine: "game.exe"},
			wantLayout: config.LayoutTOML,
			wantDir:    filepath.Clean("/games/diva"),
			wantEngine: "game.exe",
		},
		{
			name:    "unknown layout",
			cfg:     config.Config{Layout: "yaml"},
			wantErr: true,
		},
		{
			name:    "engine outside game dir",
			cfg:     config.Config{Engine: filepath.Join("..", "diva.exe")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if cfg.Layout != tt.wantLayout {
				t.Errorf("Layout = %q, want %q", cfg.Layout, tt.wantLayout)
			}
			if cfg.GameDir != tt.wantDir {
				t.Errorf("GameDir = %q, want %q", cfg.GameDir, tt.wantDir)
			}
			if cfg.Engine != tt.wantEngine {
				t.Errorf("Engine = %q, want %q", cfg.Engine, tt.wantEngine)
			}
		})
	}
}
