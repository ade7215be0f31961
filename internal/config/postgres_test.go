package config

import (
	"strings"
	"testing"
)

func TestLoadPostgresConfig(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		wantErr  string
		wantConn string
	}{
		{
			name: "all fields",
			env: map[string]string{
				"POSTGRES_USER":     "episteme",
				"POSTGRES_PASSWORD": "secret",
				"POSTGRES_DB":       "runs",
				"POSTGRES_HOSTNAME": "db",
				"POSTGRES_PORT":     "6543",
				"POSTGRES_SSLMODE":  "require",
			},
			wantConn: "host=db port=6543 user=episteme dbname=runs sslmode=require password=secret",
		},
		{
			name: "defaults for port and sslmode",
			env: map[string]string{
				"POSTGRES_USER":     "episteme",
				"POSTGRES_DB":       "runs",
				"POSTGRES_HOSTNAME": "localhost",
			},
			wantConn: "host=localhost port=5432 user=episteme dbname=runs sslmode=disable",
		},
		{
			name: "missing user",
			env: map[string]string{
				"POSTGRES_DB":       "runs",
				"POSTGRES_HOSTNAME": "localhost",
			},
			wantErr: "POSTGRES_USER",
		},
		{
			name: "missing database",
			env: map[string]string{
				"POSTGRES_USER":     "episteme",
				"POSTGRES_HOSTNAME": "localhost",
			},
			wantErr: "POSTGRES_DB",
		},
		{
			name: "missing host",
			env: map[string]string{
				"POSTGRES_USER": "episteme",
				"POSTGRES_DB":   "runs",
			},
			wantErr: "POSTGRES_HOSTNAME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadPostgresConfig(envMap(tt.env))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want it to mention %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := cfg.ConnectionString(); got != tt.wantConn {
				t.Errorf("ConnectionString() = %q, want %q", got, tt.wantConn)
			}
		})
	}
}

func TestLoadFixtureConfig(t *testing.T) {
	if got := LoadFixtureConfig(envMap(nil)).Port; got != "5173" {
		t.Errorf("default port = %q, want 5173", got)
	}
	if got := LoadFixtureConfig(envMap(map[string]string{"FIXTURE_PORT": "9000"})).Port; got != "9000" {
		t.Errorf("port = %q, want 9000", got)
	}
}
