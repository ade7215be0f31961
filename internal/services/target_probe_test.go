package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPTargetProbe_Check(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr string
	}{
		{
			name:   "ok",
			status: http.StatusOK,
		},
		{
			name:   "not modified counts as up",
			status: http.StatusNotModified,
		},
		{
			name:    "not found",
			status:  http.StatusNotFound,
			wantErr: "returned status 404",
		},
		{
			name:    "server error",
			status:  http.StatusBadGateway,
			wantErr: "returned status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("probe used %s, want GET", r.Method)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			err := NewTargetProbe(5*time.Second).Check(context.Background(), server.URL+"/")
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Check() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Check() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestHTTPTargetProbe_Check_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL + "/"
	server.Close()

	err := NewTargetProbe(2*time.Second).Check(context.Background(), url)
	if err == nil {
		t.Fatal("expected error for a closed server")
	}
	if !strings.Contains(err.Error(), "not reachable") {
		t.Errorf("error = %q, want it to mention reachability", err.Error())
	}
}

func TestHTTPTargetProbe_Check_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewTargetProbe(time.Second).Check(ctx, server.URL); err == nil {
		t.Error("expected error for a cancelled context")
	}
}
