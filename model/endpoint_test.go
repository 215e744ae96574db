package model

import (
	"encoding/json"
	"net"
	"strings"
	"testing"
)

func TestEndpointEmpty(t *testing.T) {
	tests := []struct {
		name     string
		endpoint *Endpoint
		want     bool
	}{
		{"nil endpoint", nil, true},
		{"zero value", &Endpoint{}, true},
		{"service name only", &Endpoint{ServiceName: "frontend"}, false},
		{"ipv4 only", &Endpoint{IPv4: net.ParseIP("127.0.0.1")}, false},
		{"ipv6 only", &Endpoint{IPv6: net.ParseIP("2001:db8::68")}, false},
		{"port only", &Endpoint{Port: 8080}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.endpoint.Empty(); got != tt.want {
				t.Errorf("expected Empty() == %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEndpointJSON(t *testing.T) {
	endpoint := &Endpoint{
		ServiceName: "backend",
		IPv4:        net.ParseIP("192.168.99.101"),
		Port:        9000,
	}
	data, err := json.Marshal(endpoint)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"ipv4":"192.168.99.101"`) {
		t.Errorf("expected dotted-quad ipv4, got %s", data)
	}

	var decoded Endpoint
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ServiceName != "backend" || decoded.Port != 9000 {
		t.Errorf("round trip changed fields: %+v", decoded)
	}
	if !decoded.IPv4.Equal(endpoint.IPv4) {
		t.Errorf("expected ipv4 %v, got %v", endpoint.IPv4, decoded.IPv4)
	}
}

func TestEndpointValidate(t *testing.T) {
	var nilEndpoint *Endpoint
	if err := nilEndpoint.validate(); err != nil {
		t.Errorf("expected nil endpoint to validate, got %v", err)
	}

	ok := &Endpoint{
		ServiceName: "backend",
		IPv4:        net.ParseIP("10.0.0.1"),
		IPv6:        net.ParseIP("2001:db8::68"),
	}
	if err := ok.validate(); err != nil {
		t.Errorf("expected endpoint to validate, got %v", err)
	}
}
