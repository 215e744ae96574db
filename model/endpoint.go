package model

import "net"

// Endpoint names the network context of a service that recorded a span.
// IPv4 holds an address representable in 4 bytes; IPv6 holds a true 16-byte
// address (a v4-mapped address belongs in IPv4 instead).
type Endpoint struct {
	ServiceName string `json:"serviceName,omitempty"`
	IPv4        net.IP `json:"ipv4,omitempty"`
	IPv6        net.IP `json:"ipv6,omitempty"`
	Port        uint16 `json:"port,omitempty"`
}

// Empty reports whether every field holds its default value. An empty
// endpoint serializes to zero bytes, so its parent field is dropped from the
// encoded span entirely.
func (e *Endpoint) Empty() bool {
	if e == nil {
		return true
	}
	return e.ServiceName == "" && len(e.IPv4) == 0 && len(e.IPv6) == 0 && e.Port == 0
}

// validate checks the address fields hold what their names promise
func (e *Endpoint) validate() error {
	if e == nil {
		return nil
	}
	if len(e.IPv4) > 0 && e.IPv4.To4() == nil {
		return wrapField(ErrNotIPv4, "ipv4")
	}
	if len(e.IPv6) > 0 {
		if e.IPv6.To4() != nil {
			return wrapField(ErrNotIPv6, "ipv6")
		}
		if e.IPv6.To16() == nil {
			return wrapField(ErrNotIPv6, "ipv6")
		}
	}
	return nil
}
