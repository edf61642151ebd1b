// Package alert holds the alert record consumed by the correlator and an
// immutable, uid-indexed store over a batch of alerts.
package alert

import "fmt"

// MinAlerts is the smallest batch the correlator accepts
const MinAlerts = 5

// Alert is a single detection event. Only the uid and the address/port
// 4-tuple take part in correlation; Extra is carried through untouched.
type Alert struct {
	UID     string         `json:"uid" yaml:"uid" validate:"required"`
	SrcAddr string         `json:"src_addr" yaml:"src_addr"`
	SrcPort int            `json:"src_port" yaml:"src_port" validate:"min=0,max=65535"`
	DstAddr string         `json:"dst_addr" yaml:"dst_addr"`
	DstPort int            `json:"dst_port" yaml:"dst_port" validate:"min=0,max=65535"`
	Extra   map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// String renders the alert as "uid src:port -> dst:port"
func (a Alert) String() string {
	return fmt.Sprintf("%s %s:%d -> %s:%d", a.UID, a.SrcAddr, a.SrcPort, a.DstAddr, a.DstPort)
}

// SelfTraffic reports whether source and destination address are equal
func (a Alert) SelfTraffic() bool {
	return a.SrcAddr == a.DstAddr
}
