// Package policy models the security policies pushed by the Security
// Orchestrator and their translation into OpenSlice service characteristics.
package policy

import (
	"encoding/json"
	"strings"

	"github.com/diogosantosua/onboarding-tools/internal/tmf"
)

// Type identifies the kind of security policy.
type Type string

const (
	TypeChannelProtection Type = "channelProtection"
	TypeFirewall          Type = "firewall"
	TypeSIEM              Type = "siem"
	TypeTelemetry         Type = "telemetry"
)

// Types lists every policy type, in the order the waiting queues are set up.
var Types = []Type{TypeChannelProtection, TypeFirewall, TypeSIEM, TypeTelemetry}

// Policy converts an orchestrator payload into a service spec patch.
type Policy interface {
	Type() Type
	ToServiceSpec() tmf.ServiceSpec
}

// mspl capability names mapped to policy types. MSPL documents name the
// requested capability inside the configuration element; matching is
// case-insensitive on the whole document.
var msplCapabilities = []struct {
	keyword string
	typ     Type
}{
	{"channel_protection", TypeChannelProtection},
	{"filtering", TypeFirewall},
	{"siem", TypeSIEM},
	{"telemetry", TypeTelemetry},
	{"monitoring", TypeTelemetry},
}

// TypeFromMSPL inspects an MSPL document and returns the policy type it
// requests. The second return is false when no known capability is named.
func TypeFromMSPL(mspl string) (Type, bool) {
	doc := strings.ToLower(mspl)
	for _, cap := range msplCapabilities {
		if strings.Contains(doc, cap.keyword) {
			return cap.typ, true
		}
	}
	return "", false
}

// characteristicJSON renders a policy section as the string value of a
// service characteristic. Encoding a policy struct cannot fail; a failure
// here means a programming error, so the empty string is returned.
func characteristicJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
