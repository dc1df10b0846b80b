package policy

import "github.com/diogosantosua/onboarding-tools/internal/tmf"

// TelemetryPolicy configures metric collection for a service.
type TelemetryPolicy struct {
	ServiceName string   `json:"serviceName,omitempty"`
	Endpoint    string   `json:"endpoint,omitempty"`
	Metrics     []string `json:"metrics,omitempty"`
	IntervalSec int      `json:"intervalSec,omitempty"`
}

func (TelemetryPolicy) Type() Type { return TypeTelemetry }

func (p TelemetryPolicy) ToServiceSpec() tmf.ServiceSpec {
	return specWithCharacteristic("telemetryPolicy", p)
}

// FirewallRule is a single filtering rule of a firewall policy.
type FirewallRule struct {
	Action      string `json:"action"`
	Protocol    string `json:"protocol,omitempty"`
	Source      string `json:"source,omitempty"`
	Destination string `json:"destination,omitempty"`
	Port        int    `json:"port,omitempty"`
}

// FirewallPolicy configures traffic filtering for a service.
type FirewallPolicy struct {
	ServiceName string         `json:"serviceName,omitempty"`
	Rules       []FirewallRule `json:"rules,omitempty"`
}

func (FirewallPolicy) Type() Type { return TypeFirewall }

func (p FirewallPolicy) ToServiceSpec() tmf.ServiceSpec {
	return specWithCharacteristic("firewallPolicy", p)
}

// SIEMPolicy points a service's event log at a SIEM collector.
type SIEMPolicy struct {
	ServiceName string `json:"serviceName,omitempty"`
	Collector   string `json:"collector,omitempty"`
	RuleSet     string `json:"ruleSet,omitempty"`
}

func (SIEMPolicy) Type() Type { return TypeSIEM }

func (p SIEMPolicy) ToServiceSpec() tmf.ServiceSpec {
	return specWithCharacteristic("siemPolicy", p)
}

// ChannelProtectionPolicy configures encrypted channels between service
// endpoints.
type ChannelProtectionPolicy struct {
	ServiceName string   `json:"serviceName,omitempty"`
	Technology  string   `json:"technology,omitempty"`
	Cipher      string   `json:"cipher,omitempty"`
	Peers       []string `json:"peers,omitempty"`
}

func (ChannelProtectionPolicy) Type() Type { return TypeChannelProtection }

func (p ChannelProtectionPolicy) ToServiceSpec() tmf.ServiceSpec {
	return specWithCharacteristic("channelProtectionPolicy", p)
}

func specWithCharacteristic(name string, p any) tmf.ServiceSpec {
	return tmf.ServiceSpec{
		Characteristics: []tmf.Characteristic{
			{Name: name, Value: tmf.CharacteristicValue{Value: characteristicJSON(p)}},
		},
	}
}
