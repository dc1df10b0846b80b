package policy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const channelProtectionMSPL = `<?xml version="1.0" encoding="UTF-8"?>
<ITResourceOrchestration>
  <ITResource>
    <configuration>
      <capability><Name>Channel_Protection</Name></capability>
    </configuration>
  </ITResource>
</ITResourceOrchestration>`

func TestTypeFromMSPL(t *testing.T) {
	tests := []struct {
		name string
		mspl string
		want Type
		ok   bool
	}{
		{"channel protection", channelProtectionMSPL, TypeChannelProtection, true},
		{"filtering", "<capability><Name>Filtering_L4</Name></capability>", TypeFirewall, true},
		{"siem", "<capability><Name>SIEM</Name></capability>", TypeSIEM, true},
		{"telemetry", "<capability><Name>Telemetry</Name></capability>", TypeTelemetry, true},
		{"monitoring maps to telemetry", "<capability><Name>Monitoring</Name></capability>", TypeTelemetry, true},
		{"case insensitive", "<capability><name>channel_protection</name></capability>", TypeChannelProtection, true},
		{"unknown capability", "<capability><Name>Quantum</Name></capability>", "", false},
		{"empty document", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, ok := TypeFromMSPL(tt.mspl)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, typ)
		})
	}
}

func TestPolicies_ToServiceSpec(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		charName string
	}{
		{"telemetry", TelemetryPolicy{Endpoint: "collector:9090", Metrics: []string{"cpu"}}, "telemetryPolicy"},
		{"firewall", FirewallPolicy{Rules: []FirewallRule{{Action: "deny", Port: 22}}}, "firewallPolicy"},
		{"siem", SIEMPolicy{Collector: "siem:514"}, "siemPolicy"},
		{"channel protection", ChannelProtectionPolicy{Technology: "ipsec"}, "channelProtectionPolicy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := tt.policy.ToServiceSpec()
			require.Len(t, spec.Characteristics, 1)
			char := spec.Characteristics[0]
			assert.Equal(t, tt.charName, char.Name)
			assert.True(t, json.Valid([]byte(char.Value.Value)), "characteristic value must be JSON")
		})
	}
}

func TestPolicies_Types(t *testing.T) {
	assert.Equal(t, TypeTelemetry, TelemetryPolicy{}.Type())
	assert.Equal(t, TypeFirewall, FirewallPolicy{}.Type())
	assert.Equal(t, TypeSIEM, SIEMPolicy{}.Type())
	assert.Equal(t, TypeChannelProtection, ChannelProtectionPolicy{}.Type())
}

func TestWaitingQueues_FIFO(t *testing.T) {
	q := NewWaitingQueues()

	assert.True(t, q.Enqueue(TypeFirewall, "o1"))
	assert.True(t, q.Enqueue(TypeFirewall, "o2"))
	assert.Equal(t, 2, q.Len(TypeFirewall))

	id, ok := q.Dequeue(TypeFirewall)
	require.True(t, ok)
	assert.Equal(t, "o1", id)
	id, ok = q.Dequeue(TypeFirewall)
	require.True(t, ok)
	assert.Equal(t, "o2", id)

	_, ok = q.Dequeue(TypeFirewall)
	assert.False(t, ok)
}

func TestWaitingQueues_TypesAreIndependent(t *testing.T) {
	q := NewWaitingQueues()
	require.True(t, q.Enqueue(TypeSIEM, "o1"))

	_, ok := q.Dequeue(TypeTelemetry)
	assert.False(t, ok)
	id, ok := q.Dequeue(TypeSIEM)
	require.True(t, ok)
	assert.Equal(t, "o1", id)
}

func TestWaitingQueues_FullQueueRejects(t *testing.T) {
	q := NewWaitingQueues()
	for i := 0; i < queueCapacity; i++ {
		require.True(t, q.Enqueue(TypeTelemetry, "o"))
	}
	assert.False(t, q.Enqueue(TypeTelemetry, "overflow"))
}
