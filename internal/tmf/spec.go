// Package tmf holds the TMF-style entities exchanged with OpenSlice and the
// HTTP client for its service catalog, ordering and inventory APIs.
package tmf

// Service specification types as they appear in the TMF633 "@type" field.
const (
	SpecTypeCFSS = "CustomerFacingServiceSpecification"
	SpecTypeRFSS = "ResourceFacingServiceSpecification"
)

// Names of the well-known characteristics managed by onboarding-tools.
const (
	CharacteristicCPE          = "cpe"
	CharacteristicRiskScore    = "riskScore"
	CharacteristicPrivacyScore = "privacyScore"
	CharacteristicMTDAction    = "mtdAction"
	CharacteristicMTDFrequency = "mtdFrequency"
)

// CharacteristicValue is the value object of a service characteristic.
type CharacteristicValue struct {
	Value string `json:"value,omitempty"`
	Alias string `json:"alias,omitempty"`
}

// Characteristic is a named configuration value attached to a service,
// service spec or service order item.
type Characteristic struct {
	Name  string              `json:"name"`
	Value CharacteristicValue `json:"value"`
}

// ServiceSpec is a TMF633 service specification as exposed by the OpenSlice
// service catalog.
type ServiceSpec struct {
	ID              string           `json:"id,omitempty"`
	Name            string           `json:"name,omitempty"`
	Type            string           `json:"@type,omitempty"`
	Characteristics []Characteristic `json:"serviceSpecCharacteristic,omitempty"`
}

// ServiceSpecWithAction is a service spec carrying an explicit MTD action to
// apply, as submitted by the Security Orchestrator's network MTD policies.
type ServiceSpecWithAction struct {
	ServiceSpec
	Action string `json:"action,omitempty"`
}

// Characteristic returns the named characteristic and whether it exists.
func (s *ServiceSpec) Characteristic(name string) (Characteristic, bool) {
	for _, c := range s.Characteristics {
		if c.Name == name {
			return c, true
		}
	}
	return Characteristic{}, false
}

// SetCharacteristic replaces the named characteristic value, appending the
// characteristic when it is not present yet.
func (s *ServiceSpec) SetCharacteristic(name, value string) {
	for i, c := range s.Characteristics {
		if c.Name == name {
			s.Characteristics[i].Value.Value = value
			return
		}
	}
	s.Characteristics = append(s.Characteristics, Characteristic{
		Name:  name,
		Value: CharacteristicValue{Value: value},
	})
}

// UpdateRisk applies a risk specification to the spec. It reports true when
// the spec's cpe characteristic matches the specification's CPE, in which
// case the riskScore and privacyScore characteristics are updated.
func (s *ServiceSpec) UpdateRisk(rs RiskSpecification) bool {
	cpe, ok := s.Characteristic(CharacteristicCPE)
	if !ok || cpe.Value.Value != rs.CPE {
		return false
	}
	if rs.RiskScore != nil {
		s.SetCharacteristic(CharacteristicRiskScore, formatScore(*rs.RiskScore))
	}
	if rs.PrivacyScore != nil {
		s.SetCharacteristic(CharacteristicPrivacyScore, formatScore(*rs.PrivacyScore))
	}
	return rs.RiskScore != nil || rs.PrivacyScore != nil
}
