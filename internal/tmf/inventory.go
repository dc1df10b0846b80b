package tmf

// ServiceInventory is a TMF638 service as it appears in the OpenSlice
// service inventory. Supporting services mirror the nested structure used
// for KNF-based network services.
type ServiceInventory struct {
	Name               string             `json:"name"`
	UUID               string             `json:"uuid"`
	ID                 string             `json:"id,omitempty"`
	Description        string             `json:"description,omitempty"`
	StartDate          string             `json:"startDate,omitempty"`
	EndDate            string             `json:"endDate,omitempty"`
	State              string             `json:"state,omitempty"`
	ServiceOrderID     string             `json:"serviceOrderId,omitempty"`
	Spec               *ServiceSpec       `json:"serviceSpecification,omitempty"`
	Characteristics    []Characteristic   `json:"serviceCharacteristic,omitempty"`
	ServiceType        string             `json:"serviceType,omitempty"`
	SupportingServices []ServiceInventory `json:"supportingService,omitempty"`
}

// ApplyCharacteristics merges the given characteristics into the inventory
// entry, replacing values by name.
func (s *ServiceInventory) ApplyCharacteristics(chars []Characteristic) {
	for _, c := range chars {
		s.setCharacteristic(c)
	}
}

func (s *ServiceInventory) setCharacteristic(c Characteristic) {
	for i, existing := range s.Characteristics {
		if existing.Name == c.Name {
			s.Characteristics[i].Value = c.Value
			return
		}
	}
	s.Characteristics = append(s.Characteristics, c)
}
