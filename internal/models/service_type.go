package models

type ServiceType string

const (
	ServiceTypeOilChange       ServiceType = "oil_change"
	ServiceTypeBrakeService    ServiceType = "brake_service"
	ServiceTypeSuspension      ServiceType = "suspension"
	ServiceTypeEngineDiagnosis ServiceType = "engine_diagnosis"
	ServiceTypeTireRotation    ServiceType = "tire_rotation"
	ServiceTypeBattery         ServiceType = "battery_replacement"
	ServiceTypeAircon          ServiceType = "aircon_service"
	ServiceTypeCustom          ServiceType = "custom"
)

var serviceTypeDescriptions = map[ServiceType]string{
	ServiceTypeOilChange:       "Oil Change Service",
	ServiceTypeBrakeService:    "Brake System Service",
	ServiceTypeSuspension:      "Suspension Repair",
	ServiceTypeEngineDiagnosis: "Engine Diagnosis",
	ServiceTypeTireRotation:    "Tire Rotation & Balancing",
	ServiceTypeBattery:         "Battery Replacement",
	ServiceTypeAircon:          "Air Conditioning Service",
}

// Description resolves a quick-service type to its display string. The
// custom variant carries a user-supplied description instead.
func (t ServiceType) Description(custom string) (string, bool) {
	if t == ServiceTypeCustom {
		if custom == "" {
			custom = "Custom Service"
		}
		return custom, true
	}
	desc, ok := serviceTypeDescriptions[t]
	return desc, ok
}
