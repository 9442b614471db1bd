package canbus

import (
	"github.com/go-viper/mapstructure/v2"
	goutils "go.viam.com/utils"
)

// AttributeMap is a structureless configuration map for vehicle parameters,
// typically unmarshaled from a per-vehicle config file.
type AttributeMap map[string]interface{}

// Params configures the controller for one physical vehicle.
type Params struct {
	// DrivingMode is the default mode the controller starts in.
	DrivingMode string `json:"driving_mode"`
	// MaxSteerAngle is the steering range in degrees; commanded angle
	// percentages scale against it.
	MaxSteerAngle float64 `json:"max_steer_angle"`
	// MaxSteerAngleRate and MinSteerAngleRate bound the steering angular
	// rate in degrees per second.
	MaxSteerAngleRate float64 `json:"max_steer_angle_rate"`
	MinSteerAngleRate float64 `json:"min_steer_angle_rate,omitempty"`
	// MaxPedal bounds throttle and brake pedal commands in percent.
	// Zero means the full 100% range.
	MaxPedal float64 `json:"max_pedal,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (p *Params) Validate(path string) error {
	if p.DrivingMode == "" {
		return goutils.NewConfigValidationFieldRequiredError(path, "driving_mode")
	}
	if _, err := ParseDrivingMode(p.DrivingMode); err != nil {
		return goutils.NewConfigValidationError(path, err)
	}
	if p.MaxSteerAngle <= 0 {
		return goutils.NewConfigValidationFieldRequiredError(path, "max_steer_angle")
	}
	if p.MaxSteerAngleRate <= 0 {
		return goutils.NewConfigValidationFieldRequiredError(path, "max_steer_angle_rate")
	}
	return nil
}

// maxPedalPct returns the configured pedal bound, defaulting to 100%.
func (p Params) maxPedalPct() float64 {
	if p.MaxPedal <= 0 {
		return 100
	}
	return p.MaxPedal
}

// ParamsFromAttributes decodes a raw attribute map into Params.
func ParamsFromAttributes(attributes AttributeMap) (*Params, error) {
	var params Params
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &params,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(map[string]interface{}(attributes)); err != nil {
		return nil, err
	}
	return &params, nil
}
