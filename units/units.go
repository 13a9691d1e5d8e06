// Package units defines property value types with fixed property IDs.
package units

import (
	"fmt"

	"github.com/hupe1980/graphkeep/property"
)

// Property IDs of the unit types.
const (
	TickID     property.ID = 1
	DistanceID property.ID = 2
	VelocityID property.ID = 3
)

// Tick is a discrete simulation time step.
type Tick uint64

// PropertyID implements property.Property.
func (Tick) PropertyID() property.ID { return TickID }

// Distance is a length in meters.
type Distance float64

// PropertyID implements property.Property.
func (Distance) PropertyID() property.ID { return DistanceID }

// String returns the distance with its unit.
func (d Distance) String() string { return fmt.Sprintf("%gm", float64(d)) }

// Velocity is a speed in meters per tick.
type Velocity float64

// PropertyID implements property.Property.
func (Velocity) PropertyID() property.ID { return VelocityID }

// Over returns the distance covered in t ticks.
func (v Velocity) Over(t Tick) Distance { return Distance(float64(v) * float64(t)) }

// String returns the velocity with its unit.
func (v Velocity) String() string { return fmt.Sprintf("%gm/tick", float64(v)) }
