package sim

const maxFlightTicks = 10000

// FlightTicks steps the projectile arc integrator from launch and returns the
// tick on which the shot lands. It mirrors Projectile.Update exactly, so a shot
// moving at d/FlightTicks per tick lands at distance d.
func FlightTicks(height, zVel, gravity float64) int {
	if gravity <= 0 && zVel >= 0 {
		return maxFlightTicks
	}
	for n := 1; n <= maxFlightTicks; n++ {
		height += zVel
		zVel -= gravity
		if height <= 0 && zVel < 0 {
			return n
		}
	}
	return maxFlightTicks
}

// EnemyFlightTicks is the flight time of the enemy mortar arc
func (c *Config) EnemyFlightTicks() int {
	return FlightTicks(c.ShotHeight, c.EnemyZVel, c.EnemyGravity)
}

// RequiredSpeed is the lead-free ballistic solution: flight time is fixed by
// the arc constants, so only the horizontal speed changes with distance.
func (c *Config) RequiredSpeed(distance float64) float64 {
	return distance / float64(c.EnemyFlightTicks())
}
