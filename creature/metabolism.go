package creature

// Metabolism is the per-tick upkeep of a creature's body.
type Metabolism struct {
	MaxHealth    uint64 // Health at birth, and the healing cap.
	MaxHunger    uint64 // Fullness cap.
	MaxWaste     uint64 // Waste at which the body takes damage.
	FoodValue    uint64 // Fullness gained per food eaten.
	StarveDamage uint64 // Health lost per tick while starving.
	WasteDamage  uint64 // Health lost per tick while at MaxWaste.
	Excretion    uint64 // Waste removed per tick.
}

// DefaultMetabolism is the metabolism used when none is configured.
var DefaultMetabolism = Metabolism{
	MaxHealth:    100,
	MaxHunger:    100,
	MaxWaste:     100,
	FoodValue:    30,
	StarveDamage: 5,
	WasteDamage:  2,
	Excretion:    1,
}

func saturatingSub(value, delta uint64) uint64 {
	if delta >= value {
		return 0
	}
	return value - delta
}

// Birth returns the vitals of a newborn creature.
func (m *Metabolism) Birth() Vitals {
	return Vitals{
		Health: m.MaxHealth,
		Hunger: m.MaxHunger / 2,
	}
}

// Apply runs one tick of upkeep: the creature ages, excretes, eats any food
// it stands on, digests, and takes damage from starvation or waste.
// Returns true if food was eaten.
func (m *Metabolism) Apply(c *Creature) (ate bool) {
	body := c.Body
	vitals := &body.Vitals

	c.Age++

	vitals.Waste = saturatingSub(vitals.Waste, m.Excretion)

	if body.world.Eat(body.position) {
		ate = true
		c.Eaten++
		vitals.Hunger = min(m.MaxHunger, vitals.Hunger+m.FoodValue)
		vitals.Waste = min(m.MaxWaste, vitals.Waste+m.FoodValue/3)
	} else {
		vitals.Hunger = saturatingSub(vitals.Hunger, 1)
	}

	if vitals.Hunger == 0 {
		vitals.Health = saturatingSub(vitals.Health, m.StarveDamage)
	}

	if vitals.Waste >= m.MaxWaste {
		vitals.Health = saturatingSub(vitals.Health, m.WasteDamage)
	}

	if vitals.Health > 0 && vitals.Health < m.MaxHealth && vitals.Hunger > m.MaxHunger/2 {
		vitals.Health++
	}

	return
}
