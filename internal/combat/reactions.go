package combat

// deflect absorbs up to the defender's Deflect stacks from damage, spending
// the stacks it used.
func (b *Battle) deflect(defender *Fighter, damage int) int {
	prevented := min(damage, defender.Status(Deflect))
	if prevented <= 0 {
		return damage
	}
	defender.addStatus(Deflect, -prevented)
	b.logf("受け流し: %d 軽減", prevented)
	return damage - prevented
}

// react runs the defender's reactive statuses after an attack connects.
// Thorns fire even when no damage got through.
func (b *Battle) react(attacker, defender *Fighter, damage int) {
	if thorns := defender.Status(ThornArmor); thorns > 0 {
		attacker.damage(thorns)
		b.logf("茨の鎧: %d ダメージ", thorns)
	}
	if armor := defender.Status(ReactiveArmor); damage > 0 && armor > 0 {
		defender.stats[ParamD] += armor
		b.logf("反応装甲: 【D】+%d", armor)
	}
	if defender.Status(ParryBoost) > 0 {
		defender.addStatus(Evade, 1)
		defender.addStatus(ParryBoost, -1)
		b.logf("見切り: 『回避』+1")
	}
}
