package groebner

// Pair criteria. Each one only decides whether a pair is queued at all; a pair it
// rejects is recorded in the pair status as having a t-representation.

// easyProductCriterion holds when the leads share no variable.
func easyProductCriterion(a, b Entry) bool {
	return a.Lead.Coprime(b.Lead)
}

// extendedProductCriterion holds when every common lead variable x comes from a
// literal factor shared by both generators (x in both or x + 1 in both): then
// f = l*f', g = l*g' with coprime leads of f' and g'.
func extendedProductCriterion(a, b Entry) bool {
	common := a.Lead.GCD(b.Lead)
	if common.IsOne() {
		return false
	}
	return a.Literals.SharedOn(b.Literals, common)
}

// chainCriterion decides whether the new pair (i, s) is covered by a third
// generator j whose lead divides lcm(lead_i, lead_s): either the pair (j, s) has
// a strictly smaller lcm, or both (i, j) and (j, s) already have a t-representation.
func (g *ReductionStrategy) chainCriterion(i, s int) bool {
	li, ls := g.entries[i].Lead, g.entries[s].Lead
	l := li.LCM(ls)
	for j := range g.entries {
		if j == i || j == s {
			continue
		}
		lj := g.entries[j].Lead
		if !lj.Divides(l) {
			continue
		}
		if !lj.LCM(ls).Equal(l) {
			return true
		}
		if g.status.HasTRep(i, j) && g.status.HasTRep(j, s) {
			return true
		}
	}
	return false
}

// variableChainCriterion decides whether x_v * g_s needs no reduction: the lead is a
// single variable, x_v or x_v + 1 is a literal factor, or an earlier generator j with
// lead_j | lead_s already covers x_v and the pair (j, s) has a t-representation.
func (g *ReductionStrategy) variableChainCriterion(s, v int) bool {
	e := g.entries[s]
	if e.LeadDeg == 1 || e.Literals.Occurs(v) {
		return true
	}
	for j := 0; j < s; j++ {
		lj := g.entries[j].Lead
		if !lj.Divides(e.Lead) || !g.status.HasTRep(j, s) {
			continue
		}
		if !lj.Contains(v) || g.variablePairCalculated(j, v) {
			return true
		}
	}
	return false
}
