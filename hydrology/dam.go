package hydrology

// DamSiteRadius is the number of cells stepped perpendicular to the local
// flow direction when probing for steep banks.
const DamSiteRadius = 5

// DamSiteBankGrade is the minimum bank grade, on both sides, for a river
// cell to be reported as a dam site candidate.
const DamSiteBankGrade = 0.15

// DamSite is a candidate narrow, steep-walled river crossing. Confidence
// is simply the weaker of the two bank grades, so a site needs both banks
// to qualify before it ranks highly.
type DamSite struct {
	Cell       Point
	Confidence float32
}

// findDamSites scans river cells for a cross-section with steep banks on
// both sides, perpendicular to the cell's D8 flow direction.
func findDamSites(h []float32, dir []int8, n int, cellMeters float32, rivers []River) []DamSite {
	var sites []DamSite

	for _, river := range rivers {
		for _, cell := range river.Cells {
			idx := cell.Y*n + cell.X
			d := dir[idx]
			if d == noFlow {
				continue
			}

			perpA := (int(d) + 2) % 8
			perpB := (int(d) + 6) % 8

			gradeA, okA := bankGrade(h, n, cell.X, cell.Y, perpA, cellMeters)
			gradeB, okB := bankGrade(h, n, cell.X, cell.Y, perpB, cellMeters)
			if !okA || !okB {
				continue
			}
			if gradeA < DamSiteBankGrade || gradeB < DamSiteBankGrade {
				continue
			}

			confidence := gradeA
			if gradeB < confidence {
				confidence = gradeB
			}
			sites = append(sites, DamSite{Cell: cell, Confidence: confidence})
		}
	}

	return sites
}

// bankGrade returns the grade from (x,y) to the bank DamSiteRadius cells
// away in neighbor direction dirIdx, or ok=false if that probe falls off
// the grid.
func bankGrade(h []float32, n, x, y, dirIdx int, cellMeters float32) (grade float32, ok bool) {
	bx := x + neighborDX[dirIdx]*DamSiteRadius
	by := y + neighborDY[dirIdx]*DamSiteRadius
	if bx < 0 || bx >= n || by < 0 || by >= n {
		return 0, false
	}

	rise := h[by*n+bx] - h[y*n+x]
	if rise < 0 {
		rise = -rise
	}
	run := neighborDist[dirIdx] * float32(DamSiteRadius) * cellMeters
	return rise / run, true
}
