/*
 * atomicdata_test.go, part of phonogo.
 *
 * Copyright 2024 Daniel T. Lloyd <dtlloyd{at}posteoDOTnet>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package phonogo

import (
	"math"
	"testing"
)

//Every entry in the isotope table must have abundances that sum to one
//(within table rounding) and an average mass close to the standard atomic
//weight in the mass table.
func TestIsotopeTableConsistency(Te *testing.T) {
	for _, symbol := range KnownElements() {
		dist, err := NaturalIsotopes(symbol)
		if err != nil {
			Te.Fatal(err)
		}
		sum := 0.0
		for _, iso := range dist {
			sum += iso.Abundance
		}
		if math.Abs(sum-1.0) > 1e-3 {
			Te.Errorf("%s: abundances sum to %g", symbol, sum)
		}
		mave, err := AverageMass(dist)
		if err != nil {
			Te.Error(err)
		}
		weight, err := AtomicMass(symbol)
		if err != nil {
			Te.Error(err)
		}
		//Standard atomic weights of elements with large natural variation
		//(Li, B, Pb) are interval midpoints, so the check is loose.
		if math.Abs(mave-weight)/weight > 5e-3 {
			Te.Errorf("%s: average mass %g vs standard weight %g", symbol, mave, weight)
		}
	}
}

func TestUnknownElement(Te *testing.T) {
	if _, err := AtomicMass("Xx"); err == nil {
		Te.Error("expected an error for an unknown element")
	}
	if _, err := NaturalIsotopes("Xx"); err == nil {
		Te.Error("expected an error for an unknown element")
	}
}
