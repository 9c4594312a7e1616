/*
 * atomicdata.go, part of phonogo.
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

import "fmt"

//A map for assigning standard atomic weights (u) to elements.
//Note that just elements common in phonon transport studies are present.
var symbolMass = map[string]float64{
	"H":  1.008,
	"He": 4.0026,
	"Li": 6.94,
	"Be": 9.0122,
	"B":  10.81,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"F":  18.998,
	"Ne": 20.180,
	"Na": 22.990,
	"Mg": 24.305,
	"Al": 26.982,
	"Si": 28.085,
	"P":  30.974,
	"S":  32.06,
	"Cl": 35.45,
	"Ar": 39.948,
	"K":  39.098,
	"Ca": 40.078,
	"Ti": 47.867,
	"Cr": 51.996,
	"Mn": 54.938,
	"Fe": 55.845,
	"Co": 58.933,
	"Ni": 58.693,
	"Cu": 63.546,
	"Zn": 65.38,
	"Ga": 69.723,
	"Ge": 72.630,
	"As": 74.922,
	"Se": 78.971,
	"Zr": 91.224,
	"Nb": 92.906,
	"Ag": 107.87,
	"Cd": 112.41,
	"In": 114.82,
	"Sn": 118.71,
	"Sb": 121.76,
	"Te": 127.60,
	"I":  126.90,
	"W":  183.84,
	"Pb": 207.2,
	"Bi": 208.98,
}

//Isotopic compositions of the elements: relative atomic masses (u) and
//mole-fraction abundances of the stable isotopes, from the NIST/CIAAW
//compilation. The same table Phono3py uses for its isotope scattering model.
//Note that just elements common in phonon transport studies are present;
//mono-isotopic elements are included so that their mass variance comes out
//as exactly zero.
var symbolIsotopes = map[string][]Isotope{
	"H":  {{1.0078250319, 0.999885}, {2.0141017778, 0.000115}},
	"He": {{3.0160293097, 0.00000134}, {4.0026032542, 0.99999866}},
	"Li": {{6.0151228874, 0.0759}, {7.0160034366, 0.9241}},
	"Be": {{9.0121830650, 1.0}},
	"B":  {{10.0129369500, 0.199}, {11.0093053600, 0.801}},
	"C":  {{12.0, 0.9893}, {13.0033548351, 0.0107}},
	"N":  {{14.0030740044, 0.99636}, {15.0001088989, 0.00364}},
	"O":  {{15.9949146196, 0.99757}, {16.9991317565, 0.00038}, {17.9991596129, 0.00205}},
	"F":  {{18.9984031627, 1.0}},
	"Ne": {{19.9924401762, 0.9048}, {20.9938466850, 0.0027}, {21.9913851140, 0.0925}},
	"Na": {{22.9897692820, 1.0}},
	"Mg": {{23.9850417000, 0.7899}, {24.9858369800, 0.1000}, {25.9825929700, 0.1101}},
	"Al": {{26.9815385300, 1.0}},
	"Si": {{27.9769265347, 0.92223}, {28.9764946649, 0.04685}, {29.9737701360, 0.03092}},
	"P":  {{30.9737619984, 1.0}},
	"S":  {{31.9720711744, 0.9499}, {32.9714589098, 0.0075}, {33.9678670040, 0.0425}, {35.9670807100, 0.0001}},
	"Cl": {{34.9688526800, 0.7576}, {36.9659026000, 0.2424}},
	"Ar": {{35.9675451100, 0.003336}, {37.9627321100, 0.000629}, {39.9623831237, 0.996035}},
	"K":  {{38.9637064864, 0.932581}, {39.9639981660, 0.000117}, {40.9618252579, 0.067302}},
	"Ca": {{39.9625908600, 0.96941}, {41.9586178300, 0.00647}, {42.9587664400, 0.00135}, {43.9554815600, 0.02086}, {45.9536879000, 0.00004}, {47.9525227600, 0.00187}},
	"Ti": {{45.9526277200, 0.0825}, {46.9517587900, 0.0744}, {47.9479419800, 0.7372}, {48.9478656800, 0.0541}, {49.9447868900, 0.0518}},
	"Cr": {{49.9460418300, 0.04345}, {51.9405062300, 0.83789}, {52.9406481500, 0.09501}, {53.9388791600, 0.02365}},
	"Mn": {{54.9380439100, 1.0}},
	"Fe": {{53.9396089900, 0.05845}, {55.9349363300, 0.91754}, {56.9353928400, 0.02119}, {57.9332744300, 0.00282}},
	"Co": {{58.9331942900, 1.0}},
	"Ni": {{57.9353424100, 0.68077}, {59.9307858800, 0.26223}, {60.9310555700, 0.011399}, {61.9283453700, 0.036346}, {63.9279668200, 0.009255}},
	"Cu": {{62.9295977200, 0.6915}, {64.9277897000, 0.3085}},
	"Zn": {{63.9291420100, 0.4917}, {65.9260338100, 0.2773}, {66.9271277500, 0.0404}, {67.9248445500, 0.1845}, {69.9253192000, 0.0061}},
	"Ga": {{68.9255735000, 0.60108}, {70.9247025800, 0.39892}},
	"Ge": {{69.9242487500, 0.2057}, {71.9220758260, 0.2745}, {72.9234589560, 0.0775}, {73.9211777610, 0.3650}, {75.9214027260, 0.0773}},
	"As": {{74.9215945700, 1.0}},
	"Se": {{73.9224759340, 0.0089}, {75.9192137040, 0.0937}, {76.9199141540, 0.0763}, {77.9173092800, 0.2377}, {79.9165218000, 0.4961}, {81.9166995000, 0.0873}},
	"Zr": {{89.9046977000, 0.5145}, {90.9056396000, 0.1122}, {91.9050347000, 0.1715}, {93.9063108000, 0.1738}, {95.9082714000, 0.0280}},
	"Nb": {{92.9063730000, 1.0}},
	"Ag": {{106.9050916000, 0.51839}, {108.9047553000, 0.48161}},
	"Cd": {{105.9064599000, 0.0125}, {107.9041834000, 0.0089}, {109.9030066100, 0.1249}, {110.9041828700, 0.1280}, {111.9027628700, 0.2413}, {112.9044081300, 0.1222}, {113.9033650900, 0.2873}, {115.9047631500, 0.0749}},
	"In": {{112.9040618400, 0.0429}, {114.9038787760, 0.9571}},
	"Sn": {{111.9048238700, 0.0097}, {113.9027827000, 0.0066}, {114.9033446990, 0.0034}, {115.9017428000, 0.1454}, {116.9029539800, 0.0768}, {117.9016065700, 0.2422}, {118.9033111700, 0.0859}, {119.9022016300, 0.3258}, {121.9034438000, 0.0463}, {123.9052766000, 0.0579}},
	"Sb": {{120.9038120000, 0.5721}, {122.9042132000, 0.4279}},
	"Te": {{119.9040593000, 0.0009}, {121.9030435000, 0.0255}, {122.9042698000, 0.0089}, {123.9028171000, 0.0474}, {124.9044299000, 0.0707}, {125.9033109000, 0.1884}, {127.9044612800, 0.3174}, {129.9062227480, 0.3408}},
	"I":  {{126.9044719000, 1.0}},
	"W":  {{179.9467108000, 0.0012}, {181.9482039400, 0.2650}, {182.9502227500, 0.1431}, {183.9509309200, 0.3064}, {185.9543628000, 0.2843}},
	"Pb": {{203.9730440000, 0.014}, {205.9744657000, 0.241}, {206.9758973000, 0.221}, {207.9766525000, 0.524}},
	"Bi": {{208.9803991000, 1.0}},
}

//AtomicMass returns the standard atomic weight (u) of the element with the
//given symbol. It returns an error if the element is not in the internal
//database.
func AtomicMass(symbol string) (float64, error) {
	m, ok := symbolMass[symbol]
	if !ok {
		return 0, Error{message: fmt.Sprintf("%s: %s", NoMassData, symbol), critical: true}
	}
	return m, nil
}

//NaturalIsotopes returns the natural isotope distribution of the element
//with the given symbol. The returned slice is a copy, so callers may modify
//it. It returns an error if the element is not in the internal database.
func NaturalIsotopes(symbol string) ([]Isotope, error) {
	iso, ok := symbolIsotopes[symbol]
	if !ok {
		return nil, Error{message: fmt.Sprintf("%s: %s", NoIsotopeData, symbol), critical: true}
	}
	ret := make([]Isotope, len(iso))
	copy(ret, iso)
	return ret, nil
}

//KnownElements returns the symbols of all elements in the isotope database,
//in no particular order.
func KnownElements() []string {
	ret := make([]string, 0, len(symbolIsotopes))
	for s := range symbolIsotopes {
		ret = append(ret, s)
	}
	return ret
}
