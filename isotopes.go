/*
 * isotopes.go, part of phonogo.
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
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//OccupationTol is the tolerance used when checking that a set of occupation
//fractions or abundances sums to one.
const OccupationTol = 1e-6

//Isotope is a single entry in a mass distribution: a relative atomic mass
//(u) and the corresponding mole-fraction abundance.
type Isotope struct {
	Mass      float64
	Abundance float64
}

//Component is one of the species occupying a lattice site, with its
//occupation fraction. If Isotopes is nil, the natural isotope distribution
//of Symbol is used; otherwise Isotopes overrides it (this covers the
//explicit abundance:mass input mode, where Symbol is just a label).
type Component struct {
	Symbol   string
	Fraction float64
	Isotopes []Isotope
}

//Site is a lattice site occupied by one or more components. The occupation
//fractions of the components must sum to one.
type Site struct {
	Label      string
	Components []Component
}

//checkDistro validates an isotope distribution: it must be non-empty, have
//no negative abundances, and its abundances must sum to one within
//OccupationTol. Natural-abundance tables are rounded to a few significant
//figures, so the sum check uses a looser threshold for them (the caller
//controls it via tol).
func checkDistro(dist []Isotope, tol float64) error {
	if len(dist) == 0 {
		return Error{message: EmptyDistro, critical: true}
	}
	sum := 0.0
	for _, iso := range dist {
		if iso.Abundance < 0 || iso.Mass <= 0 {
			return Error{message: fmt.Sprintf("%s: %v", NegativeWeight, iso), critical: true}
		}
		sum += iso.Abundance
	}
	if math.Abs(sum-1.0) > tol {
		return Error{message: fmt.Sprintf("%s (got %g)", UnnormalisedSum, sum), critical: true}
	}
	return nil
}

//AverageMass returns the abundance-weighted average mass of a distribution,
//m_ave = sum_i a_i*m_i. The abundances are renormalised to one, so tables
//rounded to a few significant figures do not bias the result.
func AverageMass(dist []Isotope) (float64, error) {
	if err := checkDistro(dist, 1e-3); err != nil {
		return 0, ErrDecorate(err, "AverageMass")
	}
	masses := make([]float64, len(dist))
	weights := make([]float64, len(dist))
	for i, iso := range dist {
		masses[i] = iso.Mass
		weights[i] = iso.Abundance
	}
	return stat.Mean(masses, weights), nil
}

//MassVariance returns the mass-variance parameter of a distribution,
//m_var = sum_i a_i*(1 - m_i/m_ave)^2, the dimensionless measure of isotopic
//mass disorder defined by Tamura (Phys. Rev. B 27, 858 (1983)) and used as
//the phonon-isotope scattering strength in Phono3py. A single-component
//distribution gives exactly zero.
func MassVariance(dist []Isotope) (float64, error) {
	mave, err := AverageMass(dist)
	if err != nil {
		return 0, ErrDecorate(err, "MassVariance")
	}
	weights := make([]float64, len(dist))
	devs := make([]float64, len(dist))
	for i, iso := range dist {
		weights[i] = iso.Abundance
		d := 1.0 - iso.Mass/mave
		devs[i] = d * d
	}
	return floats.Dot(weights, devs) / floats.Sum(weights), nil
}

//Site methods

//Distribution returns the pooled mass distribution of the site: the union
//of the isotope distributions of all components, with each abundance scaled
//by the occupation fraction of its component. This implements the nested
//weighted summation that composes the mass variance across sub-populations
//(isotopes within an element, elements within a doped site).
func (S *Site) Distribution() ([]Isotope, error) {
	if len(S.Components) == 0 {
		return nil, Error{message: EmptyDistro, critical: true}
	}
	fsum := 0.0
	for _, c := range S.Components {
		if c.Fraction < 0 {
			return nil, Error{message: fmt.Sprintf("%s: %s", NegativeWeight, c.Symbol), critical: true}
		}
		fsum += c.Fraction
	}
	if math.Abs(fsum-1.0) > OccupationTol {
		return nil, Error{message: fmt.Sprintf("%s (site %s, got %g)", UnnormalisedSum, S.String(), fsum), critical: true}
	}
	var pooled []Isotope
	for _, c := range S.Components {
		dist := c.Isotopes
		if dist == nil {
			var err error
			dist, err = NaturalIsotopes(c.Symbol)
			if err != nil {
				return nil, ErrDecorate(err, "Distribution")
			}
		} else if err := checkDistro(dist, OccupationTol); err != nil {
			return nil, ErrDecorate(err, "Distribution")
		}
		for _, iso := range dist {
			pooled = append(pooled, Isotope{Mass: iso.Mass, Abundance: c.Fraction * iso.Abundance})
		}
	}
	return pooled, nil
}

//Stats returns the average mass and mass variance of the pooled site
//distribution.
func (S *Site) Stats() (mave, mvar float64, err error) {
	dist, err := S.Distribution()
	if err != nil {
		return 0, 0, ErrDecorate(err, "Stats")
	}
	mave, err = AverageMass(dist)
	if err != nil {
		return 0, 0, ErrDecorate(err, "Stats")
	}
	mvar, err = MassVariance(dist)
	if err != nil {
		return 0, 0, ErrDecorate(err, "Stats")
	}
	return mave, mvar, nil
}

func (S *Site) String() string {
	if S.Label != "" {
		return S.Label
	}
	parts := make([]string, len(S.Components))
	for i, c := range S.Components {
		if len(S.Components) == 1 {
			parts[i] = c.Symbol
		} else {
			parts[i] = fmt.Sprintf("%s:%g", c.Symbol, c.Fraction)
		}
	}
	return strings.Join(parts, ",")
}

//ParseSite parses a command-line site specification. A specification is
//either a bare element symbol ("Ga") or a comma-separated list of
//symbol:fraction pairs describing a mixed site ("Sn:0.5,Ge:0.5"). The
//fractions of a mixed site must sum to one.
func ParseSite(token string) (*Site, error) {
	if token == "" {
		return nil, Error{message: MalformedSite + ": empty token", critical: true}
	}
	parts := strings.Split(token, ",")
	site := &Site{Label: token}
	for _, part := range parts {
		fields := strings.Split(part, ":")
		switch len(fields) {
		case 1:
			if len(parts) > 1 {
				return nil, Error{message: fmt.Sprintf("%s: %q (mixed sites need a fraction for every component)", MalformedSite, token), critical: true}
			}
			site.Components = append(site.Components, Component{Symbol: fields[0], Fraction: 1.0})
		case 2:
			frac, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, Error{message: fmt.Sprintf("%s: %q: %s", MalformedSite, part, err.Error()), critical: true}
			}
			site.Components = append(site.Components, Component{Symbol: fields[0], Fraction: frac})
		default:
			return nil, Error{message: fmt.Sprintf("%s: %q", MalformedSite, part), critical: true}
		}
	}
	//Fail early on unknown symbols, so the error names the offending token
	//rather than surfacing later from Distribution().
	for _, c := range site.Components {
		if _, err := NaturalIsotopes(c.Symbol); err != nil {
			return nil, ErrDecorate(err, "ParseSite")
		}
	}
	return site, nil
}

//ParseIsotope parses an explicit "abundance:mass" pair ("0.5:62.93").
func ParseIsotope(token string) (Isotope, error) {
	fields := strings.Split(token, ":")
	if len(fields) != 2 {
		return Isotope{}, Error{message: fmt.Sprintf("%s: %q", MalformedIsotope, token), critical: true}
	}
	ab, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Isotope{}, Error{message: fmt.Sprintf("%s: %q: %s", MalformedIsotope, token, err.Error()), critical: true}
	}
	m, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Isotope{}, Error{message: fmt.Sprintf("%s: %q: %s", MalformedIsotope, token, err.Error()), critical: true}
	}
	return Isotope{Mass: m, Abundance: ab}, nil
}
