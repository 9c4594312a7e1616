package main

import (
	"fmt"

	"github.com/spf13/cobra"

	phonogo "github.com/dtlloyd/phonogo"
)

var (
	isotopePairs []string
	scriptable   bool
)

// isotopesCmd computes isotopic mass statistics
var isotopesCmd = &cobra.Command{
	Use:   "isotopes [site ...]",
	Short: "Average mass and mass variance of isotope distributions",
	Long: `Computes the average atomic mass and the mass variance entering the
phonon-isotope scattering rate for one or more crystal sites.

Sites are given as element symbols, optionally mixed with site-occupation
fractions:

  phonogo isotopes Ga As
  phonogo isotopes Sn:0.5,Ge:0.5

Natural isotopic abundances are built in. An explicit distribution can be
given instead with repeated --isotope abundance:mass pairs:

  phonogo isotopes --isotope 0.5:6.015122 --isotope 0.5:7.016004

--scriptable prints one "label m_ave m_var" line per site for use in shell
pipelines.`,
	RunE: runIsotopes,
}

func init() {
	isotopesCmd.Flags().StringArrayVar(&isotopePairs, "isotope", nil, "Explicit abundance:mass pair (repeatable)")
	isotopesCmd.Flags().BoolVar(&scriptable, "scriptable", false, "One machine-readable line per site")
}

func runIsotopes(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && len(isotopePairs) == 0 {
		return fmt.Errorf("isotopes: no sites given (element symbols, mixtures, or --isotope pairs)")
	}

	var sites []*phonogo.Site
	for _, token := range args {
		site, err := phonogo.ParseSite(token)
		if err != nil {
			return err
		}
		sites = append(sites, site)
	}
	if len(isotopePairs) > 0 {
		site, err := customSite(isotopePairs)
		if err != nil {
			return err
		}
		sites = append(sites, site)
	}

	for _, site := range sites {
		mave, mvar, err := site.Stats()
		if err != nil {
			return err
		}
		if scriptable {
			fmt.Printf("%s %.6f %.6e\n", site.Label, mave, mvar)
			continue
		}
		fmt.Println(site)
		fmt.Printf("  m_ave = %.6f\n", mave)
		fmt.Printf("  m_var = %.6e\n\n", mvar)
	}
	return nil
}

// customSite builds a single site from explicit abundance:mass pairs.
func customSite(pairs []string) (*phonogo.Site, error) {
	isos := make([]phonogo.Isotope, 0, len(pairs))
	for _, token := range pairs {
		iso, err := phonogo.ParseIsotope(token)
		if err != nil {
			return nil, err
		}
		isos = append(isos, iso)
	}
	return &phonogo.Site{
		Label: "custom",
		Components: []phonogo.Component{
			{Symbol: "custom", Fraction: 1.0, Isotopes: isos},
		},
	}, nil
}
