// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.15
//

package main

import (
	"fmt"
	"io"
	"os"

	m "github.com/mkhts/gpssim"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		m.PrintE(err)
		os.Exit(1)
	}
}

// Structure to hold command line argument information
type cmdOpt struct {
	posFn    string
	noiseStd float64
	refCount int
	seed     uint64
	hasSeed  bool
	truePos  m.PosLLH
	spread   int
	refine   bool
	dbg      int
	trials   int
	counts   []int
	tsys     float64
	spoofKm  float64
	spoofGt  float64
	spoofGr  float64
	spoofLm  float64
	marginDB float64
}

func newRootCmd() *cobra.Command {
	var a cmdOpt
	cfg := m.NewConfig()
	a.truePos = cfg.TruePos.ToLLHSphere()

	root := &cobra.Command{
		Use:   "gpssim",
		Short: "Estimate a receiver position from simulated satellite ranges",
		Long: `gpssim places a receiver on a spherical earth, simulates noisy ranges to a
constellation of reference points and estimates the receiver position by
linearized least squares trilateration.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			m.DBG_ = a.dbg
			a.hasSeed = cmd.Flags().Changed("seed")
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApplication(a)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.posFn, "out", "o", "", "Output file path. If not specified, output to stdout.")
	pf.Float64VarP(&a.noiseStd, "noise", "n", cfg.NoiseStd, "Range noise standard deviation [m]. Set to 0 for exact ranges.")
	pf.Uint64VarP(&a.seed, "seed", "s", 0, "Seed of the range noise. If not specified, taken from the clock.")
	pf.VarP(&a.truePos, "pos", "l", "True receiver latitude/longitude/height on the spherical earth. Enclose in quotes like -l \"40 -75 0\"")
	pf.IntVar(&a.spread, "spread", 0, "Use this many reference points spread on a sphere at 20,000 km instead of the default six.")
	pf.IntVarP(&a.dbg, "debug", "x", 0, "Debug information display. Specify level value. 0(OFF), 1(display), 2(detailed display), 3(more detailed), 4(most detailed)")

	root.Flags().IntVarP(&a.refCount, "refs", "r", cfg.RefCount, "Number of reference points fed to the estimator (first N of the constellation)")
	root.Flags().BoolVar(&a.refine, "refine", cfg.Refine, "Refine the linear estimate by Gauss-Newton iteration")

	root.AddCommand(newMonteCarloCmd(&a), newLinkBudgetCmd(&a), newSpoofCmd(&a))
	return root
}

func newMonteCarloCmd(a *cmdOpt) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "Position error statistics over repeated trials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMonteCarlo(*a)
		},
	}
	cmd.Flags().IntVarP(&a.trials, "trials", "t", 1000, "Number of trials")
	cmd.Flags().IntSliceVarP(&a.counts, "counts", "c", []int{4, 5, 6}, "Reference counts to compare. Comma-separated like -c 4,6")
	return cmd
}

func newLinkBudgetCmd(a *cmdOpt) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linkbudget",
		Short: "Received power and C/N0 along the L1 transmission chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withOutput(a.posFn, func(w io.Writer) error {
				m.PrintLinkResults(w, m.EvalLinkChain(m.DefaultLinkChain(), a.tsys))
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&a.tsys, "tsys", m.T0, "System noise temperature [K]")
	return cmd
}

func newSpoofCmd(a *cmdOpt) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spoof",
		Short: "Transmit power a spoofer needs to overpower the real L1 signal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSpoof(*a)
		},
	}
	cmd.Flags().Float64Var(&a.spoofKm, "dist", 5, "Distance from the spoofer to the receiver [km]")
	cmd.Flags().Float64Var(&a.spoofGt, "gt", 5, "Spoofer antenna gain [dB]")
	cmd.Flags().Float64Var(&a.spoofGr, "gr", -3, "Receiver antenna gain [dB]")
	cmd.Flags().Float64Var(&a.spoofLm, "lm", 1, "Spoofer path losses [dB]")
	cmd.Flags().Float64Var(&a.marginDB, "margin", 10, "Margin above the real signal [dB]")
	return cmd
}

// Main application processing
func runApplication(a cmdOpt) error {

	prov, err := selectConstellation(a)
	if err != nil {
		return err
	}

	cfg := setConfig(a)
	rep, err := m.Run(cfg, prov)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	return withOutput(a.posFn, func(w io.Writer) error {
		rep.Print(w)
		return nil
	})
}

func runMonteCarlo(a cmdOpt) error {

	prov, err := selectConstellation(a)
	if err != nil {
		return err
	}

	rslt, err := m.RunMonteCarlo(setConfig(a), prov, a.trials, a.counts)
	if err != nil {
		return fmt.Errorf("monte carlo failed: %w", err)
	}

	return withOutput(a.posFn, func(w io.Writer) error {
		m.PrintMCResults(w, rslt)
		return nil
	})
}

func runSpoof(a cmdOpt) error {
	sat := m.NewL1LinkParam()
	prReal := m.LinkBudget(sat)
	spoof := &m.LinkParam{
		Name:    "Spoofer",
		Gt:      a.spoofGt,
		Gr:      a.spoofGr,
		FreqGHz: sat.FreqGHz,
		DistKm:  a.spoofKm,
		Lm:      a.spoofLm,
	}
	pt := m.RequiredSpoofPower(prReal, spoof, a.marginDB)
	return withOutput(a.posFn, func(w io.Writer) error {
		fmt.Fprintf(w, "Real received power: %.2f dBW\n", prReal)
		fmt.Fprintf(w, "Required spoofing transmit power: %.2f dBW\n", pt)
		return nil
	})
}

// Default six points, or the golden spiral if --spread is given
func selectConstellation(a cmdOpt) (m.ConstellationProvider, error) {
	if a.spread > 0 {
		c, err := m.SpreadConstellation(a.spread, m.ORBIT_RADIUS)
		if err != nil {
			return nil, fmt.Errorf("failed to build constellation: %w", err)
		}
		return c, nil
	}
	return m.DefaultConstellation(), nil
}

func setConfig(a cmdOpt) *m.Config {
	cfg := m.NewConfig()
	cfg.NoiseStd = a.noiseStd
	cfg.RefCount = a.refCount
	cfg.Seed = a.seed
	cfg.HasSeed = a.hasSeed
	cfg.TruePos = a.truePos.ToXYZSphere()
	cfg.Refine = a.refine
	m.PrintD(1, "true pos(llh, xyz): %s, %s\n", a.truePos.String(), cfg.TruePos.String())
	return cfg
}

// Write to the output file, or stdout if no file is specified
func withOutput(fn string, f func(w io.Writer) error) error {
	if len(fn) == 0 {
		return f(os.Stdout)
	}
	out, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()
	return f(out)
}
