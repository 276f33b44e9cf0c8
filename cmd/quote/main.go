package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"gridquote/pkg/core/benchmark"
	corequote "gridquote/pkg/core/quote"
	"gridquote/pkg/core/rates"
	"gridquote/pkg/core/utils"

	"github.com/joho/godotenv"
)

func pct(p *float64) string {
	if p == nil {
		return "     n/a"
	}
	return fmt.Sprintf("%7.1f%%", *p*100)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	jsonOut := flag.Bool("json", false, "emit the full quote as JSON instead of a report")
	showAudit := flag.Bool("audit", false, "print the full audit trail")
	installYear := flag.Int("year", 0, "install year override (default: current year)")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("Usage: quote [-json] [-audit] [-year N] <request file>")
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read request file: %v", err)
	}

	input, prefs, err := utils.ParseQuoteRequest(raw)
	if err != nil {
		log.Fatalf("Failed to parse request: %v", err)
	}

	reg := benchmark.NewRegistry()
	opts := []corequote.Option{corequote.WithVerbose()}
	if *installYear > 0 {
		opts = append(opts, corequote.WithInstallYear(*installYear))
	}
	orc := corequote.New(reg, rates.NewStaticProvider(), opts...)

	quote, err := orc.CalculateQuote(context.Background(), input, prefs)
	if err != nil {
		log.Fatalf("Quote failed: %v", err)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(quote)
		return
	}

	base := quote.Baseline
	m := base.Financials.Metrics

	fmt.Println("\n################################################################################")
	fmt.Println("                      GRIDQUOTE ENGINE - SYSTEM PROPOSAL")
	fmt.Printf("                      Quote: %s\n", quote.QuoteID)
	fmt.Println("################################################################################")

	// [1] LOAD
	fmt.Println("\n[1] LOAD PROFILE")
	fmt.Printf("Peak Demand:         %10.1f kW  (source: %s)\n", base.Load.PeakDemandKW, base.Load.PeakSource)
	fmt.Printf("Average Demand:      %10.1f kW  (load factor %.2f)\n", base.Load.AverageDemandKW, base.Load.LoadFactor)
	fmt.Printf("Annual Consumption:  %10.0f kWh\n", base.Load.AnnualConsumptionKWh)
	if base.Load.ServiceLimitReached {
		fmt.Printf("NOTE: demand clamped at service capacity (%.0f kW)\n", base.Load.ServiceCapacityKW)
	}

	// [2] EQUIPMENT
	fmt.Println("\n[2] BASELINE EQUIPMENT")
	fmt.Printf("%-12s | %10s | %12s | %8s\n", "Component", "Power (kW)", "Energy (kWh)", "Qty")
	fmt.Println(strings.Repeat("-", 52))
	for _, eq := range base.Equipment {
		fmt.Printf("%-12s | %10.1f | %12.1f | %8d\n", eq.Kind, eq.PowerKW, eq.EnergyKWh, eq.Quantity)
	}

	// [3] FINANCIALS
	fmt.Println("\n[3] BASELINE FINANCIALS")
	fmt.Printf("Gross CAPEX:         $ %11.0f\n", m.GrossCapex)
	fmt.Printf("Federal ITC:         $ %11.0f\n", m.ITCAmount)
	fmt.Printf("State Incentives:    $ %11.0f\n", m.StateIncentives)
	fmt.Printf("Net Cost:            $ %11.0f\n", m.NetCost)
	fmt.Printf("Year-1 Savings:      $ %11.0f\n", m.AnnualSavingsYear1)
	fmt.Printf("NPV:                 $ %11.0f\n", m.NPV)
	fmt.Printf("Levered IRR:           %s\n", pct(m.LeveredIRR))
	fmt.Printf("Unlevered IRR:         %s\n", pct(m.UnleveredIRR))
	if m.MinimumDSCR != nil {
		fmt.Printf("Minimum DSCR:          %8.2fx\n", *m.MinimumDSCR)
	}
	if m.LCOS != nil {
		fmt.Printf("LCOS:                $ %9.4f /kWh\n", *m.LCOS)
	}
	fmt.Printf("Payback:               %8.1f years\n", m.PaybackYears)
	for _, w := range m.ConvergenceWarnings {
		fmt.Printf("WARNING: %s solver did not converge\n", w)
	}

	// [4] TIERS
	fmt.Println("\n[4] SYSTEM OPTIONS")
	fmt.Printf("%-12s | %6s | %12s | %12s | %12s\n", "Tier", "Scale", "Battery kW", "Net Cost", "NPV")
	fmt.Println(strings.Repeat("-", 66))
	names := make([]string, 0, len(quote.Options))
	for name := range quote.Options {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return quote.Options[names[i]].ScaleFactor < quote.Options[names[j]].ScaleFactor
	})
	for _, name := range names {
		opt := quote.Options[name]
		var batteryKW float64
		for _, eq := range opt.Equipment {
			if eq.Kind == "battery" {
				batteryKW = eq.PowerKW
			}
		}
		om := opt.Financials.Metrics
		fmt.Printf("%-12s | %6.2f | %12.1f | $ %10.0f | $ %10.0f\n",
			name, opt.ScaleFactor, batteryKW, om.NetCost, om.NPV)
	}

	// [5] AUDIT
	if *showAudit {
		fmt.Println("\n[5] AUDIT TRAIL")
		fmt.Printf("%-40s | %14s | %-10s | %s\n", "Component", "Value", "Unit", "Source")
		fmt.Println(strings.Repeat("-", 100))
		for _, e := range quote.Audit {
			fmt.Printf("%-40s | %14.4f | %-10s | %s\n", e.Component, e.Value, e.Unit, e.SourceID)
		}
	} else {
		fmt.Printf("\n[5] AUDIT TRAIL: %d entries (rerun with -audit to print)\n", len(quote.Audit))
	}

	fmt.Println("\n[Done] Quote Complete.")
}
