package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strconv"

	"github.com/estax/estax/internal/calculation"
	"github.com/estax/estax/internal/config"
	"github.com/estax/estax/internal/domain"
	"github.com/estax/estax/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "estax [income]",
	Short: "Spanish IRPF and Social Security calculator",
	Long: `Calculate Spanish personal income tax (IRPF) and Social Security
contributions from gross income and personal/family attributes.

Examples:
  estax 60000                          Calculate tax for €60,000 annual income
  estax 50000 --verbose                Show detailed bracket breakdown
  estax 45000 --allowance 7000         Use a custom personal allowance
  estax 3500 --monthly                 Treat income as monthly
  estax 60000 --region madrid          Include Madrid regional IRPF
  estax 100000 --beckham-law           Apply the Beckham Law flat regime
  estax 60000 --children-under-3 1 --children-3-plus 1
  estax 60000 --age 68                 Age-adjusted personal allowance
  estax regions                        Show bracket tables for all regions

Available regions: madrid, catalonia, andalusia, valencia, basque, galicia,
castilla_leon, canary_islands, none`,
	Args: cobra.ExactArgs(1),
	RunE: runCalculate,
}

func runCalculate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	income, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid income %q: %w", args[0], err)
	}

	engine, err := buildEngine(cmd)
	if err != nil {
		return err
	}

	profile, dependents, err := optionsFromFlags(cmd, income)
	if err != nil {
		return err
	}

	result, err := engine.Calculate(profile, dependents)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	verbose, _ := cmd.Flags().GetBool("verbose")
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown output format: %s (valid: console, json, csv)", format)
	}
	data, err := f.Format(result, verbose)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

// buildEngine constructs the tax engine over the embedded rates, or over a
// rates file when --rates is given.
func buildEngine(cmd *cobra.Command) (*calculation.TaxEngine, error) {
	ratesFile, _ := cmd.Flags().GetString("rates")
	if ratesFile == "" {
		return calculation.NewTaxEngine()
	}
	rates, err := config.NewRatesParser().LoadFromFile(ratesFile)
	if err != nil {
		return nil, err
	}
	return calculation.NewTaxEngineWithRates(*rates)
}

// optionsFromFlags converts the flag set into the strongly-typed engine
// inputs. Every recognized option is enumerated and defaulted here.
func optionsFromFlags(cmd *cobra.Command, income float64) (domain.TaxpayerProfile, domain.Dependents, error) {
	flags := cmd.Flags()

	regionStr, _ := flags.GetString("region")
	region, err := domain.ParseRegion(regionStr)
	if err != nil {
		return domain.TaxpayerProfile{}, domain.Dependents{}, err
	}

	monthly, _ := flags.GetBool("monthly")
	beckham, _ := flags.GetBool("beckham-law")

	profile := domain.TaxpayerProfile{
		GrossIncome: decimal.NewFromFloat(income),
		Monthly:     monthly,
		Region:      region,
		BeckhamLaw:  beckham,
	}
	// Only an explicit --ss-rate overrides the configured rate; 0 is a
	// valid override, so the flag default must not leak into the profile.
	if flags.Changed("ss-rate") {
		ssRate, _ := flags.GetFloat64("ss-rate")
		rate := decimal.NewFromFloat(ssRate)
		profile.SocialSecurityRate = &rate
	}
	if flags.Changed("age") {
		age, _ := flags.GetInt("age")
		profile.Age = &age
	}
	if flags.Changed("allowance") {
		allowance, _ := flags.GetFloat64("allowance")
		override := decimal.NewFromFloat(allowance)
		profile.AllowanceOverride = &override
	}

	getInt := func(name string) int {
		v, _ := flags.GetInt(name)
		return v
	}
	getBool := func(name string) bool {
		v, _ := flags.GetBool(name)
		return v
	}
	dependents := domain.Dependents{
		ChildrenUnder3:         getInt("children-under-3"),
		Children3Plus:          getInt("children-3-plus"),
		ChildrenDisability33:   getInt("children-disability-33"),
		ChildrenDisability65:   getInt("children-disability-65"),
		Ascendants65:           getInt("ascendants-65"),
		AscendantsDisability33: getInt("ascendants-disability-33"),
		AscendantsDisability65: getInt("ascendants-disability-65"),

		LargeFamily:        getBool("large-family"),
		LargeFamilySpecial: getBool("large-family-special"),
		SingleParent:       getBool("single-parent"),

		TaxpayerDisability33:         getBool("taxpayer-disability-33"),
		TaxpayerDisability65:         getBool("taxpayer-disability-65"),
		TaxpayerDisabilityMobility:   getBool("taxpayer-disability-mobility"),
		TaxpayerDisabilityDependency: getBool("taxpayer-disability-dependency"),
	}

	return profile, dependents, nil
}

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Show bracket tables and combined rates for all regions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		engine, err := buildEngine(cmd)
		if err != nil {
			return err
		}
		fmt.Print(output.FormatRegionsReport(engine))
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [rates-file]",
	Short: "Validate a rates configuration file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rates, err := config.NewRatesParser().LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}
		if _, err := calculation.NewTaxEngineWithRates(*rates); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Rates file %s is valid\n", args[0])
	},
}

var ratesTemplateCmd = &cobra.Command{
	Use:   "rates-template [output-file]",
	Short: "Write the embedded rates to a YAML file as an editing template",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rates := calculation.DefaultRates()
		if err := config.SaveRates(&rates, args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Wrote rates template to %s\n", args[0])
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "estax %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func init() {
	flags := rootCmd.Flags()
	flags.Bool("monthly", false, "Treat income as monthly instead of annual")
	flags.Int("age", 0, "Taxpayer age in years (affects personal allowance: <65=€5,550, 65-74=€6,700, 75+=€8,100)")
	flags.Float64("allowance", 0, "Personal allowance amount (overrides age-based selection)")
	flags.Float64("ss-rate", 0.0635, "Social security rate as a decimal")
	flags.String("region", "none", "Spanish region for regional IRPF tax")
	flags.Bool("beckham-law", false, "Apply the Beckham Law (24% flat rate up to €600,000; excess at progressive state rates, no regional tax)")

	flags.Int("children-under-3", 0, "Number of children under 3 years old")
	flags.Int("children-3-plus", 0, "Number of children 3 years old or older")
	flags.Int("children-disability-33", 0, "Number of children with 33%+ disability")
	flags.Int("children-disability-65", 0, "Number of children with 65%+ disability")
	flags.Int("ascendants-65", 0, "Number of ascendants over 65 years old")
	flags.Int("ascendants-disability-33", 0, "Number of ascendants with 33%+ disability")
	flags.Int("ascendants-disability-65", 0, "Number of ascendants with 65%+ disability")
	flags.Bool("large-family", false, "Large family status (general)")
	flags.Bool("large-family-special", false, "Special large family status (5+ children or 4+ with disability)")
	flags.Bool("single-parent", false, "Single parent family status")
	flags.Bool("taxpayer-disability-33", false, "Taxpayer has 33%+ disability")
	flags.Bool("taxpayer-disability-65", false, "Taxpayer has 65%+ disability")
	flags.Bool("taxpayer-disability-mobility", false, "Taxpayer has a mobility disability")
	flags.Bool("taxpayer-disability-dependency", false, "Taxpayer requires assistance due to dependency")

	flags.BoolP("verbose", "v", false, "Show detailed tax bracket breakdown")
	flags.StringP("format", "f", "console", "Output format (console, json, csv)")

	rootCmd.PersistentFlags().String("rates", "", "Path to a YAML rates file replacing the embedded rates")

	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(ratesTemplateCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
