package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mapiker/core/pricing"
	"mapiker/internal/config"
)

var (
	quoteCountries int
	quoteFeatures  []string
	quoteFormat    string
)

// quoteCmd prices a selection from flags, without touching a store.
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Compute a price breakdown for countries and features",
	Long: `Computes a price breakdown from the configured rate card.

The first feature listed is free; every further feature is charged per
country.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rates, err := config.Get().RateCard()
		if err != nil {
			return err
		}

		quote, err := pricing.NewEngine(rates).Quote(quoteCountries, quoteFeatures)
		if err != nil {
			return err
		}

		if quoteFormat == "json" {
			return json.NewEncoder(os.Stdout).Encode(quote)
		}

		fmt.Printf("Countries:           %d\n", quote.CountryCount)
		fmt.Printf("Features:            %d (first is free)\n", len(quote.SelectedFeatures))
		fmt.Printf("Base price:          %s %s\n", quote.BasePrice.StringFixed(2), quote.Currency)
		fmt.Printf("Additional features: %s %s\n", quote.AdditionalFeaturesPrice.StringFixed(2), quote.Currency)
		fmt.Printf("Total:               %s %s\n", quote.TotalPrice.StringFixed(2), quote.Currency)
		return nil
	},
}

func init() {
	quoteCmd.Flags().IntVar(&quoteCountries, "countries", 0, "number of countries to price")
	quoteCmd.Flags().StringSliceVar(&quoteFeatures, "features", nil, "ordered feature list (first is free)")
	quoteCmd.Flags().StringVar(&quoteFormat, "format", "text", "output format (text, json)")
}
