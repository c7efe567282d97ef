// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/agrirank/internal/agronomy"
	"github.com/tomtom215/agrirank/internal/models"
	"github.com/tomtom215/agrirank/internal/validation"
)

// nutrientFlags registers --n, --p and --k with the default soil test values.
func nutrientFlags(cmd *cobra.Command, q *models.NutrientQuery) {
	cmd.Flags().Float64Var(&q.Nitrogen, "n", models.DefaultNitrogen, "soil nitrogen (kg/ha)")
	cmd.Flags().Float64Var(&q.Phosphorous, "p", models.DefaultPhosphorous, "soil phosphorous (kg/ha)")
	cmd.Flags().Float64Var(&q.Potassium, "k", models.DefaultPotassium, "soil potassium (kg/ha)")
}

func (c *cli) guidanceCmd() *cobra.Command {
	var q models.NutrientQuery

	cmd := &cobra.Command{
		Use:   "guidance <crop>",
		Short: "Nutrient, pH, pest and irrigation advice for a crop",
		Example: `  agrirank guidance rice --n 60 --p 30 --k 40
  agrirank guidance cotton --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verr := validation.ValidateStruct(&q); verr != nil {
				return verr
			}
			g, err := c.catalog.Guidance(args[0], q.Nitrogen, q.Phosphorous, q.Potassium)
			if err != nil {
				return err
			}
			return c.writeGuidance(cmd.OutOrStdout(), g)
		},
	}
	nutrientFlags(cmd, &q)
	return cmd
}

func (c *cli) writeGuidance(w io.Writer, g *agronomy.Guidance) error {
	if c.asJSON {
		return printJSON(w, g)
	}

	t := newTable(fmt.Sprintf("%s %s (%s)", g.Emoji, g.Crop, g.Group), "Nutrient", "Measured", "Ideal", "Delta", "Status")
	for _, n := range g.Nutrients {
		t.addRow(n.Nutrient,
			strconv.FormatFloat(n.Value, 'f', 1, 64),
			strconv.FormatFloat(n.Ideal, 'f', 1, 64),
			fmt.Sprintf("%+.1f", n.Delta),
			n.Status)
	}
	if err := t.render(w); err != nil {
		return err
	}

	var sb strings.Builder
	if g.Balanced {
		sb.WriteString("Nutrients are balanced for this crop.\n")
	}
	for _, a := range g.Fertilizers {
		fmt.Fprintf(&sb, "- %s: %s\n", a.Fertilizer, a.Dosage)
	}
	fmt.Fprintf(&sb, "Optimal pH: %.1f-%.1f\n", g.PH.Optimal.Min, g.PH.Optimal.Max)
	fmt.Fprintf(&sb, "Irrigation: %s\n", g.Irrigation.Advice)
	if len(g.Pests) > 0 {
		names := make([]string, 0, len(g.Pests))
		for _, p := range g.Pests {
			names = append(names, p.Pest)
		}
		fmt.Fprintf(&sb, "Watch for: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(&sb, "Market price: Rs %d/quintal\n", g.MarketPrice)

	_, err := fmt.Fprint(w, sb.String())
	return err
}

func (c *cli) suitabilityCmd() *cobra.Command {
	var (
		q    models.NutrientQuery
		topN int
	)

	cmd := &cobra.Command{
		Use:     "suitability <region>",
		Short:   "Score catalog crops against a region's climate and a soil test",
		Example: `  agrirank suitability punjab --top 5`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verr := validation.ValidateStruct(&q); verr != nil {
				return verr
			}
			if topN < 1 || topN > 100 {
				return fmt.Errorf("top must be between 1 and 100")
			}
			report, err := c.catalog.SuitabilityRanking(args[0], q.Nitrogen, q.Phosphorous, q.Potassium, topN)
			if err != nil {
				return err
			}
			return c.writeSuitability(cmd.OutOrStdout(), report)
		},
	}
	nutrientFlags(cmd, &q)
	cmd.Flags().IntVar(&topN, "top", agronomy.DefaultSuitabilityTopN, "number of crops to show")
	return cmd
}

func (c *cli) writeSuitability(w io.Writer, report *agronomy.SuitabilityReport) error {
	if c.asJSON {
		return printJSON(w, report)
	}

	t := newTable("Crop suitability for "+report.Region.Name, "#", "Crop", "Group", "Score", "Suitability")
	for _, s := range report.Crops {
		t.addRow(strconv.Itoa(s.Rank), s.Emoji+" "+s.Crop, s.Group, strconv.FormatFloat(s.Score, 'f', 1, 64), s.Suitability)
	}
	return t.render(w)
}
