// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/agrirank/internal/bootstrap"
	"github.com/tomtom215/agrirank/internal/config"
	"github.com/tomtom215/agrirank/internal/models"
	"github.com/tomtom215/agrirank/internal/recommend"
	"github.com/tomtom215/agrirank/internal/validation"
)

func (c *cli) rankCmd() *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:   "rank <state> [district]",
		Short: "Rank crops for a state and district by predicted yield",
		Long: `Ranks every crop with known requirements by the yield the model predicts
for the region, best first. Names are case-insensitive. Without a district
the state's most frequently recorded district is used.`,
		Example: `  agrirank rank punjab ludhiana
  agrirank rank "uttar pradesh" --top 3 --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := models.RankQuery{State: args[0], TopN: topN}
			if len(args) == 2 {
				query.District = args[1]
			}
			if verr := validation.ValidateStruct(&query); verr != nil {
				return verr
			}

			return c.withRuntime(cmd, func(ctx context.Context, rt *bootstrap.Runtime, _ *config.Config) error {
				resp, err := rt.Engine.RankCrops(ctx, recommend.RankRequest{
					State:    query.State,
					District: query.District,
					TopN:     query.TopN,
				})
				if err != nil {
					return err
				}
				return c.writeRanking(cmd.OutOrStdout(), resp)
			})
		},
	}

	cmd.Flags().IntVarP(&topN, "top", "n", 0, "number of crops to show (default from ranking.default_top_n)")
	return cmd
}

func (c *cli) writeRanking(w io.Writer, resp *recommend.RankResponse) error {
	if c.asJSON {
		return printJSON(w, resp)
	}

	title := fmt.Sprintf("Top crops for %s, %s", resp.District, resp.State)
	if resp.DistrictInferred {
		title += " (most recorded district)"
	}
	t := newTable(title, "#", "Crop", "Predicted Yield", "Unit")
	for i, crop := range resp.Crops {
		t.addRow(strconv.Itoa(i+1), crop.Crop, crop.PredictedYield, crop.Unit)
	}
	return t.render(w)
}

func (c *cli) statesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "List states with historical records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withRuntime(cmd, func(ctx context.Context, rt *bootstrap.Runtime, _ *config.Config) error {
				states, err := rt.Store.States(ctx)
				if err != nil {
					return err
				}
				return c.writeList(cmd.OutOrStdout(), states)
			})
		},
	}
}

func (c *cli) districtsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "districts <state>",
		Short: "List the districts recorded for a state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := models.RankQuery{State: args[0]}
			if verr := validation.ValidateStruct(&query); verr != nil {
				return verr
			}
			return c.withRuntime(cmd, func(ctx context.Context, rt *bootstrap.Runtime, _ *config.Config) error {
				districts, err := rt.Store.Districts(ctx, recommend.NormalizeName(query.State))
				if err != nil {
					return err
				}
				return c.writeList(cmd.OutOrStdout(), districts)
			})
		},
	}
}

func (c *cli) writeList(w io.Writer, items []string) error {
	if c.asJSON {
		return printJSON(w, items)
	}
	for _, item := range items {
		if _, err := fmt.Fprintln(w, item); err != nil {
			return err
		}
	}
	return nil
}
