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
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/agrirank/internal/bootstrap"
	"github.com/tomtom215/agrirank/internal/config"
	"github.com/tomtom215/agrirank/internal/models"
	"github.com/tomtom215/agrirank/internal/recommend"
	"github.com/tomtom215/agrirank/internal/validation"
)

// fertilizerArgNames are the positional arguments of the fertilizer command, in order.
var fertilizerArgNames = []string{
	"temperature", "humidity", "moisture", "soil_type", "crop_type", "nitrogen", "potassium", "phosphorous",
}

// parseFertilizerArgs builds a validated request from the positional arguments.
func parseFertilizerArgs(args []string, scale string) (*models.FertilizerRequest, error) {
	if len(args) != len(fertilizerArgNames) {
		return nil, fmt.Errorf("expected %d arguments (%s), got %d",
			len(fertilizerArgNames), strings.Join(fertilizerArgNames, " "), len(args))
	}

	numbers := make(map[int]float64, 6)
	for _, i := range []int{0, 1, 2, 5, 6, 7} {
		v, err := strconv.ParseFloat(strings.TrimSpace(args[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a valid number, got %q", fertilizerArgNames[i], args[i])
		}
		numbers[i] = v
	}

	req := &models.FertilizerRequest{
		Temperature: numbers[0],
		Humidity:    numbers[1],
		Moisture:    numbers[2],
		SoilType:    strings.TrimSpace(args[3]),
		CropType:    strings.TrimSpace(args[4]),
		Nitrogen:    numbers[5],
		Potassium:   numbers[6],
		Phosphorous: numbers[7],
		NPKScale:    scale,
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr
	}
	return req, nil
}

// fertilizerInput converts a request to classifier inputs, applying the
// slider scale unless the request is already in model units.
func fertilizerInput(req *models.FertilizerRequest, npkScale float64) recommend.FertilizerInput {
	in := recommend.FertilizerInput{
		Temperature: req.Temperature,
		Humidity:    req.Humidity,
		Moisture:    req.Moisture,
		SoilType:    req.SoilType,
		CropType:    req.CropType,
		Nitrogen:    req.Nitrogen,
		Potassium:   req.Potassium,
		Phosphorous: req.Phosphorous,
	}
	if req.NPKScale != models.NPKScaleModel {
		in = in.ScaleNPK(npkScale)
	}
	return in
}

func (c *cli) fertilizerCmd() *cobra.Command {
	var scale string

	cmd := &cobra.Command{
		Use:   "fertilizer <temperature> <humidity> <moisture> <soil> <crop> <nitrogen> <potassium> <phosphorous>",
		Short: "Recommend a fertilizer for soil and weather readings",
		Long: `Classifies the readings with the fertilizer model. Nitrogen, potassium and
phosphorous are dashboard slider values (0-150) and are multiplied by
fertilizer.npk_scale unless --scale model is given.

Run "agrirank vocabulary" for the accepted soil and crop types.`,
		Example: `  agrirank fertilizer 26 52 38 Sandy Maize 100 0 0
  agrirank fertilizer 29 58 52 Loamy Sugarcane 12 0 36 --scale model`,
		Args: cobra.ExactArgs(len(fertilizerArgNames)),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseFertilizerArgs(args, scale)
			if err != nil {
				return err
			}

			return c.withRuntime(cmd, func(ctx context.Context, rt *bootstrap.Runtime, cfg *config.Config) error {
				in := fertilizerInput(req, cfg.Fertilizer.NPKScale)
				name, err := rt.Engine.RecommendFertilizer(ctx, in)
				if err != nil {
					return err
				}
				return c.writeFertilizer(cmd.OutOrStdout(), name, in)
			})
		},
	}

	cmd.Flags().StringVar(&scale, "scale", models.NPKScaleUI, "nutrient units: ui (slider values) or model")
	return cmd
}

func (c *cli) writeFertilizer(w io.Writer, name string, in recommend.FertilizerInput) error {
	if c.asJSON {
		return printJSON(w, models.FertilizerResponse{
			Fertilizer: name,
			ScaledInput: map[string]float64{
				"temperature": in.Temperature,
				"humidity":    in.Humidity,
				"moisture":    in.Moisture,
				"nitrogen":    in.Nitrogen,
				"potassium":   in.Potassium,
				"phosphorous": in.Phosphorous,
			},
		})
	}
	_, err := fmt.Fprintf(w, "Recommended fertilizer: %s\n%s\n", titleStyle.Render(name),
		mutedStyle.Render(fmt.Sprintf("model input N=%.2f K=%.2f P=%.2f", in.Nitrogen, in.Potassium, in.Phosphorous)))
	return err
}

func (c *cli) vocabularyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vocabulary",
		Short: "List accepted soil and crop types and possible fertilizers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withRuntime(cmd, func(_ context.Context, rt *bootstrap.Runtime, _ *config.Config) error {
				vocab := rt.Engine.FertilizerVocabulary()
				w := cmd.OutOrStdout()
				if c.asJSON {
					return printJSON(w, vocab)
				}
				_, err := fmt.Fprintf(w, "Soil types:  %s\nCrop types:  %s\nFertilizers: %s\n",
					strings.Join(vocab.Soils, ", "), strings.Join(vocab.Crops, ", "), strings.Join(vocab.Fertilizers, ", "))
				return err
			})
		},
	}
}
