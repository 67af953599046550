package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"distrimed/internal/logic"
)

func newShowCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the detail of a representative or material",
	}
	cmd.PersistentFlags().StringVarP(&format, "format", "f", formatTable, "Output format: table|json")

	representative := &cobra.Command{
		Use:     "representative <code>",
		Aliases: []string{"rep"},
		Short:   "Show the distribution summary of a representative",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShowRepresentative(cmd, opts, format, args[0])
		},
	}

	material := &cobra.Command{
		Use:     "material <id>",
		Aliases: []string{"mat"},
		Short:   "Show a material and where it was distributed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShowMaterial(cmd, opts, format, args[0])
		},
	}

	cmd.AddCommand(representative, material)
	return cmd
}

func runShowRepresentative(cmd *cobra.Command, opts *options, format, arg string) error {
	format, err := checkFormat(format)
	if err != nil {
		return err
	}
	code, err := parseCode(arg)
	if err != nil {
		return err
	}
	stores, err := opts.loadStores(cmd)
	if err != nil {
		return err
	}

	summary, err := stores.Distributions.Summary(code)
	if errors.Is(err, logic.ErrNotFound) {
		return fmt.Errorf("no distributions for representative %d: %w", code, err)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == formatJSON {
		rep := summary.Representative
		byStatus := make(map[string]int, len(summary.ByStatus))
		for st, units := range summary.ByStatus {
			byStatus[string(st)] = units
		}
		return writeJSON(out, representativeJSON{
			Code:          rep.Code,
			Name:          rep.Name,
			Zone:          rep.Zone,
			Email:         rep.Email,
			Active:        rep.Active,
			TotalUnits:    summary.TotalUnits,
			ByMaterial:    summary.ByMaterial,
			ByStatus:      byStatus,
			Distributions: toDistributionJSON(summary.Distributions),
		})
	}

	renderRepresentative(out, summary, func(id string) string {
		if m, err := stores.Materials.Get(id); err == nil {
			return m.Name
		}
		return id
	})
	return nil
}

func runShowMaterial(cmd *cobra.Command, opts *options, format, id string) error {
	format, err := checkFormat(format)
	if err != nil {
		return err
	}
	stores, err := opts.loadStores(cmd)
	if err != nil {
		return err
	}

	material, err := stores.Materials.Get(id)
	if err != nil {
		return err
	}
	dists := stores.Distributions.ByMaterial(id)

	out := cmd.OutOrStdout()
	if format == formatJSON {
		return writeJSON(out, materialDetailJSON{
			materialJSON:     toMaterialJSON(material),
			TotalDistributed: distributedUnits(dists),
			Distributions:    toDistributionJSON(dists),
		})
	}
	renderMaterialDetail(out, material, dists)
	return nil
}
