package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"distrimed/internal/domain"
	"distrimed/internal/logic"
)

type listFlags struct {
	format         string
	representative int
	material       string
	period         string
	status         string
}

func newListCmd(opts *options) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print catalog listings",
	}
	cmd.PersistentFlags().StringVarP(&flags.format, "format", "f", formatTable, "Output format: table|json")

	distributions := &cobra.Command{
		Use:     "distributions",
		Aliases: []string{"dist", "distribution"},
		Short:   "List distribution records",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListDistributions(cmd, opts, flags)
		},
	}
	distributions.Flags().IntVarP(&flags.representative, "rep", "r", 0, "Only this representative code")
	distributions.Flags().StringVarP(&flags.material, "material", "m", "", "Only this material id")
	distributions.Flags().StringVar(&flags.period, "period", "", "Only this period (YYYY-MM)")
	distributions.Flags().StringVar(&flags.status, "status", "", "Only this status: pending|delivered|returned|cancelled")

	materials := &cobra.Command{
		Use:     "materials",
		Aliases: []string{"mat", "material"},
		Short:   "List the materials master",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListMaterials(cmd, opts, flags)
		},
	}

	cmd.AddCommand(distributions, materials)
	return cmd
}

func checkFormat(format string) (string, error) {
	f := strings.ToLower(format)
	if f != formatTable && f != formatJSON {
		return "", fmt.Errorf("unsupported format: %s", format)
	}
	return f, nil
}

func runListDistributions(cmd *cobra.Command, opts *options, flags *listFlags) error {
	format, err := checkFormat(flags.format)
	if err != nil {
		return err
	}
	filter := logic.Filter{
		RepresentativeCode: flags.representative,
		MaterialID:         flags.material,
		Period:             flags.period,
		Status:             domain.DistributionStatus(strings.ToLower(flags.status)),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return fmt.Errorf("unknown status %q", flags.status)
	}

	stores, err := opts.loadStores(cmd)
	if err != nil {
		return err
	}
	dists := filter.Apply(stores.Distributions.All())

	out := cmd.OutOrStdout()
	if format == formatJSON {
		return writeJSON(out, toDistributionJSON(dists))
	}
	renderDistributions(out, dists)
	return nil
}

func runListMaterials(cmd *cobra.Command, opts *options, flags *listFlags) error {
	format, err := checkFormat(flags.format)
	if err != nil {
		return err
	}
	stores, err := opts.loadStores(cmd)
	if err != nil {
		return err
	}
	materials := stores.Materials.All()

	out := cmd.OutOrStdout()
	if format == formatJSON {
		payload := make([]materialJSON, 0, len(materials))
		for _, m := range materials {
			payload = append(payload, toMaterialJSON(m))
		}
		return writeJSON(out, payload)
	}
	renderMaterials(out, materials)
	return nil
}
