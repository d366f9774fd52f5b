// Command formbind inspects the kernel ABI binding layer: it prints
// the fixed parameter list for an integral kind, or the full packing
// plan and output layout for a kernel described in YAML.
//
// Usage:
//
//	formbind signature interior_facet
//	formbind plan kernel.yaml
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"formbind/kernel"
)

func main() {
	root := &cobra.Command{
		Use:          "formbind",
		Short:        "Inspect kernel ABI signatures and field packing plans",
		SilenceUsage: true,
	}
	root.AddCommand(newSignatureCmd(), newPlanCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newSignatureCmd() *cobra.Command {
	var scalarType string
	cmd := &cobra.Command{
		Use:   "signature <kind>",
		Short: "Print the canonical kernel parameter list for an integral kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kernel.ParseIntegralKind(args[0])
			if err != nil {
				return err
			}
			sig := kernel.BuildSignature(kind, "")
			fmt.Fprintf(cmd.OutOrStdout(), "void tabulate_tensor(\n\t%s\n)\n", sig.Decl(scalarType))
			return nil
		},
	}
	cmd.Flags().StringVar(&scalarType, "scalar", "double", "scalar type used for buffer parameters")
	return cmd
}

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <description.yaml>",
		Short: "Print field offsets, views and output blocks for a described kernel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := LoadDescription(args[0])
			if err != nil {
				return err
			}
			k, err := desc.Build("tabulate_tensor")
			if err != nil {
				return err
			}
			printKernel(cmd, k)
			return nil
		},
	}
	return cmd
}

func printKernel(cmd *cobra.Command, k *kernel.Kernel) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "kernel %s (%s)\n\n", k.Name, k.Kind)

	fmt.Fprintln(out, "signature:")
	for _, p := range k.Signature.Params {
		fmt.Fprintf(out, "\t%-24s %s\n", p.Decl("double"), p.Category)
	}

	fmt.Fprintf(out, "\noutput: %s\n", k.ZeroInit.Memset())
	for _, block := range k.Outputs {
		label := "single-sided"
		if len(block.Restrictions) > 0 {
			label = ""
			for _, r := range block.Restrictions {
				label += r.String()
			}
		}
		fmt.Fprintf(out, "\t[%d,%d) %-8s %v\n", block.Offset, block.Offset+block.Size, label, block.Expr)
	}

	if k.Coefficients != nil {
		fmt.Fprintf(out, "\ncoefficients (%s, %d rows, side extent %d):\n",
			k.Coefficients.Buffer, k.Coefficients.TotalSize, k.Coefficients.SideExtent)
		for _, pf := range k.Coefficients.Fields {
			status := "enabled"
			if !pf.Field.Enabled {
				status = "disabled"
			}
			fmt.Fprintf(out, "\t%-12s offset %-4d size %-4d %s\n", pf.Field.Name, pf.Offset, pf.Size, status)
			for _, r := range sortedRestrictions(pf.Views) {
				fmt.Fprintf(out, "\t\t%-2s %v\n", r, pf.Views[r])
			}
		}
	}

	if len(k.Coordinates) > 0 {
		fmt.Fprintln(out, "\ncoordinates:")
		for _, r := range sortedRestrictions(k.Coordinates) {
			fmt.Fprintf(out, "\t%-2s %v\n", r, k.Coordinates[r])
		}
	}
}

func sortedRestrictions[V any](m map[kernel.Restriction]V) []kernel.Restriction {
	keys := make([]kernel.Restriction, 0, len(m))
	for r := range m {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
