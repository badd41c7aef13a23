package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently logged foods",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app) error {
				items, err := a.history.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "BARCODE\tNAME\tKCAL\tUSED\tLAST")
				for _, item := range items {
					fmt.Fprintf(out, "%s\t%s\t%.0f\t%d\t%s\n",
						item.Entry.Barcode, item.Entry.Name, item.Entry.Nutrition.Calories,
						item.TimesUsed, item.LastUsedAt.Local().Format(domain.DayLayout))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of foods (0 for all)")
	return cmd
}

func newPasscodeHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passcode-hash <passcode>",
		Short: "Print the bcrypt hash to put in AUTH_PASSCODE_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := domain.HashPasscode(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
