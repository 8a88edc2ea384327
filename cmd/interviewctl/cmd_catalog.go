package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Nitingarg01/Major-project-sub001/internal/catalog"
	"github.com/Nitingarg01/Major-project-sub001/internal/company"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(catalogCmd, companyCmd)
	catalogCmd.Flags().String("company", "", "target company")
	catalogCmd.Flags().String("title", "Software Engineer", "job title")
	catalogCmd.Flags().String("type", "mixed", "interview type")
	catalogCmd.Flags().Bool("questions", false, "print each round's questions")
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the round plan for a company and role",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		companyName, _ := cmd.Flags().GetString("company")
		title, _ := cmd.Flags().GetString("title")
		interviewType, _ := cmd.Flags().GetString("type")
		showQuestions, _ := cmd.Flags().GetBool("questions")

		builder, _, err := newBuilder()
		if err != nil {
			return err
		}
		profiles, err := company.NewProfileSource()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		intel, err := profiles.Lookup(ctx, companyName)
		if err != nil {
			return err
		}
		rounds, err := builder.Build(ctx, catalog.Request{
			CompanyName:   companyName,
			JobTitle:      title,
			InterviewType: interviewType,
			Company:       intel,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "INDEX\tROUND\tTYPE\tMINUTES\tQUESTIONS")
		for i, r := range rounds {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n", i, r.ID, r.Type, r.DurationMinutes, len(r.Questions))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if showQuestions {
			for _, r := range rounds {
				fmt.Printf("\n[%s]\n", r.ID)
				for _, q := range r.Questions {
					fmt.Printf("  (%.0f) %s\n", q.PointValue, q.Text)
				}
			}
		}
		return nil
	},
}

var companyCmd = &cobra.Command{
	Use:   "company [name]",
	Short: "Print a company profile, or list known companies",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := company.NewProfileSource()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			for _, name := range profiles.Names() {
				fmt.Println(name)
			}
			return nil
		}

		intel, err := profiles.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if intel == nil {
			return fmt.Errorf("no profile for %q", args[0])
		}
		return printJSON(os.Stdout, intel)
	},
}
