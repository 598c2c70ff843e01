package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"listingscope/domain/listing"
	"listingscope/internal/analysis"
	"listingscope/internal/charts"
	"listingscope/internal/profiling"
)

func newOverviewCmd(opts *options) *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Headline metrics, key insights and a row preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, sel, err := opts.view(cmd)
			if err != nil {
				return err
			}
			summary, err := analysis.Summarize(view)
			if err != nil {
				return err
			}
			insights, err := analysis.ComputeInsights(view)
			if err != nil {
				return err
			}
			preview := view.Rows(rows)

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, map[string]interface{}{
					"selection":  sel,
					"summary":    summary,
					"insights":   insights,
					"total_rows": view.Len(),
					"preview":    preview,
				})
			}

			fmt.Fprintln(out, titleStyle.Render("Dataset Overview"))
			fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top,
				metric("Total Listings", printer.Sprintf("%d", summary.TotalListings)),
				metric("Avg Price", money(summary.MeanPrice)),
				metric("Neighborhoods", strconv.Itoa(summary.Neighbourhoods)),
				metric("Room Types", strconv.Itoa(summary.RoomTypes)),
			))

			fmt.Fprintln(out, titleStyle.Render("Key Insights"))
			fmt.Fprintf(out, "- Average Price: %s per night\n", money(insights.AveragePrice))
			fmt.Fprintf(out, "- Price Range: %s - %s\n", wholeMoney(insights.MinPrice), wholeMoney(insights.MaxPrice))
			fmt.Fprintf(out, "- Most Common Room Type: %s\n", insights.CommonRoomType)
			fmt.Fprintf(out, "- Most Popular Neighborhood: %s\n", insights.PopularNeighbourhood)
			fmt.Fprintf(out, "- Average Reviews per Month: %s\n", decimal(insights.AverageReviewsPerMonth))

			if len(preview) > 0 {
				fmt.Fprintln(out, titleStyle.Render(printer.Sprintf("Preview (%d of %d rows)", len(preview), view.Len())))
				names := make([]string, 0)
				for _, c := range view.Columns() {
					names = append(names, c.Name)
				}
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, strings.Join(names, "\t"))
				for _, row := range preview {
					cells := make([]string, len(names))
					for i, n := range names {
						cells[i] = cell(row[n])
					}
					fmt.Fprintln(w, strings.Join(cells, "\t"))
				}
				return w.Flush()
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 10, "number of rows to preview (-1 for all)")
	return cmd
}

func newDictionaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dictionary",
		Short: "Describe every column of the table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := opts.view(cmd)
			if err != nil {
				return err
			}
			profiles, err := profiling.Profile(view)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, map[string]interface{}{"columns": profiles})
			}

			fmt.Fprintln(out, titleStyle.Render("Data Dictionary"))
			for _, p := range profiles {
				fmt.Fprintf(out, "\n%s  %s\n", headerStyle.Render(p.Name), labelStyle.Render(p.Description))
				fmt.Fprintf(out, "  Data Type: %s   Non-null: %s   Null: %d\n", p.DType, printer.Sprintf("%d", p.NonNull), p.Null)
				if d := p.Distribution; d != nil {
					fmt.Fprintf(out, "  Min: %g   Max: %g   Mean: %.2f\n", d.Min, d.Max, d.Mean)
				}
				if p.Kind == listing.Categorical {
					fmt.Fprintf(out, "  Unique Values: %d\n", p.Unique)
					if len(p.Values) > 0 {
						fmt.Fprintf(out, "  Values: %s\n", strings.Join(p.Values, ", "))
					}
				}
			}
			return nil
		},
	}
}

func newColumnsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "List the columns offered for plotting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := opts.view(cmd)
			if err != nil {
				return err
			}
			numeric, categorical := view.PlotColumns()

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, map[string][]string{"numeric": numeric, "categorical": categorical})
			}
			fmt.Fprintf(out, "%s %s\n", headerStyle.Render("Numeric:"), strings.Join(numeric, ", "))
			fmt.Fprintf(out, "%s %s\n", headerStyle.Render("Categorical:"), strings.Join(categorical, ", "))
			return nil
		},
	}
}

func newPlotCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Build a univariate or bivariate chart",
	}

	render := func(cmd *cobra.Command, spec *charts.ChartSpec) error {
		if opts.asJSON {
			return writeJSON(cmd.OutOrStdout(), spec)
		}
		return printChart(cmd.OutOrStdout(), spec, limit)
	}

	univariate := &cobra.Command{
		Use:   "univariate <column>",
		Short: "Scatter of a numeric column or value counts of a categorical one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := opts.view(cmd)
			if err != nil {
				return err
			}
			spec, err := charts.Univariate(view, args[0])
			if err != nil {
				return err
			}
			return render(cmd, spec)
		},
	}

	bivariate := &cobra.Command{
		Use:   "bivariate <x> <y>",
		Short: "Scatter, mean bar or grouped counts depending on the column kinds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := opts.view(cmd)
			if err != nil {
				return err
			}
			spec, err := charts.Bivariate(view, args[0], args[1])
			if err != nil {
				return err
			}
			return render(cmd, spec)
		},
	}

	cmd.PersistentFlags().IntVar(&limit, "limit", 20, "points to print per series in text mode (-1 for all)")
	cmd.AddCommand(univariate, bivariate)
	return cmd
}

func newCorrelationCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "correlation",
		Short: "Pearson correlation between the numeric columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := opts.view(cmd)
			if err != nil {
				return err
			}
			m, err := analysis.Correlation(view)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, charts.Heatmap(m))
			}

			fmt.Fprintln(out, titleStyle.Render("Correlation Heatmap"))
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(w, "\t%s\t\n", strings.Join(m.Columns, "\t"))
			for i, name := range m.Columns {
				cells := make([]string, len(m.Columns))
				for j := range m.Columns {
					cells[j] = decimal(m.Values[i][j])
				}
				fmt.Fprintf(w, "%s\t%s\t\n", name, strings.Join(cells, "\t"))
			}
			return w.Flush()
		},
	}
}

func newQuestionsCmd(opts *options) *cobra.Command {
	var number int

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Answer the analysis questions against the selected listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := opts.view(cmd)
			if err != nil {
				return err
			}

			var answers []charts.Answer
			if number == 0 {
				if answers, err = charts.AnswerAll(view); err != nil {
					return err
				}
			} else {
				questions := charts.Questions()
				if number < 1 || number > len(questions) {
					return fmt.Errorf("question %d does not exist, pick 1-%d", number, len(questions))
				}
				a, err := questions[number-1].Answer(view)
				if err != nil {
					return err
				}
				answers = []charts.Answer{a}
			}

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, map[string]interface{}{"questions": answers})
			}
			for _, a := range answers {
				fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%d. %s", a.Number, a.Title)))
				for _, p := range a.Parts {
					if p.Chart != nil {
						fmt.Fprintln(out, infoStyle.Render(fmt.Sprintf("[%s] %s (%d points)", p.Chart.Shape, p.Chart.Title, p.Chart.Points())))
					}
					fmt.Fprintln(out, p.Narrative)
				}
				if a.Demand != nil {
					if err := printDemand(out, a.Demand); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&number, "number", 0, "answer only this question (1-11)")
	return cmd
}

func printChart(out io.Writer, spec *charts.ChartSpec, limit int) error {
	fmt.Fprintln(out, titleStyle.Render(spec.Title))
	fmt.Fprintf(out, "%s %s   %s %s   %s %s\n",
		labelStyle.Render("shape"), spec.Shape,
		labelStyle.Render("x"), spec.XLabel,
		labelStyle.Render("y"), spec.YLabel)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, s := range spec.Series {
		if s.Name != "" && len(spec.Series) > 1 {
			fmt.Fprintln(w, headerStyle.Render(s.Name))
		}
		n := len(s.Y)
		if limit >= 0 && n > limit {
			n = limit
		}
		for i := 0; i < n; i++ {
			fmt.Fprintf(w, "  %v\t%s\n", s.X[i], decimal(s.Y[i]))
		}
		if n < len(s.Y) {
			fmt.Fprintln(w, labelStyle.Render(fmt.Sprintf("  ... %d more", len(s.Y)-n)))
		}
	}
	return w.Flush()
}

func printDemand(out io.Writer, d *analysis.DemandTable) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\tlistings\n", d.Key, strings.Join(d.Measures, "\t"))
	for _, row := range d.Rows {
		cells := make([]string, len(d.Measures))
		for i, m := range d.Measures {
			cells[i] = decimal(row.Mean(m))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", row.Key, strings.Join(cells, "\t"), printer.Sprintf("%d", row.Count))
	}
	return w.Flush()
}

func metric(label, value string) string {
	return metricBox.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

func money(v *float64) string {
	if v == nil {
		return listing.NotAvailable
	}
	return printer.Sprintf("$%.2f", *v)
}

func wholeMoney(v *float64) string {
	if v == nil {
		return listing.NotAvailable
	}
	return printer.Sprintf("$%.0f", *v)
}

func decimal(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func cell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
