package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"sofia_aroma_bot/internal/domain/aroma"
	"sofia_aroma_bot/internal/domain/numerology"
	"sofia_aroma_bot/internal/domain/questionnaire"
	"sofia_aroma_bot/internal/infra/config"
	idb "sofia_aroma_bot/internal/infra/database"
	"sofia_aroma_bot/internal/infra/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

// now is replaced in tests.
var now = time.Now

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "flowerctl",
		Short:         "Inspect the Wisdom Flower numerology and aroma recipes",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newFlowerCommand())
	rootCmd.AddCommand(newRecipeCommand())
	rootCmd.AddCommand(newRecipesCommand())
	rootCmd.AddCommand(newSelectCommand())
	rootCmd.AddCommand(newMigrateCommand())
	return rootCmd
}

func newFlowerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "flower <DD.MM.YYYY>",
		Short: "Print the numerology profile of a birth date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := numerology.ParseBirthDate(args[0])
			if err != nil {
				return err
			}
			printFlower(cmd.OutOrStdout(), b, numerology.Derive(b))
			return nil
		},
	}
}

func printFlower(w io.Writer, b numerology.BirthDate, p numerology.Profile) {
	fmt.Fprintf(w, "%s %s\n\n", bold("Wisdom Flower"), b)
	for _, key := range numerology.ScalarKeys {
		value, _ := p.Scalar(key)
		d, _ := aroma.DescribeParameter(key)
		fmt.Fprintf(w, "  %-4s %3d  %s %s\n", key, value, oilName(value), gray(d.Name))
	}
	for _, key := range numerology.LineKeys {
		line, _ := p.Line(key)
		fmt.Fprintf(w, "\n  %s\n", cyan(aroma.LineName(key)))
		for _, band := range numerology.Bands {
			value, _ := line.At(band)
			fmt.Fprintf(w, "    %-6s %3d  %s\n", aroma.BandLabel(band), value, oilName(value))
		}
	}
}

func oilName(value int) string {
	oil, ok := aroma.LookupOil(value)
	if !ok {
		return "?"
	}
	return green(oil.MainOil)
}

func newRecipeCommand() *cobra.Command {
	var age int

	cmd := &cobra.Command{
		Use:   "recipe <name|number> <DD.MM.YYYY>",
		Short: "Compose a recipe for a birth date",
		Long:  "Compose a recipe for a birth date. The recipe is given by its catalog name or its number in `flowerctl recipes`.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := resolveRecipeName(args[0])
			if err != nil {
				return err
			}
			b, err := numerology.ParseBirthDate(args[1])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("age") {
				age = numerology.AgeOn(b, now())
			}

			composed, err := aroma.Compose(name, numerology.Derive(b), age)
			if err != nil {
				return err
			}
			printRecipe(cmd.OutOrStdout(), composed, age)
			return nil
		},
	}
	cmd.Flags().IntVar(&age, "age", 0, "age used to pick the line band (default: computed from the birth year)")
	return cmd
}

func resolveRecipeName(arg string) (string, error) {
	names := aroma.RecipeNames()
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(names) {
			return "", fmt.Errorf("recipe number must be between 1 and %d", len(names))
		}
		return names[n-1], nil
	}
	if _, ok := aroma.LookupRecipe(arg); !ok {
		return "", fmt.Errorf("%w: %q", aroma.ErrUnknownRecipe, arg)
	}
	return arg, nil
}

func printRecipe(w io.Writer, r *aroma.ComposedRecipe, age int) {
	fmt.Fprintf(w, "%s  %s\n", bold(r.Name), gray(fmt.Sprintf("age %d, band %s", age, aroma.BandLabel(r.Band))))
	fmt.Fprintf(w, "%s\n\n", r.Purpose)
	for _, ing := range r.Ingredients {
		fmt.Fprintf(w, "  %-22s %3d  %-14s %s x%d\n", ing.ParameterName, ing.Value, ing.Energy, green(ing.MainOil), ing.Drops)
	}
	fmt.Fprintf(w, "\n  total drops: %s\n", bold(strconv.Itoa(r.TotalDrops)))
}

func newRecipesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recipes",
		Short: "List the recipe catalog",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			for i, def := range aroma.Recipes() {
				params := make([]string, len(def.Parameters))
				for j, k := range def.Parameters {
					params[j] = string(k)
				}
				fmt.Fprintf(w, "%d. %s  %s\n   %s\n", i+1, bold(def.Name), gray(strings.Join(params, ", ")), def.Purpose)
			}
		},
	}
}

func newSelectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select <recipe>...",
		Short: "Pick the recommended recipe from questionnaire votes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tally := questionnaire.NewTally(args)
			winner, err := tally.Winner()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, name := range tally.Names() {
				fmt.Fprintf(w, "  %d  %s\n", tally.Count(name), name)
			}
			fmt.Fprintf(w, "recommended: %s\n", bold(winner))
			return nil
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Run database migrations against DATABASE_URL",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(idb.MigrateUp), string(idb.MigrateDown), string(idb.MigrateStatus)},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := idb.MigrateUp
			if len(args) == 1 {
				command = idb.MigrationCommand(args[0])
			}

			url, err := config.LoadDatabaseURL()
			if err != nil {
				return err
			}
			db, err := idb.NewPostgresConnection(url)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			return idb.Migrate(ctx, db, command, logger.Component("flowerctl"))
		},
	}
}
