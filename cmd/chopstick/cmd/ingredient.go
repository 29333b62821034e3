package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"chopstick/internal/ladle"
	"chopstick/internal/maintenance"
)

var ingredientCmd = &cobra.Command{
	Use:   "ingredient",
	Short: "Ingredient operations",
}

var ingredientListCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "List ingredients matching a pattern",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sourceClient()
		if err != nil {
			return err
		}
		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}
		index, err := client.IngredientIndex(context.Background(), pattern)
		if err != nil {
			return err
		}
		for _, entry := range index {
			fmt.Printf("%s\t%s\n", entry.ID, entry.Name)
		}
		return nil
	},
}

var ingredientShowCmd = &cobra.Command{
	Use:   "show <clue>",
	Short: "List the recipes using an ingredient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := sourceClient()
		if err != nil {
			return err
		}
		entity, err := resolveIngredient(ctx, client, args[0], false)
		if err != nil {
			return err
		}
		ingredient, err := client.IngredientGet(ctx, entity.ID)
		if err != nil {
			return err
		}
		for _, use := range ingredient.UsedIn {
			fmt.Printf("%s\t%s\n", use.ID, use.Name)
		}
		return nil
	},
}

var ingredientClass ladle.Classifications

var ingredientCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an ingredient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sourceClient()
		if err != nil {
			return err
		}
		ingredient, err := client.IngredientCreate(context.Background(), args[0], ingredientClass)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", ingredient.ID, ingredient.Name)
		return nil
	},
}

var ingredientNewName string

var ingredientEditCmd = &cobra.Command{
	Use:   "edit <clue>",
	Short: "Rename an ingredient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := sourceClient()
		if err != nil {
			return err
		}
		entity, err := resolveIngredient(ctx, client, args[0], false)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("name") {
			return fmt.Errorf("nothing to edit")
		}
		_, err = client.IngredientUpdate(ctx, entity.ID, map[string]string{"name": ingredientNewName})
		return err
	},
}

var ingredientDeleteCmd = &cobra.Command{
	Use:   "delete <clue>",
	Short: "Delete an ingredient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := sourceClient()
		if err != nil {
			return err
		}
		entity, err := resolveIngredient(ctx, client, args[0], false)
		if err != nil {
			return err
		}
		return client.IngredientDelete(ctx, entity.ID)
	},
}

var ingredientMergeCmd = &cobra.Command{
	Use:   "merge <target-clue> <obsolete-clue>",
	Short: "Redirect requirements from one ingredient to another and delete it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := sourceClient()
		if err != nil {
			return err
		}
		target, err := resolveIngredient(ctx, client, args[0], false)
		if err != nil {
			return err
		}
		obsolete, err := resolveIngredient(ctx, client, args[1], false)
		if err != nil {
			return err
		}
		rep, err := maintenance.MergeIngredients(ctx, client, target.ID, obsolete.ID, maintOptions())
		reportSummary(rep)
		return err
	},
}

func init() {
	ingredientCreateCmd.Flags().BoolVar(&ingredientClass.Dairy, "dairy", false, "contains dairy")
	ingredientCreateCmd.Flags().BoolVar(&ingredientClass.Meat, "meat", false, "contains meat")
	ingredientCreateCmd.Flags().BoolVar(&ingredientClass.Gluten, "gluten", false, "contains gluten")
	ingredientCreateCmd.Flags().BoolVar(&ingredientClass.AnimalProduct, "animal-product", false, "contains animal products")
	ingredientEditCmd.Flags().StringVarP(&ingredientNewName, "name", "n", "", "new ingredient name")

	rootCmd.AddCommand(ingredientCmd)
	ingredientCmd.AddCommand(ingredientListCmd)
	ingredientCmd.AddCommand(ingredientShowCmd)
	ingredientCmd.AddCommand(ingredientCreateCmd)
	ingredientCmd.AddCommand(ingredientEditCmd)
	ingredientCmd.AddCommand(ingredientDeleteCmd)
	ingredientCmd.AddCommand(ingredientMergeCmd)
}
