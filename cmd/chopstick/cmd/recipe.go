package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"chopstick/internal/ladle"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Recipe operations",
}

var recipeListCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "List recipes matching a pattern",
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
		index, err := client.RecipeIndex(context.Background(), pattern)
		if err != nil {
			return err
		}
		for _, entry := range index {
			fmt.Printf("%s\t%s\n", entry.ID, entry.Name)
		}
		return nil
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <clue>",
	Short: "Show one recipe as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := sourceClient()
		if err != nil {
			return err
		}
		entity, err := resolveRecipe(ctx, client, args[0])
		if err != nil {
			return err
		}
		recipe, err := client.RecipeGet(ctx, entity.ID)
		if err != nil {
			return err
		}
		encoded, err := json.MarshalIndent(recipe, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	},
}

var (
	recipeAuthor      string
	recipeDirections  string
	recipeInformation string
)

var recipeCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sourceClient()
		if err != nil {
			return err
		}
		recipe, err := client.RecipeCreate(context.Background(), ladle.RecipeDraft{
			Name:        args[0],
			Author:      recipeAuthor,
			Directions:  recipeDirections,
			Information: recipeInformation,
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", recipe.ID, recipe.Name)
		return nil
	},
}

var recipeEditFields = map[string]*string{}

var recipeEditCmd = &cobra.Command{
	Use:   "edit <clue>",
	Short: "Edit recipe fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := sourceClient()
		if err != nil {
			return err
		}
		entity, err := resolveRecipe(ctx, client, args[0])
		if err != nil {
			return err
		}
		fields := map[string]string{}
		for key, value := range recipeEditFields {
			if cmd.Flags().Changed(key) {
				fields[key] = *value
			}
		}
		if len(fields) == 0 {
			return fmt.Errorf("nothing to edit")
		}
		_, err = client.RecipeUpdate(ctx, entity.ID, fields)
		return err
	},
}

var recipeDeleteCmd = &cobra.Command{
	Use:   "delete <clue>",
	Short: "Delete a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := sourceClient()
		if err != nil {
			return err
		}
		entity, err := resolveRecipe(ctx, client, args[0])
		if err != nil {
			return err
		}
		return client.RecipeDelete(ctx, entity.ID)
	},
}

var requirementCmd = &cobra.Command{
	Use:   "requirement",
	Short: "Recipe requirement operations",
}

var requirementOptional bool

var requirementAddCmd = &cobra.Command{
	Use:   "add <recipe-clue> <ingredient-clue> <quantity>",
	Short: "Attach an ingredient requirement to a recipe",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := sourceClient()
		if err != nil {
			return err
		}
		recipe, err := resolveRecipe(ctx, client, args[0])
		if err != nil {
			return err
		}
		// Unknown ingredient names are registered on the fly.
		ingredient, err := resolveIngredient(ctx, client, args[1], true)
		if err != nil {
			return err
		}
		return client.RequirementCreate(ctx, recipe.ID, ingredient.ID, args[2], requirementOptional)
	},
}

var requirementUpdateCmd = &cobra.Command{
	Use:   "update <recipe-clue> <ingredient-clue> <quantity>",
	Short: "Change the quantity of a requirement",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := sourceClient()
		if err != nil {
			return err
		}
		recipe, err := resolveRecipe(ctx, client, args[0])
		if err != nil {
			return err
		}
		ingredient, err := resolveIngredient(ctx, client, args[1], false)
		if err != nil {
			return err
		}
		return client.RequirementUpdate(ctx, recipe.ID, ingredient.ID, args[2])
	},
}

var requirementDeleteCmd = &cobra.Command{
	Use:   "delete <recipe-clue> <ingredient-clue>",
	Short: "Detach a requirement from a recipe",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := sourceClient()
		if err != nil {
			return err
		}
		recipe, err := resolveRecipe(ctx, client, args[0])
		if err != nil {
			return err
		}
		ingredient, err := resolveIngredient(ctx, client, args[1], false)
		if err != nil {
			return err
		}
		return client.RequirementDelete(ctx, recipe.ID, ingredient.ID)
	},
}

var dependencyCmd = &cobra.Command{
	Use:   "dependency",
	Short: "Recipe dependency operations",
}

var (
	dependencyQuantity string
	dependencyOptional bool
)

var dependencyAddCmd = &cobra.Command{
	Use:   "add <recipe-clue> <required-clue>",
	Short: "Make a recipe depend on another recipe",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := sourceClient()
		if err != nil {
			return err
		}
		recipe, err := resolveRecipe(ctx, client, args[0])
		if err != nil {
			return err
		}
		required, err := resolveRecipe(ctx, client, args[1])
		if err != nil {
			return err
		}
		return client.DependencyCreate(ctx, recipe.ID, required.ID, dependencyQuantity, dependencyOptional)
	},
}

var dependencyDeleteCmd = &cobra.Command{
	Use:   "delete <recipe-clue> <required-clue>",
	Short: "Remove a dependency between two recipes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := sourceClient()
		if err != nil {
			return err
		}
		recipe, err := resolveRecipe(ctx, client, args[0])
		if err != nil {
			return err
		}
		required, err := resolveRecipe(ctx, client, args[1])
		if err != nil {
			return err
		}
		return client.DependencyDelete(ctx, recipe.ID, required.ID)
	},
}

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Recipe tag operations",
}

var tagAddCmd = &cobra.Command{
	Use:   "add <recipe-clue> <label-name>",
	Short: "Tag a recipe with a label",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := sourceClient()
		if err != nil {
			return err
		}
		recipe, err := resolveRecipe(ctx, client, args[0])
		if err != nil {
			return err
		}
		return client.RecipeTag(ctx, recipe.ID, args[1])
	},
}

var tagDeleteCmd = &cobra.Command{
	Use:   "delete <recipe-clue> <label-clue>",
	Short: "Remove a label from a recipe",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := sourceClient()
		if err != nil {
			return err
		}
		recipe, err := resolveRecipe(ctx, client, args[0])
		if err != nil {
			return err
		}
		label, err := resolveLabel(ctx, client, args[1])
		if err != nil {
			return err
		}
		return client.RecipeUntag(ctx, recipe.ID, label.ID)
	},
}

func init() {
	recipeCreateCmd.Flags().StringVarP(&recipeAuthor, "author", "a", "", "recipe author")
	recipeCreateCmd.Flags().StringVarP(&recipeDirections, "directions", "d", "", "recipe directions")
	recipeCreateCmd.Flags().StringVarP(&recipeInformation, "information", "i", "", "recipe information")

	recipeEditFields = map[string]*string{
		"name":        recipeEditCmd.Flags().StringP("name", "n", "", "new recipe name"),
		"author":      recipeEditCmd.Flags().StringP("author", "a", "", "new recipe author"),
		"directions":  recipeEditCmd.Flags().StringP("directions", "d", "", "new recipe directions"),
		"information": recipeEditCmd.Flags().StringP("information", "i", "", "new recipe information"),
	}

	requirementAddCmd.Flags().BoolVar(&requirementOptional, "optional", false, "mark the requirement optional")
	dependencyAddCmd.Flags().StringVar(&dependencyQuantity, "quantity", "", "dependency quantity")
	dependencyAddCmd.Flags().BoolVar(&dependencyOptional, "optional", false, "mark the dependency optional")

	rootCmd.AddCommand(recipeCmd)
	recipeCmd.AddCommand(recipeListCmd)
	recipeCmd.AddCommand(recipeShowCmd)
	recipeCmd.AddCommand(recipeCreateCmd)
	recipeCmd.AddCommand(recipeEditCmd)
	recipeCmd.AddCommand(recipeDeleteCmd)
	recipeCmd.AddCommand(requirementCmd)
	requirementCmd.AddCommand(requirementAddCmd)
	requirementCmd.AddCommand(requirementUpdateCmd)
	requirementCmd.AddCommand(requirementDeleteCmd)
	recipeCmd.AddCommand(dependencyCmd)
	dependencyCmd.AddCommand(dependencyAddCmd)
	dependencyCmd.AddCommand(dependencyDeleteCmd)
	recipeCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagDeleteCmd)
}
