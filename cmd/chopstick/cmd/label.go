package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Label operations",
}

var labelListCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "List labels matching a pattern",
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
		index, err := client.LabelIndex(context.Background(), pattern)
		if err != nil {
			return err
		}
		for _, entry := range index {
			fmt.Printf("%s\t%s\n", entry.ID, entry.Name)
		}
		return nil
	},
}

var labelShowCmd = &cobra.Command{
	Use:   "show <clue>",
	Short: "List the recipes tagged with a label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := sourceClient()
		if err != nil {
			return err
		}
		entity, err := resolveLabel(ctx, client, args[0])
		if err != nil {
			return err
		}
		label, err := client.LabelGet(ctx, entity.ID)
		if err != nil {
			return err
		}
		for _, tagged := range label.TaggedRecipes {
			fmt.Printf("%s\t%s\n", tagged.ID, tagged.Name)
		}
		return nil
	},
}

var labelCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sourceClient()
		if err != nil {
			return err
		}
		label, err := client.LabelCreate(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", label.ID, label.Name)
		return nil
	},
}

var labelNewName string

var labelEditCmd = &cobra.Command{
	Use:   "edit <clue>",
	Short: "Rename a label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := sourceClient()
		if err != nil {
			return err
		}
		entity, err := resolveLabel(ctx, client, args[0])
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("name") {
			return fmt.Errorf("nothing to edit")
		}
		_, err = client.LabelUpdate(ctx, entity.ID, map[string]string{"name": labelNewName})
		return err
	},
}

var labelDeleteCmd = &cobra.Command{
	Use:   "delete <clue>",
	Short: "Delete a label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := sourceClient()
		if err != nil {
			return err
		}
		entity, err := resolveLabel(ctx, client, args[0])
		if err != nil {
			return err
		}
		return client.LabelDelete(ctx, entity.ID)
	},
}

func init() {
	labelEditCmd.Flags().StringVarP(&labelNewName, "name", "n", "", "new label name")

	rootCmd.AddCommand(labelCmd)
	labelCmd.AddCommand(labelListCmd)
	labelCmd.AddCommand(labelShowCmd)
	labelCmd.AddCommand(labelCreateCmd)
	labelCmd.AddCommand(labelEditCmd)
	labelCmd.AddCommand(labelDeleteCmd)
}
