package cmd

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cobra"
)

// permsCmd shows the logged-in user's permissions in a group
var permsCmd = &cobra.Command{
	Use:   "perms <group-id>",
	Short: "Show your permissions in a group",
	Args:  cobra.ExactArgs(1),
	RunE:  runPerms,
}

// subgroupsCmd lists the subgroups of a group
var subgroupsCmd = &cobra.Command{
	Use:   "subgroups <group-id>",
	Short: "List the subgroups of a group",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubgroups,
}

func init() {
	rootCmd.AddCommand(permsCmd)
	rootCmd.AddCommand(subgroupsCmd)
}

func runPerms(cmd *cobra.Command, args []string) error {
	ids, err := parseGroupIDs(args)
	if err != nil {
		return err
	}

	perms, err := client.GetPermissions(cmd.Context(), ids[0])
	if err != nil {
		return fmt.Errorf("failed to get permissions: %w", err)
	}

	for _, name := range grantedPermissions(perms) {
		fmt.Printf("✓ %s\n", name)
	}
	return nil
}

// grantedPermissions returns the json names of every permission flag that is set
func grantedPermissions(perms any) []string {
	v := reflect.ValueOf(perms)
	t := v.Type()

	var granted []string
	for i := range t.NumField() {
		f := v.Field(i)
		if f.Kind() != reflect.Bool || !f.Bool() {
			continue
		}
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		granted = append(granted, name)
	}
	return granted
}

func runSubgroups(cmd *cobra.Command, args []string) error {
	ids, err := parseGroupIDs(args)
	if err != nil {
		return err
	}

	groups, err := client.GetSubgroups(cmd.Context(), ids[0])
	if err != nil {
		return fmt.Errorf("failed to get subgroups: %w", err)
	}

	if len(groups) == 0 {
		fmt.Println("No subgroups found.")
		return nil
	}

	fmt.Printf("\nFound %d subgroups:\n", len(groups))
	fmt.Println(strings.Repeat("-", 80))
	for _, g := range groups {
		fmt.Printf("• %s (ID: %d)", g.Name, g.ID)
		if g.Privacy != "" {
			fmt.Printf(" [%s]", g.Privacy)
		}
		fmt.Println()
		if g.Desc != "" {
			fmt.Printf("  %s\n", g.Desc)
		}
	}
	return nil
}
