package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func NewValidateCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the plan and report every validation error",
		RunE: func(c *cobra.Command, args []string) error {
			return runValidate(c.OutOrStdout(), opts)
		},
	}
}

func NewShowCmd(opts *Options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the validated plan in canonical form",
		RunE: func(c *cobra.Command, args []string) error {
			return runShow(c.OutOrStdout(), opts, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "json", "Output format: json or yaml")
	return cmd
}

type resolveOptions struct {
	Column string
	Entity string
	Value  string
}

func NewResolveCmd(opts *Options) *cobra.Command {
	ro := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve one cell value or node identifier against the plan",
		Example: `  loadplan resolve --column pubmed --value "12345|67890"
  loadplan resolve --entity source --value 7157`,
		RunE: func(c *cobra.Command, args []string) error {
			if (ro.Column == "") == (ro.Entity == "") {
				return errors.New("exactly one of --column or --entity is required")
			}
			return runResolve(c.OutOrStdout(), opts, ro)
		},
	}

	cmd.Flags().StringVarP(&ro.Column, "column", "c", "", "Property column, by attribute or column name")
	cmd.Flags().StringVarP(&ro.Entity, "entity", "e", "", "Node identifier to resolve: source or target")
	cmd.Flags().StringVarP(&ro.Value, "value", "v", "", "Raw cell value")
	return cmd
}

func NewCheckColumnsCmd(opts *Options) *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "check-columns",
		Short: "Check that every column the plan reads exists in a SQL Server table",
		RunE: func(c *cobra.Command, args []string) error {
			return runCheckColumns(c.Context(), c.OutOrStdout(), opts, table)
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "Source table, optionally schema-qualified (schema.table)")
	cmd.MarkFlagRequired("table")
	return cmd
}

func NewRegistryCmd(opts *Options) *cobra.Command {
	var name, out string

	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Publish and fetch plans in the MongoDB registry",
	}

	publish := &cobra.Command{
		Use:   "publish",
		Short: "Validate the plan and store it under a name",
		RunE: func(c *cobra.Command, args []string) error {
			return runPublish(c.Context(), c.OutOrStdout(), opts, name)
		},
	}
	publish.Flags().StringVarP(&name, "name", "n", "", "Registry name of the plan")
	publish.MarkFlagRequired("name")

	fetch := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a stored plan",
		RunE: func(c *cobra.Command, args []string) error {
			return runFetch(c.Context(), c.OutOrStdout(), opts, name, out)
		},
	}
	fetch.Flags().StringVarP(&name, "name", "n", "", "Registry name of the plan")
	fetch.Flags().StringVar(&out, "out", "", "Write the plan to this file instead of stdout")
	fetch.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored plans",
		RunE: func(c *cobra.Command, args []string) error {
			return runList(c.Context(), c.OutOrStdout(), opts)
		},
	}

	remove := &cobra.Command{
		Use:   "delete",
		Short: "Delete a stored plan",
		RunE: func(c *cobra.Command, args []string) error {
			return runDelete(c.Context(), c.OutOrStdout(), opts, name)
		},
	}
	remove.Flags().StringVarP(&name, "name", "n", "", "Registry name of the plan")
	remove.MarkFlagRequired("name")

	cmd.AddCommand(publish, fetch, list, remove)
	return cmd
}
