package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"eduadmin/internal/apiclient"
	"eduadmin/internal/config"
	"eduadmin/internal/domain"
	"eduadmin/internal/services"
	"eduadmin/internal/tree"
)

var output string

var treeCmd = &cobra.Command{
	Use:       "tree categories|menus",
	Short:     "Print the category or menu tree",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"categories", "menus"},
	RunE: func(cmd *cobra.Command, args []string) error {
		api, ctx := connect(cmd.Context())
		var rows []treeLine
		switch args[0] {
		case "categories":
			flat, err := services.NewCategoryService(api).List(ctx)
			if err != nil {
				return explain(err)
			}
			rows = lines(tree.Build(flat).Rows(), func(c domain.Category) string { return c.Name })
		case "menus":
			flat, err := services.NewMenuService(api).List(ctx)
			if err != nil {
				return explain(err)
			}
			rows = lines(tree.Build(flat).Rows(), func(m domain.Menu) string { return m.Label })
		}
		return printTree(cmd.OutOrStdout(), rows, output)
	},
}

var normalizeCmd = &cobra.Command{
	Use:       "normalize categories|menus",
	Short:     "Renumber sibling order 1..n on the server",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"categories", "menus"},
	RunE: func(cmd *cobra.Command, args []string) error {
		api, ctx := connect(cmd.Context())
		var err error
		if args[0] == "categories" {
			err = services.NewCategoryService(api).Normalize(ctx)
		} else {
			err = services.NewMenuService(api).Normalize(ctx)
		}
		if err != nil {
			return explain(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s order normalized\n", args[0])
		return nil
	},
}

func init() {
	treeCmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text|json|yaml")
}

func connect(ctx context.Context) (*apiclient.Client, context.Context) {
	cfg := config.Load()
	tok := token
	if tok == "" {
		tok = os.Getenv("ADMIN_TOKEN")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	api := apiclient.New(cfg.APIURL, apiclient.WithTimeout(cfg.APITimeout))
	return api, apiclient.ContextWithTokens(ctx, apiclient.NewMemoryTokens(tok))
}

func explain(err error) error {
	if apiclient.IsStatus(err, 401) {
		return fmt.Errorf("not authorized: pass --token or set ADMIN_TOKEN")
	}
	return fmt.Errorf("%s: %w", apiclient.Message(err), err)
}

type treeLine struct {
	ID       string `json:"id" yaml:"id"`
	Label    string `json:"label" yaml:"label"`
	Order    int    `json:"order" yaml:"order"`
	Level    int    `json:"level" yaml:"level"`
	ParentID string `json:"parentId,omitempty" yaml:"parentId,omitempty"`
}

func lines[T tree.Item](rows []tree.Row[T], label func(T) string) []treeLine {
	out := make([]treeLine, 0, len(rows))
	for _, r := range rows {
		out = append(out, treeLine{
			ID:       r.Item.NodeID(),
			Label:    label(r.Item),
			Order:    r.Item.SortOrder(),
			Level:    r.Level,
			ParentID: r.Item.ParentRef(),
		})
	}
	return out
}

func printTree(w io.Writer, rows []treeLine, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		for _, r := range rows {
			fmt.Fprintf(w, "%s%s (%d)\n", strings.Repeat("  ", r.Level), r.Label, r.Order)
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}
