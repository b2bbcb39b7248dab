// Package cli — catalog.go implements the "dhi-eol catalog" command.
//
// The catalog command lists every repository in the Docker Hardened Image
// catalog via the Scout API. It shares the authentication requirements of
// the remote-lookup path: DOCKER_USERNAME and DOCKER_PAT must be set.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/dhi-eol/internal/config"
	"github.com/shinji-kodama/dhi-eol/internal/model"
	"github.com/shinji-kodama/dhi-eol/internal/scout"
)

// NewCatalogCommand creates the "catalog" cobra command.
func NewCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the Docker Hardened Image catalog",
		Long: `Catalog lists all repositories in the Docker Hardened Image catalog.

Requires the DOCKER_USERNAME and DOCKER_PAT environment variables.

Examples:
  dhi-eol catalog
  dhi-eol catalog --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(cmd.Context())
		},
	}
}

// runCatalog authenticates, fetches the catalog, and prints it sorted by
// repository name. Unlike the check flow, a failed listing is a hard
// error here — an empty catalog command output would be indistinguishable
// from an empty catalog.
func runCatalog(ctx context.Context) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	creds, err := scout.CredentialsFromEnv()
	if err != nil {
		return err
	}
	token, err := scout.ExchangeToken(ctx, cfg.AuthURL, creds)
	if err != nil {
		return err
	}

	client := scout.NewClient(ctx, cfg.GraphQLURL, token)
	repos, err := client.ListRepositories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list the DHI catalog: %w", err)
	}

	sort.Slice(repos, func(i, j int) bool {
		return repos[i].Name < repos[j].Name
	})

	printCatalog(repos)
	return nil
}

// printCatalog outputs the repository list in text or JSON format,
// depending on the global --json flag.
func printCatalog(repos []model.Repository) {
	if IsJSONOutput() {
		type resultJSON struct {
			Repositories []model.Repository `json:"repositories"`
		}
		// An empty slice keeps the JSON output as [] instead of null.
		result := resultJSON{Repositories: repos}
		if result.Repositories == nil {
			result.Repositories = []model.Repository{}
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	if len(repos) == 0 {
		fmt.Println("The DHI catalog is empty.")
		return
	}

	fmt.Printf("%d repositories in the DHI catalog:\n\n", len(repos))
	for _, repo := range repos {
		if repo.Type != "" {
			fmt.Printf("  %-50s %s\n", repo.Name, repo.Type)
		} else {
			fmt.Printf("  %s\n", repo.Name)
		}
	}
}
