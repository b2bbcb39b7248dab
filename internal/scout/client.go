package scout

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shurcooL/graphql"
	"golang.org/x/oauth2"

	"github.com/shinji-kodama/dhi-eol/internal/model"
)

// GraphQLClient is the query surface of the Scout GraphQL API the CLI
// depends on. It matches the signature of graphql.Client.Query, which
// lets tests substitute a mock without an HTTP round trip.
type GraphQLClient interface {
	Query(ctx context.Context, q interface{}, variables map[string]interface{}) error
}

// Client queries the Docker Scout catalog.
type Client struct {
	gql GraphQLClient
}

// NewClient builds an authenticated Scout client for the given GraphQL
// endpoint. The JWT from ExchangeToken is attached to every request via
// an oauth2 static token source, which handles the Authorization header.
func NewClient(ctx context.Context, endpoint, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, src)
	return &Client{gql: graphql.NewClient(endpoint, httpClient)}
}

// NewClientWithGraphQL wraps an existing GraphQLClient. Used by tests.
func NewClientWithGraphQL(gql GraphQLClient) *Client {
	return &Client{gql: gql}
}

// tagDefinitionsQuery fetches the tag definitions of one DHI repository:
//
//	query($repo: String!) {
//	  dhiRepository(repoName: $repo) {
//	    ... on DhiImageRepositoryDetails {
//	      tagDefinitions { displayName tagNames endOfLife }
//	    }
//	  }
//	}
//
// dhiRepository returns a union type; the inline fragment selects the
// image-repository variant, which is the only one carrying tag definitions.
type tagDefinitionsQuery struct {
	DhiRepository struct {
		Details struct {
			TagDefinitions []struct {
				DisplayName graphql.String
				TagNames    []graphql.String
				EndOfLife   graphql.String
			}
		} `graphql:"... on DhiImageRepositoryDetails"`
	} `graphql:"dhiRepository(repoName: $repo)"`
}

// TagDefinitions fetches the tag definitions (including EOL dates) for a
// DHI repository. A repository that exists but has no tag definitions
// yields an empty slice, not an error.
func (c *Client) TagDefinitions(ctx context.Context, repoName string) ([]model.TagDefinition, error) {
	var q tagDefinitionsQuery
	variables := map[string]interface{}{
		"repo": graphql.String(repoName),
	}

	if err := c.gql.Query(ctx, &q, variables); err != nil {
		return nil, err
	}

	defs := make([]model.TagDefinition, 0, len(q.DhiRepository.Details.TagDefinitions))
	for _, td := range q.DhiRepository.Details.TagDefinitions {
		names := make([]string, 0, len(td.TagNames))
		for _, tn := range td.TagNames {
			names = append(names, string(tn))
		}
		defs = append(defs, model.TagDefinition{
			DisplayName: string(td.DisplayName),
			TagNames:    names,
			EndOfLife:   string(td.EndOfLife),
		})
	}

	log.Debug().Str("repo", repoName).Int("definitions", len(defs)).Msg("fetched tag definitions")
	return defs, nil
}

// catalogQuery fetches the full DHI repository listing:
//
//	query { dhiListRepositories { items { name type } } }
type catalogQuery struct {
	DhiListRepositories struct {
		Items []struct {
			Name graphql.String
			Type graphql.String
		}
	} `graphql:"dhiListRepositories"`
}

// ListRepositories fetches the full DHI catalog. Entries without a name
// are skipped — they cannot be looked up and carry no information.
func (c *Client) ListRepositories(ctx context.Context) ([]model.Repository, error) {
	var q catalogQuery

	if err := c.gql.Query(ctx, &q, nil); err != nil {
		return nil, err
	}

	repos := make([]model.Repository, 0, len(q.DhiListRepositories.Items))
	for _, item := range q.DhiListRepositories.Items {
		if item.Name == "" {
			continue
		}
		repos = append(repos, model.Repository{
			Name: string(item.Name),
			Type: string(item.Type),
		})
	}

	log.Debug().Int("repositories", len(repos)).Msg("fetched DHI catalog")
	return repos, nil
}
