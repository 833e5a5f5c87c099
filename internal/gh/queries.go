package gh

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/machinebox/graphql"
	"github.com/robby/mosaic/internal/domain"
)

const (
	msgProfileFailed      = "Failed to fetch user profile"
	msgRepositoryFailed   = "Failed to fetch repository"
	msgRepositoryNotFound = "Repository not found"
)

// maxTopics bounds the topics fetched with a repository.
const maxTopics = 20

const profileQuery = `
	query Profile {
		viewer {
			login
			name
			avatarUrl
			bio
			company
			location
			websiteUrl
			url
			createdAt
			followers {
				totalCount
			}
			following {
				totalCount
			}
		}
	}
`

const repositoryQuery = `
	query Repository($owner: String!, $name: String!, $topics: Int!) {
		repository(owner: $owner, name: $name) {
			name
			owner {
				login
			}
			nameWithOwner
			description
			url
			homepageUrl
			stargazerCount
			forkCount
			isPrivate
			isFork
			isArchived
			primaryLanguage {
				name
				color
			}
			defaultBranchRef {
				name
			}
			repositoryTopics(first: $topics) {
				nodes {
					topic {
						name
					}
				}
			}
			licenseInfo {
				spdxId
			}
			createdAt
			updatedAt
			pushedAt
		}
	}
`

// GetUserProfile returns the profile of the user the token belongs to.
func (c *Client) GetUserProfile(ctx context.Context) (*domain.Profile, error) {
	req := graphql.NewRequest(profileQuery)

	var resp struct {
		Viewer *struct {
			Login      string    `json:"login"`
			Name       string    `json:"name"`
			AvatarURL  string    `json:"avatarUrl"`
			Bio        string    `json:"bio"`
			Company    string    `json:"company"`
			Location   string    `json:"location"`
			WebsiteURL string    `json:"websiteUrl"`
			URL        string    `json:"url"`
			CreatedAt  time.Time `json:"createdAt"`
			Followers  struct {
				TotalCount int `json:"totalCount"`
			} `json:"followers"`
			Following struct {
				TotalCount int `json:"totalCount"`
			} `json:"following"`
		} `json:"viewer"`
	}

	status, err := c.execute(ctx, req, &resp, msgProfileFailed)
	if err != nil {
		return nil, err
	}

	v := resp.Viewer
	if v == nil {
		c.logger.Error(msgProfileFailed, "reason", "response has no viewer")
		return nil, &Error{Kind: KindUpstream, Status: status, Body: ErrorBody{Message: msgProfileFailed}}
	}

	return &domain.Profile{
		Login:      v.Login,
		Name:       v.Name,
		AvatarURL:  v.AvatarURL,
		Bio:        v.Bio,
		Company:    v.Company,
		Location:   v.Location,
		WebsiteURL: v.WebsiteURL,
		URL:        v.URL,
		CreatedAt:  v.CreatedAt,
		Followers:  v.Followers.TotalCount,
		Following:  v.Following.TotalCount,
	}, nil
}

// GetRepository returns the repository owner/name.
// A repository that does not exist, or is not visible to the token, yields a
// KindNotFound error.
func (c *Client) GetRepository(ctx context.Context, owner, name string) (*domain.Repository, error) {
	req := graphql.NewRequest(repositoryQuery)
	req.Var("owner", owner)
	req.Var("name", name)
	req.Var("topics", maxTopics)

	var resp struct {
		Repository *struct {
			Name  string `json:"name"`
			Owner struct {
				Login string `json:"login"`
			} `json:"owner"`
			NameWithOwner   string `json:"nameWithOwner"`
			Description     string `json:"description"`
			URL             string `json:"url"`
			HomepageURL     string `json:"homepageUrl"`
			StargazerCount  int    `json:"stargazerCount"`
			ForkCount       int    `json:"forkCount"`
			IsPrivate       bool   `json:"isPrivate"`
			IsFork          bool   `json:"isFork"`
			IsArchived      bool   `json:"isArchived"`
			PrimaryLanguage *struct {
				Name  string `json:"name"`
				Color string `json:"color"`
			} `json:"primaryLanguage"`
			DefaultBranchRef *struct {
				Name string `json:"name"`
			} `json:"defaultBranchRef"`
			RepositoryTopics struct {
				Nodes []struct {
					Topic struct {
						Name string `json:"name"`
					} `json:"topic"`
				} `json:"nodes"`
			} `json:"repositoryTopics"`
			LicenseInfo *struct {
				SPDXID string `json:"spdxId"`
			} `json:"licenseInfo"`
			CreatedAt time.Time  `json:"createdAt"`
			UpdatedAt time.Time  `json:"updatedAt"`
			PushedAt  *time.Time `json:"pushedAt"`
		} `json:"repository"`
	}

	status, err := c.execute(ctx, req, &resp, msgRepositoryFailed)
	if err != nil {
		return nil, err
	}

	r := resp.Repository
	if r == nil {
		c.logger.Error(msgRepositoryNotFound, "owner", owner, "name", name)
		return nil, &Error{Kind: KindNotFound, Status: status, Body: ErrorBody{Message: msgRepositoryNotFound}}
	}

	repo := &domain.Repository{
		Name:          r.Name,
		Owner:         r.Owner.Login,
		NameWithOwner: r.NameWithOwner,
		Description:   r.Description,
		URL:           r.URL,
		HomepageURL:   r.HomepageURL,
		Stars:         r.StargazerCount,
		Forks:         r.ForkCount,
		IsPrivate:     r.IsPrivate,
		IsFork:        r.IsFork,
		IsArchived:    r.IsArchived,
		Topics:        make([]string, 0, len(r.RepositoryTopics.Nodes)),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		PushedAt:      r.PushedAt,
	}
	if r.PrimaryLanguage != nil {
		repo.Language = &domain.Language{Name: r.PrimaryLanguage.Name, Color: r.PrimaryLanguage.Color}
	}
	if r.DefaultBranchRef != nil {
		repo.DefaultBranch = r.DefaultBranchRef.Name
	}
	if r.LicenseInfo != nil {
		repo.License = r.LicenseInfo.SPDXID
	}
	for _, node := range r.RepositoryTopics.Nodes {
		repo.Topics = append(repo.Topics, node.Topic.Name)
	}

	return repo, nil
}

// execute runs a GraphQL request and resolves the envelope in order: HTTP
// status, GraphQL errors, then decoding of data into resp. failure is the
// message used for upstream errors. The HTTP status is returned on success.
func (c *Client) execute(ctx context.Context, req *graphql.Request, resp any, failure string) (int, error) {
	ctx, rec := withRecording(ctx)
	runErr := c.gql.Run(ctx, req, resp)

	if rec.status == 0 {
		// No response reached the recorder: the request never completed.
		if runErr == nil {
			runErr = errors.New("no response received")
		}
		c.logger.Error(failure, "err", runErr)
		return 0, transportError(runErr)
	}

	if !rec.ok() {
		c.logger.Error(failure, "status", rec.status, "body", string(rec.body))
		return 0, &Error{Kind: KindUpstream, Status: rec.status, Body: ErrorBody{Message: failure}}
	}

	var envelope struct {
		Errors []json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(rec.body, &envelope); err != nil {
		c.logger.Error(failure, "reason", "malformed GraphQL envelope", "err", err)
		return 0, &Error{
			Kind:   KindDecode,
			Status: rec.status,
			Body:   ErrorBody{Message: "could not decode GraphQL response"},
			Err:    err,
		}
	}
	if len(envelope.Errors) > 0 {
		c.logger.Error(failure, "errors", string(rec.body))
		return 0, &Error{
			Kind:   KindUpstream,
			Status: rec.status,
			Body:   ErrorBody{Message: failure, Errors: envelope.Errors},
		}
	}

	if runErr != nil {
		c.logger.Error(failure, "reason", "data does not match query", "err", runErr)
		return 0, &Error{
			Kind:   KindDecode,
			Status: rec.status,
			Body:   ErrorBody{Message: "could not decode GraphQL data"},
			Err:    runErr,
		}
	}

	return rec.status, nil
}
