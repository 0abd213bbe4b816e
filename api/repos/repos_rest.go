package repos

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Nikolay-Chillev/ghrepo/api/rest"
	"github.com/Nikolay-Chillev/ghrepo/errs"
	"github.com/Nikolay-Chillev/ghrepo/settings"
)

type restClient struct {
	login  string
	client *rest.Client
}

var _ RepoClient = &restClient{}

// NewRepoClient resolves the token and host from config, then verifies the
// token with a blocking call to GET /user. The login it returns becomes the
// owner segment of every repository path for the life of the client.
func NewRepoClient(config settings.Config) (*restClient, error) {
	if config.Token == "" {
		return nil, errs.Validationf("GitHub token is required. Set GITHUB_TOKEN environment variable or pass a token.")
	}

	if config.Host == "" {
		config.Host = settings.DefaultHost
	}
	serverURL, err := config.ServerURL()
	if err != nil {
		return nil, errs.Validationf("Invalid GitHub API host %q: %s", config.Host, err)
	}

	c := &restClient{
		client: rest.New(serverURL.String(), "", config.Token, config.HTTPClient),
	}

	req, err := c.client.NewRequest("GET", &url.URL{Path: "user"}, nil)
	if err != nil {
		return nil, errs.API(0, err)
	}

	user := User{}
	statusCode, err := c.client.DoRequest(req, &user)
	if err != nil {
		if statusCode == http.StatusUnauthorized {
			return nil, errs.APIf(statusCode, "Invalid GitHub token. Please check your credentials.")
		}
		return nil, errs.APIf(statusCode, "Failed to authenticate with GitHub: %s", err)
	}

	c.login = user.Login
	return c, nil
}

// Login returns the authenticated user's login resolved at construction.
func (c *restClient) Login() string {
	return c.login
}

type createRepoPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
	AutoInit    bool   `json:"auto_init"`
}

// CreateRepo creates a repository for the authenticated user. The repository
// starts empty: auto_init is always sent as false.
func (c *restClient) CreateRepo(name, description string, private bool) (*Repository, error) {
	if err := ValidateRepoName(name); err != nil {
		return nil, err
	}

	payload := createRepoPayload{
		Name:        name,
		Description: description,
		Private:     private,
		AutoInit:    false,
	}

	req, err := c.client.NewRequest("POST", &url.URL{Path: "user/repos"}, payload)
	if err != nil {
		return nil, errs.API(0, err)
	}

	repo := &Repository{}
	statusCode, err := c.client.DoRequest(req, repo)
	if err != nil {
		if statusCode == http.StatusUnprocessableEntity {
			// Surface GitHub's own message, e.g. "name already exists
			// on this account".
			message := "Validation failed"
			var httpErr *rest.HTTPError
			if errors.As(err, &httpErr) && httpErr.Message != "" {
				message = httpErr.Message
			}
			return nil, errs.APIf(statusCode, "Failed to create repository: %s", message)
		}
		return nil, errs.APIf(statusCode, "Failed to create repository: %s", err)
	}

	return repo, nil
}

// GetRepo fetches the named repository owned by the authenticated user.
func (c *restClient) GetRepo(name string) (*Repository, error) {
	if err := ValidateRepoName(name); err != nil {
		return nil, err
	}

	req, err := c.client.NewRequest("GET", c.repoURL(name), nil)
	if err != nil {
		return nil, errs.API(0, err)
	}

	repo := &Repository{}
	statusCode, err := c.client.DoRequest(req, repo)
	if err != nil {
		return nil, apiError("get", name, statusCode, err)
	}

	return repo, nil
}

// UpdateRepo replaces the description of the named repository.
func (c *restClient) UpdateRepo(name, newDescription string) (*Repository, error) {
	if err := ValidateRepoName(name); err != nil {
		return nil, err
	}

	payload := struct {
		Description string `json:"description"`
	}{Description: newDescription}

	req, err := c.client.NewRequest("PATCH", c.repoURL(name), payload)
	if err != nil {
		return nil, errs.API(0, err)
	}

	repo := &Repository{}
	statusCode, err := c.client.DoRequest(req, repo)
	if err != nil {
		return nil, apiError("update", name, statusCode, err)
	}

	return repo, nil
}

// DeleteRepo deletes the named repository. GitHub answers 204 with an empty
// body on success.
func (c *restClient) DeleteRepo(name string) error {
	if err := ValidateRepoName(name); err != nil {
		return err
	}

	req, err := c.client.NewRequest("DELETE", c.repoURL(name), nil)
	if err != nil {
		return errs.API(0, err)
	}

	statusCode, err := c.client.DoRequest(req, nil)
	if err != nil {
		return apiError("delete", name, statusCode, err)
	}

	return nil
}

func (c *restClient) repoURL(name string) *url.URL {
	return &url.URL{Path: fmt.Sprintf("repos/%s/%s", c.login, name)}
}

// apiError is the shared failure mapping for repository operations: any
// transport or HTTP failure becomes a GitHubAPIError prefixed with the
// operation and target name. statusCode is 0 when no response was received.
func apiError(op, name string, statusCode int, err error) error {
	return errs.APIf(statusCode, "Failed to %s repository '%s': %s", op, name, err)
}
