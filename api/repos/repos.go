package repos

// Repository represents a GitHub repository as returned by the REST v3 API.
// The payload is handed back to callers exactly as decoded.
type Repository struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Private       bool   `json:"private"`
	HTMLURL       string `json:"html_url"`
	CloneURL      string `json:"clone_url"`
	SSHURL        string `json:"ssh_url"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// User is the authenticated user returned by the GET /user identity probe.
type User struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
	Name  string `json:"name"`
}

// RepoClient is the interface to manage repositories owned by the
// authenticated user.
type RepoClient interface {
	CreateRepo(name, description string, private bool) (*Repository, error)
	GetRepo(name string) (*Repository, error)
	UpdateRepo(name, newDescription string) (*Repository, error)
	DeleteRepo(name string) error
	Login() string
}
