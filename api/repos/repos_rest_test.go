package repos

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikolay-Chillev/ghrepo/errs"
	"github.com/Nikolay-Chillev/ghrepo/settings"
	"github.com/Nikolay-Chillev/ghrepo/version"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// newTestServer serves GET /user for the construction probe and delegates
// everything else to handler.
func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "token test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		assert.Equal(t, version.UserAgent(), r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"login": "testuser", "id": 1}`))
	})
	if handler != nil {
		mux.HandleFunc("/", handler)
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *restClient {
	t.Helper()

	server := newTestServer(t, handler)
	client, err := NewRepoClient(settings.Config{Token: "test-token", Host: server.URL})
	require.NoError(t, err)
	return client
}

func TestNewRepoClient(t *testing.T) {
	t.Run("without a token", func(t *testing.T) {
		var requests int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requests, 1)
		}))
		defer server.Close()

		_, err := NewRepoClient(settings.Config{Host: server.URL})
		assert.True(t, errors.Is(err, errs.ErrValidation))
		assert.Contains(t, err.Error(), "GitHub token is required")
		assert.EqualValues(t, 0, atomic.LoadInt32(&requests), "no request should be made")
	})

	t.Run("resolves the authenticated user", func(t *testing.T) {
		client := newTestClient(t, nil)
		assert.Equal(t, "testuser", client.Login())
	})

	t.Run("invalid token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message": "Bad credentials"}`))
		}))
		defer server.Close()

		_, err := NewRepoClient(settings.Config{Token: "invalid-token-123", Host: server.URL})
		assert.True(t, errors.Is(err, errs.ErrGitHubAPI))
		assert.Contains(t, err.Error(), "Invalid GitHub token")

		statusCode, ok := errs.StatusCode(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, statusCode)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewRepoClient(settings.Config{Token: "test-token", Host: server.URL})
		assert.True(t, errors.Is(err, errs.ErrGitHubAPI))
		assert.Contains(t, err.Error(), "Failed to authenticate with GitHub")

		statusCode, ok := errs.StatusCode(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusInternalServerError, statusCode)
	})

	t.Run("unparseable host", func(t *testing.T) {
		_, err := NewRepoClient(settings.Config{Token: "test-token", Host: "://bad"})
		assert.True(t, errors.Is(err, errs.ErrValidation))
		assert.Contains(t, err.Error(), "Invalid GitHub API host")
	})

	t.Run("uses the configured http client", func(t *testing.T) {
		server := newTestServer(t, nil)

		failing := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("transport sabotaged")
		})}

		_, err := NewRepoClient(settings.Config{Token: "test-token", Host: server.URL, HTTPClient: failing})
		assert.True(t, errors.Is(err, errs.ErrGitHubAPI))
		assert.Contains(t, err.Error(), "transport sabotaged")

		_, ok := errs.StatusCode(err)
		assert.False(t, ok)
	})

	t.Run("unreachable host", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		_, err := NewRepoClient(settings.Config{Token: "test-token", Host: server.URL})
		assert.True(t, errors.Is(err, errs.ErrGitHubAPI))

		// No HTTP response was received, so no status travels with the error.
		_, ok := errs.StatusCode(err)
		assert.False(t, ok)
	})
}

func TestCreateRepo(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "/user/repos", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, map[string]interface{}{
				"name":        "my-project",
				"description": "A new project",
				"private":     true,
				"auto_init":   false,
			}, payload)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{
				"id": 123456,
				"name": "my-project",
				"full_name": "testuser/my-project",
				"private": true,
				"description": "A new project",
				"default_branch": "main"
			}`))
		})

		repository, err := client.CreateRepo("my-project", "A new project", true)
		require.NoError(t, err)
		assert.Equal(t, "my-project", repository.Name)
		assert.Equal(t, "testuser/my-project", repository.FullName)
		assert.True(t, repository.Private)
		assert.Equal(t, "A new project", repository.Description)
	})

	t.Run("duplicate name", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message": "name already exists on this account"}`))
		})

		_, err := client.CreateRepo("taken", "", false)
		assert.True(t, errors.Is(err, errs.ErrGitHubAPI))
		assert.EqualError(t, err, "Failed to create repository: name already exists on this account")

		statusCode, ok := errs.StatusCode(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, statusCode)
	})

	t.Run("422 without a message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		})

		_, err := client.CreateRepo("bad", "", false)
		assert.EqualError(t, err, "Failed to create repository: Validation failed")
	})

	t.Run("invalid name skips the request", func(t *testing.T) {
		var requests int32
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requests, 1)
		})

		_, err := client.CreateRepo("invalid/name", "", false)
		assert.True(t, errors.Is(err, errs.ErrValidation))
		assert.EqualValues(t, 0, atomic.LoadInt32(&requests))
	})
}

func TestGetRepo(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "GET", r.Method)
			assert.Equal(t, "/repos/testuser/my-project", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": 123456,
				"name": "my-project",
				"full_name": "testuser/my-project",
				"private": false,
				"description": "A new project",
				"html_url": "https://github.com/testuser/my-project",
				"default_branch": "main"
			}`))
		})

		repository, err := client.GetRepo("my-project")
		require.NoError(t, err)
		assert.Equal(t, "my-project", repository.Name)
		assert.False(t, repository.Private)
		assert.Equal(t, "https://github.com/testuser/my-project", repository.HTMLURL)
	})

	t.Run("not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Not Found"}`))
		})

		_, err := client.GetRepo("this-repo-does-not-exist-12345")
		assert.True(t, errors.Is(err, errs.ErrGitHubAPI))
		assert.EqualError(t, err, "Failed to get repository 'this-repo-does-not-exist-12345': Not Found")

		statusCode, ok := errs.StatusCode(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusNotFound, statusCode)
	})
}

func TestUpdateRepo(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "PATCH", r.Method)
			assert.Equal(t, "/repos/testuser/my-project", r.URL.Path)

			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, map[string]interface{}{"description": "Updated description"}, payload)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"name": "my-project",
				"full_name": "testuser/my-project",
				"description": "Updated description"
			}`))
		})

		repository, err := client.UpdateRepo("my-project", "Updated description")
		require.NoError(t, err)
		assert.Equal(t, "Updated description", repository.Description)
	})

	t.Run("not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Not Found"}`))
		})

		_, err := client.UpdateRepo("missing", "New description")
		assert.EqualError(t, err, "Failed to update repository 'missing': Not Found")

		statusCode, _ := errs.StatusCode(err)
		assert.Equal(t, http.StatusNotFound, statusCode)
	})
}

func TestDeleteRepo(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "DELETE", r.Method)
			assert.Equal(t, "/repos/testuser/my-project", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})

		assert.NoError(t, client.DeleteRepo("my-project"))
	})

	t.Run("not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Not Found"}`))
		})

		err := client.DeleteRepo("missing")
		assert.EqualError(t, err, "Failed to delete repository 'missing': Not Found")

		statusCode, _ := errs.StatusCode(err)
		assert.Equal(t, http.StatusNotFound, statusCode)
	})

	t.Run("invalid name skips the request", func(t *testing.T) {
		var requests int32
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requests, 1)
		})

		err := client.DeleteRepo("-startswithdash")
		assert.True(t, errors.Is(err, errs.ErrValidation))
		assert.EqualValues(t, 0, atomic.LoadInt32(&requests))
	})
}
