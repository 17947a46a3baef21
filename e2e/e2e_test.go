// Package e2e exercises the server through its public pkg/sdk entrypoint and
// real net/http and git clients, covering the seed scenarios and universal
// properties of spec.md §8.
package e2e

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/localgit/localgit/internal/testutil"
	"github.com/localgit/localgit/pkg/sdk"
)

func startServer(t *testing.T, root string, opts sdk.Options) *sdk.Server {
	t.Helper()
	opts.RepoRoot = root

	ctx, cancel := context.WithCancel(context.Background())
	srv, err := sdk.Start(ctx, opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		srv.Shutdown(context.Background())
		cancel()
	})

	waitForListener(t, srv.HTTPPort())
	return srv
}

func waitForListener(t *testing.T, port int) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/", port))
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("server on port %d never came up", port)
}

func layoutRepo(t *testing.T, root, owner, repo string) *testutil.TestRepo {
	t.Helper()
	return testutil.NewTestRepoAt(t, filepath.Join(root, owner, repo))
}

func baseURL(srv *sdk.Server) string {
	return fmt.Sprintf("http://127.0.0.1:%d", srv.HTTPPort())
}

// Seed scenario 1: raw file on main branch.
func TestSeed_RawFileOnMainBranch(t *testing.T) {
	root := t.TempDir()
	repo := layoutRepo(t, root, "owner1", "repo1")
	repo.AddCommitFile("init", "README.md", "hello world\n")
	repo.CreateBranch("main")
	repo.Checkout("main")

	srv := startServer(t, root, sdk.Options{})

	resp, err := http.Get(baseURL(srv) + "/raw/owner1/repo1/main/README.md")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "hello world\n", string(body))
	require.NotEmpty(t, resp.Header.Get("ETag"))
}

// Seed scenario 2: redundant slashes and nested subdirectories.
func TestSeed_RawFileRedundantSlashes(t *testing.T) {
	root := t.TempDir()
	repo := layoutRepo(t, root, "owner1", "repo1")
	repo.AddCommitFile("init", "sub/sub/some_file.txt", "nested\n")
	repo.CreateBranch("main")

	srv := startServer(t, root, sdk.Options{})

	resp, err := http.Get(baseURL(srv) + "/raw/owner1/repo1/main/sub/sub//some_file.txt")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// Seed scenario 3: case-insensitive path lookups are rejected.
func TestSeed_CaseInsensitiveRejection(t *testing.T) {
	root := t.TempDir()
	repo := layoutRepo(t, root, "owner1", "repo1")
	repo.AddCommitFile("init", "README.md", "hello\n")
	repo.CreateBranch("main")

	srv := startServer(t, root, sdk.Options{})

	resp, err := http.Get(baseURL(srv) + "/raw/owner1/repo1/main/rEaDmE.md")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Seed scenario 4: branch names containing "/".
func TestSeed_BranchNameWithSlash(t *testing.T) {
	root := t.TempDir()
	repo := layoutRepo(t, root, "owner1", "repo1")
	repo.AddCommitFile("init", "README.md", "hello\n")
	repo.CreateBranch("branch/with_slash")

	srv := startServer(t, root, sdk.Options{})

	resp, err := http.Get(baseURL(srv) + "/raw/owner1/repo1/branch/with_slash/README.md")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(body))
}

// Seed scenario 5: archive redirect.
func TestSeed_ArchiveRedirect(t *testing.T) {
	root := t.TempDir()
	repo := layoutRepo(t, root, "owner1", "repo1")
	repo.AddCommitFile("init", "README.md", "hello\n")
	repo.CreateBranch("main")

	srv := startServer(t, root, sdk.Options{})

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	resp, err := client.Get(baseURL(srv) + "/api/repos/owner1/repo1/zipball/main")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Location"), "/codeload/owner1/repo1/zip/main")
}

// Seed scenario 6: get-blob invalid sha.
func TestSeed_GetBlobInvalidSha(t *testing.T) {
	root := t.TempDir()
	layoutRepo(t, root, "owner1", "repo1")

	srv := startServer(t, root, sdk.Options{})

	resp, err := http.Get(baseURL(srv) + "/api/repos/owner1/repo1/git/blobs/01020304050607")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

// Seed scenario 7: a real `git clone` against the Smart HTTP transport.
func TestSeed_SmartHTTPClone(t *testing.T) {
	requireGitBinary(t)

	root := t.TempDir()
	repo := layoutRepo(t, root, "owner1", "repo1")
	repo.AddCommitFile("init", "README.md", "hello\n")
	headSHA := repo.HeadSHA()

	srv := startServer(t, root, sdk.Options{})

	cloneDir := t.TempDir()
	cloneURL := fmt.Sprintf("%s/owner1/repo1.git", baseURL(srv))
	cmd := exec.Command("git", "clone", cloneURL, filepath.Join(cloneDir, "clone"))
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git clone failed: %s", out)

	head := exec.Command("git", "-C", filepath.Join(cloneDir, "clone"), "rev-parse", "HEAD")
	headOut, err := head.Output()
	require.NoError(t, err)
	require.Equal(t, headSHA, string(bytes.TrimSpace(headOut)))
}

// Seed scenario 8: tree recursion counts.
func TestSeed_TreeRecursionCounts(t *testing.T) {
	root := t.TempDir()
	repo := layoutRepo(t, root, "owner1", "repo1")
	repo.AddCommitFile("init", "a.txt", "a")
	repo.AddCommitFile("add b", "b.txt", "b")
	repo.AddCommitFile("add nested", "sub/nested/c.txt", "c")
	repo.CreateBranch("main")

	srv := startServer(t, root, sdk.Options{})

	resp, err := http.Get(baseURL(srv) + "/api/repos/owner1/repo1/git/trees/main?recursive=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Tree []struct {
			Path string `json:"path"`
			Type string `json:"type"`
		} `json:"tree"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Tree, 5)

	var blobs, trees int
	for _, e := range body.Tree {
		switch e.Type {
		case "blob":
			blobs++
		case "tree":
			trees++
		}
	}
	require.Equal(t, 3, blobs)
	require.Equal(t, 2, trees)
}

// Universal property: resolver safety — traversal attempts never escape repoRoot.
func TestProperty_ResolverSafety(t *testing.T) {
	root := t.TempDir()
	srv := startServer(t, root, sdk.Options{})

	resp, err := http.Get(baseURL(srv) + "/raw/../../etc/passwd/main/whatever")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Universal property: SHA round-trip between get-contents and get-blob.
func TestProperty_SHARoundTrip(t *testing.T) {
	root := t.TempDir()
	repo := layoutRepo(t, root, "owner1", "repo1")
	repo.AddCommitFile("init", "a.txt", "alpha")
	repo.CreateBranch("main")

	srv := startServer(t, root, sdk.Options{})

	resp, err := http.Get(baseURL(srv) + "/api/repos/owner1/repo1/contents/a.txt?ref=main")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var contents struct {
		SHA     string `json:"sha"`
		Content string `json:"content"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&contents))

	blobResp, err := http.Get(baseURL(srv) + "/api/repos/owner1/repo1/git/blobs/" + contents.SHA)
	require.NoError(t, err)
	defer blobResp.Body.Close()
	require.Equal(t, http.StatusOK, blobResp.StatusCode)

	var blob struct {
		SHA     string `json:"sha"`
		Content string `json:"content"`
	}
	require.NoError(t, json.NewDecoder(blobResp.Body).Decode(&blob))
	require.Equal(t, contents.SHA, blob.SHA)
	require.Equal(t, contents.Content, blob.Content)
}

// Universal property: uncommitted toggle — a new work-tree file is visible
// at the checked-out ref and absent at any other ref.
func TestProperty_UncommittedToggle(t *testing.T) {
	root := t.TempDir()
	repo := layoutRepo(t, root, "owner1", "repo1")
	repo.AddCommitFile("init", "README.md", "hello\n")
	repo.CreateBranch("main")
	repo.Checkout("main")
	repo.CreateBranch("other") // points at the commit before the one below
	repo.AddCommitFile("advance main", "tracked.txt", "tracked\n")
	repo.WriteFile("new.txt", "uncommitted\n")

	srv := startServer(t, root, sdk.Options{})

	resp, err := http.Get(baseURL(srv) + "/raw/owner1/repo1/main/new.txt")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "uncommitted\n", string(body))

	resp2, err := http.Get(baseURL(srv) + "/raw/owner1/repo1/other/new.txt")
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

// Universal property: idempotent archive — two consecutive requests for the
// same (owner, repo, ref, format) produce byte-identical archives.
func TestProperty_IdempotentArchive(t *testing.T) {
	root := t.TempDir()
	repo := layoutRepo(t, root, "owner1", "repo1")
	repo.AddCommitFile("init", "a.txt", "alpha")
	repo.CreateBranch("main")

	srv := startServer(t, root, sdk.Options{})

	first := fetchArchive(t, baseURL(srv)+"/codeload/owner1/repo1/zip/main")
	second := fetchArchive(t, baseURL(srv)+"/codeload/owner1/repo1/zip/main")
	require.Equal(t, first, second)

	zr, err := zip.NewReader(bytes.NewReader(first), int64(len(first)))
	require.NoError(t, err)
	require.NotEmpty(t, zr.File)
}

func fetchArchive(t *testing.T, url string) []byte {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return data
}

// Universal property: subdomain mapping — owner.repo on a configured base
// domain rewrites to the equivalent /owner/repo path.
func TestProperty_SubdomainMapping(t *testing.T) {
	root := t.TempDir()
	repo := layoutRepo(t, root, "owner1", "repo1")
	repo.AddCommitFile("init", "README.md", "hello\n")
	repo.CreateBranch("main")

	srv := startServer(t, root, sdk.Options{
		SubdomainMappingEnable: true,
		BaseDomains:            []string{"localtest.me"},
	})

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("http://127.0.0.1:%d/raw/main/README.md", srv.HTTPPort()), nil)
	require.NoError(t, err)
	req.Host = "owner1.repo1.localtest.me"

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func requireGitBinary(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available in PATH")
	}
}
