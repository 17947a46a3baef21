package smarthttp_test

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/localgit/localgit/internal/smarthttp"
	"github.com/localgit/localgit/internal/testutil"
)

func requireGitBinary(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

func TestParseRequestRoutesThreeEndpoints(t *testing.T) {
	req, ok := smarthttp.ParseRequest("GET", "info/refs", "git-upload-pack")
	require.True(t, ok)
	require.Equal(t, smarthttp.ActionInfoRefs, req.Action)

	req, ok = smarthttp.ParseRequest("POST", "git-upload-pack", "")
	require.True(t, ok)
	require.Equal(t, smarthttp.ActionUploadPack, req.Action)

	req, ok = smarthttp.ParseRequest("POST", "git-receive-pack", "")
	require.True(t, ok)
	require.Equal(t, smarthttp.ActionReceivePack, req.Action)

	_, ok = smarthttp.ParseRequest("GET", "info/refs", "")
	require.False(t, ok)
}

func TestHandleInfoRefsAdvertisesPreambleAndRefs(t *testing.T) {
	requireGitBinary(t)

	tr := testutil.NewBareTestRepo(t)

	var out bytes.Buffer
	req, ok := smarthttp.ParseRequest("GET", "info/refs", "git-upload-pack")
	require.True(t, ok)

	err := smarthttp.Handle(context.Background(), &out, bytes.NewReader(nil), false, tr.Path(), req)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(out.String(), "001e# service=git-upload-pack\n0000"))
}
