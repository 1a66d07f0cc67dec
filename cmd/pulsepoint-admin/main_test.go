package main

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domainauth "github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
	"github.com/pulsepoint/pulsepoint-api/internal/session"
)

func TestPrintSessionRowShowsIdentityAndTTL(t *testing.T) {
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)

	defer func() {
		os.Stdout = oldStdout
	}()

	os.Stdout = w

	err = printSessionRow(sessionRow{
		ID: "sess-abc",
		Snapshot: session.Snapshot{
			User: &domainauth.User{
				Email: "bloodbank@luth.example",
				Role:  domainauth.RoleHospital,
			},
			IsAuthenticated:  true,
			SidebarCollapsed: true,
		},
		TTL: 90 * time.Minute,
	})
	require.NoError(t, err)

	require.NoError(t, w.Close())
	os.Stdout = oldStdout

	output, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	outStr := string(output)
	require.Contains(t, outStr, "sess-abc")
	require.Contains(t, outStr, "bloodbank@luth.example (hospital)")
	require.Contains(t, outStr, "sidebar_collapsed=true")
	require.Contains(t, outStr, "1h30m0s")
}

func TestPrintSessionRowAnonymous(t *testing.T) {
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)

	defer func() {
		os.Stdout = oldStdout
	}()

	os.Stdout = w

	err = printSessionRow(sessionRow{
		ID:       "sess-anon",
		Snapshot: session.Snapshot{},
		TTL:      -1 * time.Second,
	})
	require.NoError(t, err)

	require.NoError(t, w.Close())
	os.Stdout = oldStdout

	output, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	outStr := string(output)
	require.Contains(t, outStr, "anonymous")
	require.Contains(t, outStr, "no expiry")
}

func TestParseSessionClearFlags(t *testing.T) {
	_, err := parseSessionClearFlags(nil)
	require.Error(t, err)

	_, err = parseSessionClearFlags([]string{"--all", "--email", "a@b.example"})
	require.Error(t, err)

	opts, err := parseSessionClearFlags([]string{"--email", " a@b.example "})
	require.NoError(t, err)
	require.Equal(t, "a@b.example", opts.Email)

	opts, err = parseSessionClearFlags([]string{"--all", "--dry-run"})
	require.NoError(t, err)
	require.True(t, opts.All)
	require.True(t, opts.DryRun)
}

func TestIsLikelyRemoteHost(t *testing.T) {
	require.False(t, isLikelyRemoteHost(""))
	require.False(t, isLikelyRemoteHost("localhost"))
	require.False(t, isLikelyRemoteHost("127.0.0.1"))
	require.False(t, isLikelyRemoteHost("::1"))
	require.False(t, isLikelyRemoteHost("dev.local"))
	require.True(t, isLikelyRemoteHost("db.prod.example.com"))
	require.True(t, isLikelyRemoteHost("10.2.3.4"))
}

func TestSessionRowMatches(t *testing.T) {
	authed := sessionRow{
		Snapshot: session.Snapshot{
			User:            &domainauth.User{Email: "Donor@Example.com"},
			IsAuthenticated: true,
		},
	}
	anon := sessionRow{}

	require.True(t, sessionRowMatches(authed, sessionListOptions{}))
	require.True(t, sessionRowMatches(anon, sessionListOptions{}))
	require.False(t, sessionRowMatches(anon, sessionListOptions{AuthenticatedOnly: true}))
	require.True(t, sessionRowMatches(authed, sessionListOptions{Email: "donor@example.com"}))
	require.False(t, sessionRowMatches(anon, sessionListOptions{Email: "donor@example.com"}))
}
