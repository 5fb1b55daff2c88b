package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginKey(t *testing.T) {
	require.Equal(t, loginKey("me@example.com", "pw"), loginKey("  Me@Example.com ", "pw"))
	require.NotEqual(t, loginKey("me@example.com", "pw"), loginKey("me@example.com", "pw2"))
	require.NotEqual(t, loginKey("me@example.com", "pw"), loginKey("you@example.com", "pw"))
	require.NotContains(t, loginKey("me@example.com", "hunter2"), "hunter2")
}

func TestLogin_CachedOnlyForSameCredentials(t *testing.T) {
	ctx := context.Background()
	s := &Session{opts: Options{}.withDefaults(), account: loginKey("me@example.com", "right")}

	require.NoError(t, s.login(ctx, "me@example.com", "right"))

	// A different password must go back to the login form; with no browser
	// context behind this session that surfaces as a session error.
	err := s.login(ctx, "me@example.com", "definitely-wrong")
	require.ErrorIs(t, err, ErrSession)

	err = s.login(ctx, "other@example.com", "right")
	require.ErrorIs(t, err, ErrSession)
}

func TestLogin_NoCacheWithoutPriorLogin(t *testing.T) {
	s := &Session{opts: Options{}.withDefaults()}
	require.ErrorIs(t, s.login(context.Background(), "", ""), ErrSession)
}

func TestOnLoginPage(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"https://wellfound.com/login", true},
		{"https://wellfound.com/login/", true},
		{"https://wellfound.com/login?error=1", true},
		{"https://wellfound.com/jobs", false},
		{"https://wellfound.com/jobs/messages", false},
		{"::not a url", true},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, onLoginPage(tc.url, "/login"), tc.url)
	}
}
