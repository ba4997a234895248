/*
Package sessionsdk provides a client for the Folio session service.

# Client

Client wraps the HTTP surface with a cookie jar, so the session token stays
inside httpOnly cookies and never crosses into application code:

	client, err := sessionsdk.NewClient("https://app.example.com")

	// Establish a session
	sess, err := client.Login(ctx, "alice", "password")

	// Authenticated calls ride the jarred cookie
	me, err := client.Me(ctx)

	// Tear down
	err = client.Logout(ctx)

# Refresh Coordinator

Coordinator keeps a session alive by periodically calling the refresh
endpoint ahead of token expiry. It jitters its timers, guards against
overlapping attempts in-process, and uses an advisory shared timestamp so
several coordinators (several tabs, several processes) don't all rotate at
once:

	coord := sessionsdk.NewCoordinator(client,
		&sessionsdk.FileLastAttempt{Path: lockPath},
		sessionsdk.CoordinatorConfig{
			Interval:       time.Minute,
			Jitter:         15 * time.Second,
			OnSessionEnded: navigateToLogin,
		},
	)
	coord.Start()
	defer coord.Stop()

The coordinator is best-effort by construction. Network failures are logged
and swallowed; the one outcome that demands action is the server declaring
the session's absolute lifetime exceeded, which fires OnSessionEnded.
*/
package sessionsdk
