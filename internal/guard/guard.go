// Package guard resolves navigation intents for routes whose content
// depends on the session state. Guards never perform navigation
// themselves; they return a Decision the shell applies.
package guard

import (
	"net/url"
	"strings"

	"bilty/internal/session"
)

// DashboardPath is the landing page for authenticated sessions.
const DashboardPath = "/dashboard"

// protectedPrefixes lists the path prefixes that require a session.
// Everything else renders for anyone.
var protectedPrefixes = []string{
	"/dashboard",
	"/profile",
	"/entry",
	"/analysis",
	"/reports",
}

type Action int

const (
	// Render shows the requested content.
	Render Action = iota
	// RenderNothing shows nothing while the session is still resolving.
	RenderNothing
	// Redirect navigates to Decision.Target instead of rendering.
	Redirect
)

func (a Action) String() string {
	switch a {
	case RenderNothing:
		return "render-nothing"
	case Redirect:
		return "redirect"
	default:
		return "render"
	}
}

// Decision is a guard's verdict for one navigation.
type Decision struct {
	Action Action
	Target string
}

func render() Decision        { return Decision{Action: Render} }
func renderNothing() Decision { return Decision{Action: RenderNothing} }
func redirect(to string) Decision {
	return Decision{Action: Redirect, Target: to}
}

// RequiresAuth reports whether path falls under a protected prefix.
func RequiresAuth(path string) bool {
	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// Protect gates a protected route. While the session is resolving it
// renders nothing rather than flashing content that may be torn down a
// moment later. Anonymous sessions go to the login page, carrying the
// attempted path so the login flow can return there. The default
// destinations are not worth carrying: landing back on the dashboard is
// already the post-login behavior.
func Protect(status session.Status, path string) Decision {
	switch status {
	case session.StatusAuthenticated:
		return render()
	case session.StatusUninitialized, session.StatusLoading:
		return renderNothing()
	}

	if path == "" || path == "/" || path == DashboardPath {
		return redirect(session.LoginPath)
	}
	q := url.Values{"redirect": {path}}
	return redirect(session.LoginPath + "?" + q.Encode())
}

// RedirectAuthenticated keeps already-authenticated sessions off the
// login and register pages. The redirect query parameter, when present,
// wins over the dashboard default. While the session is resolving the
// page renders normally; a late authentication simply triggers the
// redirect then.
func RedirectAuthenticated(status session.Status, redirectParam string) Decision {
	if status != session.StatusAuthenticated {
		return render()
	}
	target := redirectParam
	if target == "" || !strings.HasPrefix(target, "/") {
		target = DashboardPath
	}
	return redirect(target)
}
