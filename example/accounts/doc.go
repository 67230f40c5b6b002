// Package accounts is a small settings page that talks to an asynchronous backend.
//
// It exists to show how a calltracker.Double backs a fake backend: the page receives its
// BrowserProxy through NewPage, and tests pass an accountstest.TestBrowserProxy instead of
// the real one. Nothing is looked up through global state.
package accounts
