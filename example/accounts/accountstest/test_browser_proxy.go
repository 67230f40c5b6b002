// Package accountstest provides a fake accounts.BrowserProxy for tests.
package accountstest

import (
	"context"

	"github.com/AntonStoeckl/calltracking-double-go/calltracker"
	"github.com/AntonStoeckl/calltracking-double-go/example/accounts"
)

// Operation names tracked by TestBrowserProxy.
const (
	MethodGetAccounts   = "getAccounts"
	MethodAddAccount    = "addAccount"
	MethodRemoveAccount = "removeAccount"
)

// TestBrowserProxy is an accounts.BrowserProxy that records every call on its embedded Double.
//
// GetAccounts returns the accounts set with SetAccounts. AddAccount and RemoveAccount
// return an error if one was stored with SetResultFor.
type TestBrowserProxy struct {
	*calltracker.Double
}

// NewTestBrowserProxy creates a fake proxy without accounts.
func NewTestBrowserProxy(options ...calltracker.Option) (*TestBrowserProxy, error) {
	d, err := calltracker.New(
		[]string{MethodGetAccounts, MethodAddAccount, MethodRemoveAccount},
		append([]calltracker.Option{calltracker.WithName("accounts-proxy")}, options...)...,
	)
	if err != nil {
		return nil, err
	}

	return &TestBrowserProxy{Double: d}, nil
}

// SetAccounts sets what GetAccounts returns.
func (p *TestBrowserProxy) SetAccounts(accountList ...accounts.Account) {
	_ = p.SetResultFor(MethodGetAccounts, accountList) // tracked by construction
}

// GetAccounts implements accounts.BrowserProxy.
func (p *TestBrowserProxy) GetAccounts(context.Context) ([]accounts.Account, error) {
	p.MustRecordInvocation(MethodGetAccounts)

	result, err := p.ResultFor(MethodGetAccounts)
	if err != nil {
		return nil, err
	}

	accountList, _ := result.([]accounts.Account)

	return accountList, nil
}

// AddAccount implements accounts.BrowserProxy.
func (p *TestBrowserProxy) AddAccount(context.Context) error {
	p.MustRecordInvocation(MethodAddAccount)

	return p.errorResult(MethodAddAccount)
}

// RemoveAccount implements accounts.BrowserProxy.
func (p *TestBrowserProxy) RemoveAccount(_ context.Context, accountID string) error {
	p.MustRecordInvocation(MethodRemoveAccount, accountID)

	return p.errorResult(MethodRemoveAccount)
}

func (p *TestBrowserProxy) errorResult(name string) error {
	result, err := p.ResultFor(name)
	if err != nil {
		return err
	}

	resultErr, _ := result.(error)

	return resultErr
}

var _ accounts.BrowserProxy = (*TestBrowserProxy)(nil)
