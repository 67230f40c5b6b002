package accounts

import (
	"context"
	"errors"
	"slices"
	"sync"
)

var (
	// ErrPrimaryAccount is returned when the page is asked to remove the primary account.
	ErrPrimaryAccount = errors.New("the primary account can not be removed")

	// ErrUnknownAccount is returned when an account id is not shown on the page.
	ErrUnknownAccount = errors.New("account is not shown on the page")

	// ErrRemovingAccountFailed is returned when the backend refuses to remove an account.
	ErrRemovingAccountFailed = errors.New("removing account failed")
)

// Account is one signed-in account as shown on the page.
type Account struct {
	ID        string
	Email     string
	IsPrimary bool
}

// BrowserProxy is the backend the page talks to.
type BrowserProxy interface {
	GetAccounts(ctx context.Context) ([]Account, error)
	AddAccount(ctx context.Context) error
	RemoveAccount(ctx context.Context, accountID string) error
}

// Page shows the signed-in accounts and lets the user add or remove secondary ones.
type Page struct {
	proxy BrowserProxy

	mu       sync.Mutex
	accounts []Account
	loadErr  error
	loading  sync.WaitGroup
}

// NewPage creates a page backed by proxy.
func NewPage(proxy BrowserProxy) *Page {
	return &Page{proxy: proxy}
}

// Attach starts loading the accounts in the background, like a page that was just opened.
func (p *Page) Attach(ctx context.Context) {
	p.refresh(ctx)
}

// AccountsChanged is called by the backend whenever the set of accounts changes.
func (p *Page) AccountsChanged(ctx context.Context) {
	p.refresh(ctx)
}

// Close waits for background loads to finish.
func (p *Page) Close() {
	p.loading.Wait()
}

// Accounts returns a copy of the accounts currently shown.
func (p *Page) Accounts() []Account {
	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.Clone(p.accounts)
}

// LoadErr returns the error of the last background load, if any.
func (p *Page) LoadErr() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.loadErr
}

// ClickAdd asks the backend to start the add-account flow.
func (p *Page) ClickAdd(ctx context.Context) error {
	return p.proxy.AddAccount(ctx)
}

// ClickRemove removes a secondary account and reloads the list in the background.
func (p *Page) ClickRemove(ctx context.Context, accountID string) error {
	account, found := p.account(accountID)
	if !found {
		return ErrUnknownAccount
	}

	if account.IsPrimary {
		return ErrPrimaryAccount
	}

	if err := p.proxy.RemoveAccount(ctx, accountID); err != nil {
		return errors.Join(ErrRemovingAccountFailed, err)
	}

	p.refresh(ctx)

	return nil
}

func (p *Page) account(accountID string) (Account, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	index := slices.IndexFunc(p.accounts, func(a Account) bool { return a.ID == accountID })
	if index < 0 {
		return Account{}, false
	}

	return p.accounts[index], true
}

func (p *Page) refresh(ctx context.Context) {
	p.loading.Add(1)

	go func() {
		defer p.loading.Done()

		accounts, err := p.proxy.GetAccounts(ctx)

		p.mu.Lock()
		defer p.mu.Unlock()

		p.loadErr = err
		if err == nil {
			p.accounts = accounts
		}
	}()
}
