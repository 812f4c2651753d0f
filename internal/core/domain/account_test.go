package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfile_Account(t *testing.T) {
	p := Profile{ID: "1", Email: "a@x.com", Name: "Alice", Picture: "https://img/a.png"}

	acc := p.Account()

	assert.Equal(t, Account{ID: "1", Email: "a@x.com", Name: "Alice", ImageSrc: "https://img/a.png"}, acc)
}

func TestProfile_Account_Fallbacks(t *testing.T) {
	p := Profile{ID: "2", Email: "bob@example.org"}

	acc := p.Account()

	assert.Equal(t, "bob", acc.Name)
	assert.Equal(t, "https://www.google.com/s2/photos/profile/bob@example.org", acc.ImageSrc)
}

func TestAccount_Label(t *testing.T) {
	assert.Equal(t, "Alice <a@x.com>", Account{Email: "a@x.com", Name: "Alice"}.Label())
	assert.Equal(t, "a@x.com", Account{Email: "a@x.com"}.Label())
}

func TestFindAccount(t *testing.T) {
	accounts := []Account{{Email: "a@x.com"}, {Email: "b@x.com"}}

	assert.Equal(t, 1, FindAccount(accounts, "b@x.com"))
	assert.Equal(t, -1, FindAccount(accounts, "c@x.com"))
	assert.Equal(t, -1, FindAccount(nil, "a@x.com"))
}

func TestMergeAccount_Appends(t *testing.T) {
	accounts := []Account{{Email: "a@x.com", Name: "A"}}

	merged := MergeAccount(accounts, Account{Email: "b@x.com", Name: "B"})

	assert.Len(t, merged, 2)
	assert.Equal(t, "b@x.com", merged[1].Email)
	assert.Len(t, accounts, 1, "input must not be modified")
}

func TestMergeAccount_ReplacesInPlace(t *testing.T) {
	accounts := []Account{
		{Email: "a@x.com", Name: "A"},
		{Email: "b@x.com", Name: "B"},
		{Email: "c@x.com", Name: "C"},
	}

	merged := MergeAccount(accounts, Account{Email: "b@x.com", Name: "Bee"})

	assert.Len(t, merged, 3)
	assert.Equal(t, "Bee", merged[1].Name)
	assert.Equal(t, "A", merged[0].Name)
	assert.Equal(t, "C", merged[2].Name)
	assert.Equal(t, "B", accounts[1].Name, "input must not be modified")
}
