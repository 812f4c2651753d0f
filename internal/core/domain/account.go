package domain

import "strings"

// profilePhotoURL is the fallback avatar used when a profile has no picture.
const profilePhotoURL = "https://www.google.com/s2/photos/profile/"

// Account is a Google identity the operator has signed in with.
// Accounts are unique by Email.
type Account struct {
	// ID is the Google user id.
	ID string `json:"id"`
	// Email is the account address and the de-duplication key.
	Email string `json:"email"`
	// Name is the display name.
	Name string `json:"name"`
	// ImageSrc is the avatar URL.
	ImageSrc string `json:"imageSrc"`
}

// Profile is the user profile returned by the identity provider's
// userinfo endpoint.
type Profile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Account converts a profile into an Account, filling the display name from
// the email local part and the avatar from the public photo URL when the
// profile omits them.
func (p Profile) Account() Account {
	name := p.Name
	if name == "" {
		name, _, _ = strings.Cut(p.Email, "@")
	}
	image := p.Picture
	if image == "" {
		image = profilePhotoURL + p.Email
	}
	return Account{
		ID:       p.ID,
		Email:    p.Email,
		Name:     name,
		ImageSrc: image,
	}
}

// Label returns "Name <email>" for display.
func (a Account) Label() string {
	if a.Name == "" || a.Name == a.Email {
		return a.Email
	}
	return a.Name + " <" + a.Email + ">"
}

// FindAccount returns the index of the account with the given email, or -1.
func FindAccount(accounts []Account, email string) int {
	for i := range accounts {
		if accounts[i].Email == email {
			return i
		}
	}
	return -1
}

// MergeAccount inserts acc into accounts, replacing any entry with the same
// email in place. The input slice is not modified.
func MergeAccount(accounts []Account, acc Account) []Account {
	merged := make([]Account, len(accounts), len(accounts)+1)
	copy(merged, accounts)
	if i := FindAccount(merged, acc.Email); i >= 0 {
		merged[i] = acc
		return merged
	}
	return append(merged, acc)
}
