package user

// User is a registered account. EncryptedPassword is the credential cipher
// output for the user's password; the plaintext is never stored.
type User struct {
	ID                int64
	Name              string
	EncryptedPassword []byte
}

// Profile is the part of a user that is safe to show.
type Profile struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (u User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name}
}
