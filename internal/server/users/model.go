package users

// User is the persistent identity and economy record.
//
// Password holds the bcrypt hash of the account password. Rows created by
// pre-hashing deployments may still hold plaintext; those are upgraded in
// place on the first successful login.
type User struct {
	ID           string
	Username     string
	Password     string
	Avatar       string
	Color        string
	NameColor    string
	Credits      int
	SessionToken string
}
