// Package models defines the wire-level data types exchanged with the
// OceanChat server and cached locally by the client.
package models

// User is the identity and economy record for a chat participant.
//
// Token is the opaque session credential issued by the server; a user value
// without a token is treated as logged out. Password travels only inside
// register/login requests and is never persisted by the client.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	Avatar    string `json:"avatar"`
	Color     string `json:"color"`
	NameColor string `json:"nameColor,omitempty"`
	Credits   int    `json:"credits"`
	Token     string `json:"token,omitempty"`
}
