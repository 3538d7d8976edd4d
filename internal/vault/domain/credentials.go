package domain

// Credentials is the auth channel's payload: a bearer token plus the scheme
// it should be presented with.
type Credentials struct {
	Token  string `json:"token"`
	Scheme string `json:"scheme"`
}
