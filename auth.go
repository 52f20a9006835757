package docserver

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

// DefaultRealm is sent in WWW-Authenticate challenges.
const DefaultRealm = "Document Server"

// Credentials holds the expected Basic auth user and password.
type Credentials struct {
	User     string
	Password string
}

// Verify reports whether user and password match. Both comparisons always
// run so timing does not reveal which one failed.
func (c Credentials) Verify(user, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(c.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	return userOK && passOK
}

// ParseBasicAuth extracts user and password from an Authorization header
// value of the form "Basic <base64(user:password)>". The decoded value is
// split on the first colon, so passwords may contain colons.
func ParseBasicAuth(header string) (user, password string, ok bool) {
	encoded, found := strings.CutPrefix(header, "Basic ")
	if !found {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", false
	}

	return strings.Cut(string(decoded), ":")
}
