package auth

import "math/rand/v2"

// codeAlphabet is the pairing-code alphabet. The code is shown to the user
// and typed into an already-authenticated browser session; it is not a
// secret, so a non-cryptographic uniform source is fine.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// codeLength is fixed by the portal's pairing page.
const codeLength = 6

// GenerateDeviceCode returns a fresh 6-character pairing code drawn
// uniformly from [A-Z0-9].
func GenerateDeviceCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return string(b)
}
