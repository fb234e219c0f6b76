package cli

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

const defaultPasswordLength = 16

// passwordAlphabet avoids characters that are easy to misread when typed
// over from a screen.
const passwordAlphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789!@#$%&*-_=+"

// generatePassword draws length characters from passwordAlphabet using
// crypto/rand. It panics if the system entropy source fails, which matches
// how crypto/rand itself treats that condition.
func generatePassword(length int) string {
	max := big.NewInt(int64(len(passwordAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf)
}

// GenPass prints a freshly generated password and copies it to the
// clipboard. Available without a session.
func (a *App) GenPass(ctx context.Context) error {
	password := generatePassword(defaultPasswordLength)
	if err := a.clip.Write(ctx, password); err == nil {
		fmt.Fprintln(a.out, "Password copied to clipboard.")
	}
	a.reveal(password)
	return nil
}
