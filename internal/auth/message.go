package auth

import (
	"fmt"
	"strings"
)

// LoginMessage is the text the wallet signs with personal_sign.
func LoginMessage(address, nonce string, chainID int64) string {
	var b strings.Builder
	b.WriteString("EventX wants you to sign in with your wallet:\n")
	b.WriteString(strings.ToLower(address))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Chain ID: %d\n", chainID)
	fmt.Fprintf(&b, "Nonce: %s", nonce)
	return b.String()
}
