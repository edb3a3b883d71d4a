package wallet

import (
	"fmt"

	"idwallet/internal/crypto"
)

// resolve returns the key pair stored under ref.
func resolve(contents map[string]Content, ref string) (*crypto.KeyPair, error) {
	c, ok := contents[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchReference, ref)
	}
	kc, ok := c.(KeyContent)
	if !ok {
		return nil, fmt.Errorf("%w: %q holds %s", ErrIncorrectContentType, ref, c.Kind())
	}
	return kc.Pair, nil
}
