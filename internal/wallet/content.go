package wallet

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"

	"idwallet/internal/crypto"
)

const keyContentKind = "Key"

// Content is one entry of a wallet. KeyContent holds key material; every
// other kind (DIDs, credentials, ...) is carried as OpaqueContent.
type Content interface {
	// Kind returns the content type tag used in the encoded wallet.
	Kind() string
	content()
}

// KeyContent holds a key pair. The wallet owns the pair once inserted.
type KeyContent struct {
	Pair *crypto.KeyPair
}

// Kind implements Content.
func (KeyContent) Kind() string { return keyContentKind }
func (KeyContent) content()     {}

// OpaqueContent is content the wallet stores but does not interpret. Data
// must be valid JSON; the wallet keeps it in compacted form.
type OpaqueContent struct {
	Type string
	Data json.RawMessage
}

// Kind implements Content.
func (c OpaqueContent) Kind() string { return c.Type }
func (OpaqueContent) content()       {}

// validContent reports whether c can be stored. Every string that ends up
// in the encoding must be valid UTF-8, or it would not survive Lock.
func validContent(c Content) bool {
	switch v := c.(type) {
	case KeyContent:
		return v.Pair != nil && validUTF8(v.Pair.PublicKey().Controller...)
	case OpaqueContent:
		return v.Type != "" && v.Type != keyContentKind && utf8.ValidString(v.Type) &&
			(len(v.Data) == 0 || json.Valid(v.Data))
	default:
		return false
	}
}

// normalize returns c in the form Unlock reproduces.
func normalize(c Content) (Content, error) {
	oc, ok := c.(OpaqueContent)
	if !ok || len(oc.Data) == 0 {
		return c, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, oc.Data); err != nil {
		return nil, err
	}
	oc.Data = json.RawMessage(buf.Bytes())
	return oc, nil
}

func validUTF8(ss ...string) bool {
	for _, s := range ss {
		if !utf8.ValidString(s) {
			return false
		}
	}
	return true
}
