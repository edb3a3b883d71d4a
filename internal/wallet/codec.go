package wallet

import (
	"bytes"
	"encoding/json"
	"fmt"

	"idwallet/internal/crypto"
)

// walletJSON is the canonical plaintext sealed by Lock. Map keys are
// emitted sorted by encoding/json, so equal wallets encode identically.
type walletJSON struct {
	Context  []string               `json:"@context"`
	ID       string                 `json:"id"`
	Type     []string               `json:"type"`
	Contents map[string]contentJSON `json:"contents"`
}

type contentJSON struct {
	Type string                `json:"type"`
	Key  *crypto.KeyPairRecord `json:"key,omitempty"`
	Data json.RawMessage       `json:"data,omitempty"`
}

// encode serializes u; the caller holds u.mu. Strings that are not valid
// UTF-8 are refused, since encoding/json would replace their bytes.
func (u *Unlocked) encode() ([]byte, error) {
	if !validUTF8(u.id) || !validUTF8(u.context...) || !validUTF8(u.walletType...) {
		return nil, fmt.Errorf("%w: wallet id, context or type is not valid UTF-8", ErrEncoding)
	}
	w := walletJSON{
		Context:  nonNil(u.context),
		ID:       u.id,
		Type:     nonNil(u.walletType),
		Contents: make(map[string]contentJSON, len(u.contents)),
	}
	var records []*crypto.KeyPairRecord
	defer func() {
		for _, r := range records {
			r.Wipe()
		}
	}()
	for ref, c := range u.contents {
		if !validUTF8(ref) || !validContent(c) {
			return nil, fmt.Errorf("%w: content %q cannot be encoded", ErrEncoding, ref)
		}
		switch v := c.(type) {
		case KeyContent:
			rec := v.Pair.ExportRecord()
			records = append(records, &rec)
			w.Contents[ref] = contentJSON{Type: keyContentKind, Key: &rec}
		case OpaqueContent:
			w.Contents[ref] = contentJSON{Type: v.Type, Data: v.Data}
		}
	}
	// HTML escaping stays off so opaque data keeps the bytes PutContent stored.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func decode(b []byte) (*Unlocked, error) {
	var w walletJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	if w.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrEncoding)
	}
	u := New(w.ID, w.Context, w.Type)
	for ref, c := range w.Contents {
		if c.Type != keyContentKind {
			u.contents[ref] = OpaqueContent{Type: c.Type, Data: c.Data}
			continue
		}
		if c.Key == nil {
			u.Close()
			return nil, fmt.Errorf("%w: key content %q without key", ErrEncoding, ref)
		}
		kp, err := crypto.KeyPairFromRecord(*c.Key)
		c.Key.Wipe()
		if err != nil {
			u.Close()
			return nil, fmt.Errorf("%w: key %q: %v", ErrEncoding, ref, err)
		}
		u.contents[ref] = KeyContent{Pair: kp}
	}
	return u, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
