package wallet

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/google/uuid"

	"idwallet/internal/crypto"
)

// walletSeq orders wallets for code that locks two at once.
var walletSeq atomic.Uint64

// Unlocked is a wallet whose contents are in memory. It is safe for
// concurrent use: key operations share a read lock, mutations and Lock take
// the write lock.
type Unlocked struct {
	mu         sync.RWMutex
	seq        uint64
	id         string
	context    []string
	walletType []string
	contents   map[string]Content
}

// New returns an empty wallet. An empty id is replaced by a random UUID.
// The id, context and type must be valid UTF-8 for Lock to succeed.
func New(id string, context, walletType []string) *Unlocked {
	if id == "" {
		id = uuid.NewString()
	}
	return &Unlocked{
		seq:        walletSeq.Add(1),
		id:         id,
		context:    append([]string{}, context...),
		walletType: append([]string{}, walletType...),
		contents:   make(map[string]Content),
	}
}

// ID returns the wallet id.
func (u *Unlocked) ID() string { return u.id }

// Context returns a copy of the JSON-LD context list.
func (u *Unlocked) Context() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return append([]string{}, u.context...)
}

// Type returns a copy of the wallet type list.
func (u *Unlocked) Type() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return append([]string{}, u.walletType...)
}

// AddKey stores kp under a fresh random reference and returns it.
func (u *Unlocked) AddKey(kp *crypto.KeyPair) (string, error) {
	if !validContent(KeyContent{Pair: kp}) {
		return "", ErrInvalidContent
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	ref := uuid.NewString()
	for {
		if _, taken := u.contents[ref]; !taken {
			break
		}
		ref = uuid.NewString()
	}
	u.contents[ref] = KeyContent{Pair: kp}
	return ref, nil
}

// PutKey stores kp under ref.
func (u *Unlocked) PutKey(ref string, kp *crypto.KeyPair) error {
	return u.PutContent(ref, KeyContent{Pair: kp})
}

// PutContent stores c under ref. Existing references are never replaced.
// Opaque data is stored compacted.
func (u *Unlocked) PutContent(ref string, c Content) error {
	if ref == "" || !utf8.ValidString(ref) || !validContent(c) {
		return fmt.Errorf("%w: %q", ErrInvalidContent, ref)
	}
	c, err := normalize(c)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidContent, ref, err)
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.contents[ref]; ok {
		return fmt.Errorf("%w: %q", ErrReferenceExists, ref)
	}
	u.contents[ref] = c
	return nil
}

// Remove deletes ref, wiping key material it held.
func (u *Unlocked) Remove(ref string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	c, ok := u.contents[ref]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoSuchReference, ref)
	}
	if kc, ok := c.(KeyContent); ok {
		kc.Pair.Wipe()
	}
	delete(u.contents, ref)
	return nil
}

// Get returns the content stored under ref.
func (u *Unlocked) Get(ref string) (Content, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	c, ok := u.contents[ref]
	return c, ok
}

// References returns every reference in sorted order.
func (u *Unlocked) References() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	refs := make([]string, 0, len(u.contents))
	for ref := range u.contents {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// Len returns the number of entries.
func (u *Unlocked) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.contents)
}

// SignRaw signs data with the key under ref.
func (u *Unlocked) SignRaw(ref string, data []byte) ([]byte, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	kp, err := resolve(u.contents, ref)
	if err != nil {
		return nil, err
	}
	return kp.Sign(data)
}

// VerifyRaw checks sig over data with the key under ref.
func (u *Unlocked) VerifyRaw(ref string, data, sig []byte) (bool, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	kp, err := resolve(u.contents, ref)
	if err != nil {
		return false, err
	}
	return kp.Verify(data, sig)
}

// Decrypt opens a sealed box addressed to the key under ref.
func (u *Unlocked) Decrypt(ref string, data []byte) ([]byte, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	kp, err := resolve(u.contents, ref)
	if err != nil {
		return nil, err
	}
	return kp.Decrypt(data)
}

// Encrypt seals data to the public half of the key under ref.
func (u *Unlocked) Encrypt(ref string, data []byte) ([]byte, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	kp, err := resolve(u.contents, ref)
	if err != nil {
		return nil, err
	}
	return kp.PublicKey().Encrypt(data)
}

// PublicKey returns the public description of the key under ref.
func (u *Unlocked) PublicKey(ref string) (crypto.PublicKeyInfo, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	kp, err := resolve(u.contents, ref)
	if err != nil {
		return crypto.PublicKeyInfo{}, err
	}
	return kp.PublicKey(), nil
}

// Equal reports whether u and o have the same id, metadata and contents.
func (u *Unlocked) Equal(o *Unlocked) bool {
	if u == o {
		return true
	}
	first, second := u, o
	if o.seq < u.seq {
		first, second = o, u
	}
	first.mu.RLock()
	defer first.mu.RUnlock()
	second.mu.RLock()
	defer second.mu.RUnlock()
	if u.id != o.id || !equalStrings(u.context, o.context) || !equalStrings(u.walletType, o.walletType) {
		return false
	}
	if len(u.contents) != len(o.contents) {
		return false
	}
	for ref, a := range u.contents {
		b, ok := o.contents[ref]
		if !ok || !equalContent(a, b) {
			return false
		}
	}
	return true
}

// Close wipes every private key held by the wallet and empties it.
func (u *Unlocked) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	for ref, c := range u.contents {
		if kc, ok := c.(KeyContent); ok {
			kc.Pair.Wipe()
		}
		delete(u.contents, ref)
	}
}

func equalContent(a, b Content) bool {
	switch av := a.(type) {
	case KeyContent:
		bv, ok := b.(KeyContent)
		return ok && av.Pair.Equal(bv.Pair)
	case OpaqueContent:
		bv, ok := b.(OpaqueContent)
		return ok && av.Type == bv.Type && string(av.Data) == string(bv.Data)
	default:
		return false
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
