package types

import (
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"

	"github.com/selfchain/poai-consensus/codec"
)

// Transaction is the atomic unit accepted into a candidate block. Field
// order below is normative: it is exactly the order canonical_encode
// walks the struct in, and changing it changes every downstream hash.
type Transaction struct {
	Nonce        uint64
	ChainID      string
	Sender       string
	Recipient    string // empty + HasRecipient=false means contract deployment
	HasRecipient bool
	Data         []byte
	PointPrice   uint64
	Timestamp    uint64
	PublicKey    [32]byte
	Signature    [64]byte
}

// PointData is the transaction's size in bytes, the unit the selector's
// fill-percentage computation is measured against: the length of its
// canonical encoding without public_key and signature (the bytes
// SigningBytes covers, minus the domain prefix). It is derived, not
// stored, so it can never drift from that encoding.
func (tx *Transaction) PointData() int {
	return len(tx.encodeSignable())
}

func (tx *Transaction) encodeSignable() []byte {
	w := codec.NewWriter(128 + len(tx.Data))
	w.WriteUint64(tx.Nonce)
	w.WriteString(tx.ChainID)
	w.WriteString(tx.Sender)
	w.WriteOptionalString(tx.Recipient, tx.HasRecipient)
	w.WriteBytes(tx.Data)
	w.WriteUint64(tx.PointPrice)
	w.WriteUint64(tx.Timestamp)
	return w.Bytes()
}

// SigningBytes returns the exact byte string an Ed25519 signature over
// this transaction is computed against: the domain prefix followed by
// the canonical encoding of every field except public_key and signature.
func (tx *Transaction) SigningBytes() []byte {
	w := codec.NewWriter(0)
	w.WriteDomain(DomainTransaction)
	w.WriteFixed(tx.encodeSignable())
	return w.Bytes()
}

// CanonicalEncode returns the full wire encoding including public_key
// and signature, used for transmission and for transactions_root
// leaves.
func (tx *Transaction) CanonicalEncode() []byte {
	w := codec.NewWriter(0)
	w.WriteFixed(tx.encodeSignable())
	w.WriteFixed(tx.PublicKey[:])
	w.WriteFixed(tx.Signature[:])
	return w.Bytes()
}

// ID returns the transaction's content hash: SHA-256 of the full
// canonical encoding. Used as the lexicographic tiebreak key in
// selection and as the mempool's removal key.
func (tx *Transaction) ID() Hash {
	return Hash(sha256.Sum256(tx.CanonicalEncode()))
}

// Sign signs tx with priv, setting PublicKey and Signature in place.
func (tx *Transaction) Sign(priv ed25519.PrivateKey) {
	copy(tx.PublicKey[:], priv.Public().(ed25519.PublicKey))
	sig := ed25519.Sign(priv, tx.SigningBytes())
	copy(tx.Signature[:], sig)
}

// VerifySignature reports whether Signature is a valid Ed25519
// signature by PublicKey over SigningBytes.
func (tx *Transaction) VerifySignature() bool {
	return ed25519.Verify(tx.PublicKey[:], tx.SigningBytes(), tx.Signature[:])
}

// DecodeTransaction parses a transaction from its full canonical
// encoding (as produced by CanonicalEncode).
func DecodeTransaction(b []byte) (*Transaction, error) {
	r := codec.NewReader(b)
	tx := &Transaction{}

	nonce, err := r.ReadUint64()
	if err != nil {
		return nil, fmt.Errorf("transaction: nonce: %w", err)
	}
	tx.Nonce = nonce

	chainID, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("transaction: chain_id: %w", err)
	}
	tx.ChainID = chainID

	sender, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("transaction: sender: %w", err)
	}
	tx.Sender = sender

	recipient, has, err := r.ReadOptionalString()
	if err != nil {
		return nil, fmt.Errorf("transaction: recipient: %w", err)
	}
	tx.Recipient, tx.HasRecipient = recipient, has

	data, err := r.ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("transaction: data: %w", err)
	}
	tx.Data = data

	pointPrice, err := r.ReadUint64()
	if err != nil {
		return nil, fmt.Errorf("transaction: point_price: %w", err)
	}
	tx.PointPrice = pointPrice

	timestamp, err := r.ReadUint64()
	if err != nil {
		return nil, fmt.Errorf("transaction: timestamp: %w", err)
	}
	tx.Timestamp = timestamp

	pub, err := r.ReadFixed(32)
	if err != nil {
		return nil, fmt.Errorf("transaction: public_key: %w", err)
	}
	copy(tx.PublicKey[:], pub)

	sig, err := r.ReadFixed(64)
	if err != nil {
		return nil, fmt.Errorf("transaction: signature: %w", err)
	}
	copy(tx.Signature[:], sig)

	return tx, nil
}
