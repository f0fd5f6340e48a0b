// Package signer derives the deterministic placeholder signatures and
// transaction hashes recorded on votes and executed proposals. Nothing here
// touches a private key.
package signer

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/coffer/internal/domain/models"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// KeccakSigner hashes vote and transfer fields with keccak256
type KeccakSigner struct{}

// NewKeccakSigner creates a new signer
func NewKeccakSigner() *KeccakSigner {
	return &KeccakSigner{}
}

// SignVote returns the 0x-prefixed keccak256 of proposal:voter:approved:unixnano
func (s *KeccakSigner) SignVote(proposalID, voterID string, approved bool, at time.Time) string {
	payload := fmt.Sprintf("%s:%s:%s:%d", proposalID, voterID, strconv.FormatBool(approved), at.UnixNano())
	return crypto.Keccak256Hash([]byte(payload)).Hex()
}

// TransactionHash returns the keccak256 over the ledger fields of tx
func (s *KeccakSigner) TransactionHash(tx *models.Transaction) string {
	payload := fmt.Sprintf("%s:%s:%s:%s:%s:%s:%d",
		tx.TreasuryID, tx.ProposalID, tx.Type, tx.Amount.String(), tx.From, tx.To, tx.Timestamp.UnixNano())
	return crypto.Keccak256Hash([]byte(payload)).Hex()
}

var _ usecase.Signer = (*KeccakSigner)(nil)
