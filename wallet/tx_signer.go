package wallet

import (
	"context"
	"errors"
	"fmt"

	"heliumtx/blockchain"
)

var ErrPayerMismatch = errors.New("payer does not match signing key")

// SignTransaction fills in the payer from kp when it is unset, refuses to
// sign for somebody else's address, then signs tx in place.
func SignTransaction(ctx context.Context, tx *blockchain.PaymentV2, kp Keypair, net blockchain.NetType) error {
	addr := kp.Address(net)
	prev := tx.Payer
	if prev == nil {
		tx.Payer = &addr
	} else if !prev.Equal(addr) {
		return fmt.Errorf("%w: payer %s, key %s", ErrPayerMismatch, prev, addr)
	}

	if _, err := tx.Sign(ctx, kp); err != nil {
		tx.Payer = prev
		return err
	}
	return nil
}
