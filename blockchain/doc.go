// Package blockchain builds, encodes and signs payment_v2 ledger
// transactions.
//
// A PaymentV2 is a plain value holder. MarshalUnsigned produces the
// protobuf payment_v2 message with the signature absent; that is what a
// Keypair signs. Serialize wraps the signed message in the blockchain_txn
// envelope for submission.
//
//	tx := blockchain.NewPaymentV2(blockchain.PaymentV2Options{
//	    Payer:    &payer,
//	    Payments: []blockchain.Payment{{Payee: payee, Amount: 100}},
//	    Fee:      blockchain.Int64(35000),
//	    Nonce:    blockchain.Int64(1),
//	})
//	if _, err := tx.Sign(ctx, keypair); err != nil {
//	    return err
//	}
//	envelope, err := tx.Serialize()
package blockchain
