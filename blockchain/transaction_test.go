package blockchain

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestHashUnchangedBySigning(t *testing.T) {
	tx := samplePayment()
	before, err := tx.Hash()
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if len(before) != 43 {
		t.Errorf("expected 43-char base64url hash, got %d", len(before))
	}

	if _, err := tx.Sign(context.Background(), &mockKeypair{sig: []byte("s")}); err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	after, _ := tx.Hash()
	if before != after {
		t.Error("signing changed the transaction hash")
	}

	tx.Payments[0].Amount = 101
	changed, _ := tx.Hash()
	if changed == before {
		t.Error("hash should cover the payments")
	}
}

func TestDecodeTxnUnsupported(t *testing.T) {
	b := protowire.AppendTag(nil, protowire.Number(KindPayment), protowire.BytesType)
	b = protowire.AppendBytes(b, []byte{})

	_, err := DecodeTxn(b)
	if !errors.Is(err, ErrUnsupportedTxn) {
		t.Errorf("expected ErrUnsupportedTxn, got %v", err)
	}
}

func TestDecodeTxnEmpty(t *testing.T) {
	if _, err := DecodeTxn(nil); !errors.Is(err, ErrSchemaViolation) {
		t.Errorf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestTxnInterface(t *testing.T) {
	var txn Txn = samplePayment()
	if txn.Kind() != KindPaymentV2 {
		t.Errorf("unexpected kind %s", txn.Kind())
	}
	if KindPaymentV2.String() != "payment_v2" {
		t.Errorf("unexpected name %s", KindPaymentV2)
	}
}
