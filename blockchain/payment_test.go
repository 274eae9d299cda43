package blockchain

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestNewPaymentV2NoValidation(t *testing.T) {
	tx := NewPaymentV2(PaymentV2Options{
		Payments: []Payment{{Payee: Address{}, Amount: -3}},
	})
	if tx.Payer != nil || tx.Fee != nil || tx.Nonce != nil || tx.Signature != nil {
		t.Error("unset options should stay absent")
	}
	if len(tx.Payments) != 1 {
		t.Error("payments should be copied as given")
	}

	empty := NewPaymentV2(PaymentV2Options{})
	if empty.Payments == nil {
		t.Error("payments should default to an empty slice")
	}
}

func TestSignStoresKeyHolderOutput(t *testing.T) {
	tx := samplePayment()
	want, _ := tx.MarshalUnsigned()

	kp := &mockKeypair{sig: []byte("signature-bytes")}
	got, err := tx.Sign(context.Background(), kp)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if got != tx {
		t.Error("Sign should return the same transaction")
	}
	if kp.calls != 1 {
		t.Errorf("key-holder called %d times", kp.calls)
	}
	if !bytes.Equal(kp.got, want) {
		t.Error("key-holder did not receive the unsigned payload")
	}
	if !bytes.Equal(tx.Signature, kp.sig) {
		t.Errorf("signature %x, want %x", tx.Signature, kp.sig)
	}
}

func TestSignThenSerializeCarriesExactSignature(t *testing.T) {
	tx := samplePayment()
	sig := bytes.Repeat([]byte{0x5a, 0x00}, 32)

	if _, err := tx.Sign(context.Background(), &mockKeypair{sig: sig}); err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	env, err := tx.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	_, _, n := protowire.ConsumeTag(env)
	inner, _ := protowire.ConsumeBytes(env[n:])
	decoded, err := DecodePaymentV2(inner)
	if err != nil {
		t.Fatalf("DecodePaymentV2 failed: %v", err)
	}
	if !bytes.Equal(decoded.Signature, sig) {
		t.Errorf("envelope signature %x, want %x", decoded.Signature, sig)
	}
}

func TestSignIgnoresPreviousSignature(t *testing.T) {
	tx := samplePayment()
	clean, _ := tx.MarshalUnsigned()
	tx.Signature = []byte("stale")

	kp := &mockKeypair{sig: []byte("fresh")}
	if _, err := tx.Sign(context.Background(), kp); err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if !bytes.Equal(kp.got, clean) {
		t.Error("previous signature leaked into the signed payload")
	}
}

func TestSignTwiceKeepsLast(t *testing.T) {
	tx := samplePayment()
	first := &mockKeypair{sig: []byte("first")}
	second := &mockKeypair{sig: []byte("second")}

	if _, err := tx.Sign(context.Background(), first); err != nil {
		t.Fatalf("first Sign failed: %v", err)
	}
	if _, err := tx.Sign(context.Background(), second); err != nil {
		t.Fatalf("second Sign failed: %v", err)
	}
	if !bytes.Equal(tx.Signature, []byte("second")) {
		t.Errorf("expected second signature, got %q", tx.Signature)
	}
	if !bytes.Equal(first.got, second.got) {
		t.Error("both signings should cover the same payload")
	}
}

func TestSignFailureLeavesTransaction(t *testing.T) {
	cause := errors.New("device unplugged")
	tx := samplePayment()
	tx.Signature = []byte("prior")

	_, err := tx.Sign(context.Background(), &mockKeypair{err: cause})
	if !errors.Is(err, ErrSigningFailed) {
		t.Errorf("expected ErrSigningFailed, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("key-holder error should stay reachable")
	}
	if !bytes.Equal(tx.Signature, []byte("prior")) {
		t.Error("failed sign must not touch the existing signature")
	}
}

func TestSignPassesContext(t *testing.T) {
	tx := samplePayment()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	kp := ctxKeypair{}
	_, err := tx.Sign(ctx, kp)
	if !errors.Is(err, context.Canceled) || !errors.Is(err, ErrSigningFailed) {
		t.Errorf("expected cancellation wrapped in ErrSigningFailed, got %v", err)
	}
	if tx.Signature != nil {
		t.Error("signature should stay absent")
	}
}

type ctxKeypair struct{}

func (ctxKeypair) Sign(ctx context.Context, _ []byte) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestSignEncodingErrorSkipsKeyHolder(t *testing.T) {
	tx := samplePayment()
	tx.Payments[0].Payee = Address{}

	kp := &mockKeypair{sig: []byte("x")}
	_, err := tx.Sign(context.Background(), kp)
	if !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("expected ErrInvalidAddress, got %v", err)
	}
	if errors.Is(err, ErrSigningFailed) {
		t.Error("encoding errors are not signing failures")
	}
	if kp.calls != 0 {
		t.Error("key-holder should not be called when encoding fails")
	}
}
