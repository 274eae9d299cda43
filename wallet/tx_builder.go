package wallet

import (
	"errors"
	"fmt"

	"heliumtx/blockchain"
)

var ErrInvalidPayment = errors.New("invalid payment")

// PayeeRequest is one requested transfer in textual form.
type PayeeRequest struct {
	To     string
	Amount int64
	Memo   *uint64
}

// BuildPayment resolves payees and assembles an unsigned payment_v2.
// Unlike the bare model it rejects what the ledger would refuse anyway:
// no payees, non-positive amounts, duplicate payees, paying yourself.
func BuildPayment(payer blockchain.Address, to []PayeeRequest, fee, nonce int64) (*blockchain.PaymentV2, error) {
	if len(to) == 0 {
		return nil, fmt.Errorf("%w: no payees", ErrInvalidPayment)
	}
	if err := payer.Validate(); err != nil {
		return nil, fmt.Errorf("payer: %w", err)
	}

	seen := make(map[string]bool, len(to))
	payments := make([]blockchain.Payment, 0, len(to))
	for i, p := range to {
		addr, err := blockchain.AddressFromB58(p.To)
		if err != nil {
			return nil, fmt.Errorf("payee %d: %w", i, err)
		}
		if p.Amount <= 0 {
			return nil, fmt.Errorf("%w: payee %d amount must be positive, got %d", ErrInvalidPayment, i, p.Amount)
		}
		if addr.Equal(payer) {
			return nil, fmt.Errorf("%w: payee %d is the payer", ErrInvalidPayment, i)
		}
		if seen[p.To] {
			return nil, fmt.Errorf("%w: duplicate payee %s", ErrInvalidPayment, p.To)
		}
		seen[p.To] = true

		payments = append(payments, blockchain.Payment{
			Payee:  addr,
			Amount: p.Amount,
			Memo:   p.Memo,
		})
	}

	return blockchain.NewPaymentV2(blockchain.PaymentV2Options{
		Payer:    &payer,
		Payments: payments,
		Fee:      blockchain.Int64(fee),
		Nonce:    blockchain.Int64(nonce),
	}), nil
}
