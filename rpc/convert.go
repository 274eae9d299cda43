package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"

	"heliumtx/blockchain"
	"heliumtx/utils"

	"github.com/mitchellh/mapstructure"
)

var ErrBadRequest = errors.New("bad request")

// decodeBody reads a JSON object and maps it onto out. Numbers are kept as
// json.Number so large amounts survive. Integer fields also accept decimal
// strings; nothing else is coerced.
func decodeBody(r io.Reader, out interface{}) error {
	var raw map[string]interface{}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	md, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  integerHook,
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	if err := md.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

// integerHook parses strings and json.Numbers bound for integer fields as
// base-10 integers. Fractions, empty strings and out-of-range values fail.
func integerHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	var text string
	switch v := data.(type) {
	case json.Number:
		text = string(v)
	case string:
		text = v
	default:
		return data, nil
	}

	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(text, 10, to.Bits())
		if err != nil {
			return nil, fmt.Errorf("%q is not a %s", text, to)
		}
		return n, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(text, 10, to.Bits())
		if err != nil {
			return nil, fmt.Errorf("%q is not a %s", text, to)
		}
		return n, nil
	default:
		return data, nil
	}
}

// ReadPayment decodes a JSON payment_v2 request into the model.
func ReadPayment(r io.Reader) (*blockchain.PaymentV2, error) {
	var d PaymentV2DTO
	if err := decodeBody(r, &d); err != nil {
		return nil, err
	}
	return DTOToTx(d)
}

// DTOToTx builds the model from its JSON form. Addresses are decoded from
// b58 and the signature from hex; amounts are not range-checked here, the
// codec does that.
func DTOToTx(d PaymentV2DTO) (*blockchain.PaymentV2, error) {
	opts := blockchain.PaymentV2Options{
		Fee:   d.Fee,
		Nonce: d.Nonce,
	}

	if d.Payer != "" {
		payer, err := blockchain.AddressFromB58(d.Payer)
		if err != nil {
			return nil, fmt.Errorf("payer: %w", err)
		}
		opts.Payer = &payer
	}

	opts.Payments = make([]blockchain.Payment, 0, len(d.Payments))
	for i, p := range d.Payments {
		payee, err := blockchain.AddressFromB58(p.Payee)
		if err != nil {
			return nil, fmt.Errorf("payments[%d]: %w", i, err)
		}
		amount, err := paymentAmount(p)
		if err != nil {
			return nil, fmt.Errorf("payments[%d]: %w", i, err)
		}
		opts.Payments = append(opts.Payments, blockchain.Payment{
			Payee:  payee,
			Amount: amount,
			Memo:   p.Memo,
		})
	}

	sig, err := blockchain.ParseSignature(d.Signature)
	if err != nil {
		return nil, err
	}
	opts.Signature = sig

	return blockchain.NewPaymentV2(opts), nil
}

func paymentAmount(p PaymentDTO) (int64, error) {
	if p.AmountHNT == "" {
		return p.Amount, nil
	}
	bones, err := utils.ParseHNT(p.AmountHNT)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if p.Amount != 0 && p.Amount != bones {
		return 0, fmt.Errorf("%w: amount %d disagrees with amount_hnt %s", ErrBadRequest, p.Amount, p.AmountHNT)
	}
	return bones, nil
}

func TxToDTO(tx *blockchain.PaymentV2) PaymentV2DTO {
	d := PaymentV2DTO{
		Payments:  make([]PaymentDTO, 0, len(tx.Payments)),
		Fee:       tx.Fee,
		Nonce:     tx.Nonce,
		Signature: blockchain.SignatureHex(tx.Signature),
	}
	if tx.Payer != nil {
		d.Payer = tx.Payer.B58()
	}
	for _, p := range tx.Payments {
		d.Payments = append(d.Payments, PaymentDTO{
			Payee:     p.Payee.B58(),
			Amount:    p.Amount,
			AmountHNT: utils.FormatBones(p.Amount),
			Memo:      p.Memo,
		})
	}
	return d
}
