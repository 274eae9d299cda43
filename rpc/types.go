package rpc

// Wire-facing JSON shapes. Amounts are bones unless noted.

type PaymentDTO struct {
	Payee     string  `json:"payee" mapstructure:"payee"`
	Amount    int64   `json:"amount" mapstructure:"amount"`
	AmountHNT string  `json:"amount_hnt,omitempty" mapstructure:"amount_hnt"`
	Memo      *uint64 `json:"memo,omitempty" mapstructure:"memo"`
}

type PaymentV2DTO struct {
	Payer     string       `json:"payer,omitempty" mapstructure:"payer"`
	Payments  []PaymentDTO `json:"payments" mapstructure:"payments"`
	Fee       *int64       `json:"fee,omitempty" mapstructure:"fee"`
	Nonce     *int64       `json:"nonce,omitempty" mapstructure:"nonce"`
	Signature string       `json:"signature,omitempty" mapstructure:"signature"` // hex
}

type EncodeResult struct {
	Hash     string `json:"hash"`
	Unsigned string `json:"unsigned"` // base64 signing payload
	Txn      string `json:"txn"`      // base64 envelope
}

type SignResult struct {
	Hash      string `json:"hash"`
	Txn       string `json:"txn"`
	Signature string `json:"signature"`
}

type DecodeRequest struct {
	Txn string `mapstructure:"txn"`
}

type DecodeResult struct {
	Kind     string       `json:"kind"`
	Hash     string       `json:"hash"`
	Verified bool         `json:"verified"`
	Payment  PaymentV2DTO `json:"payment"`
}
