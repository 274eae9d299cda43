package rpc

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"heliumtx/blockchain"
	"heliumtx/database"
	"heliumtx/utils"
	"heliumtx/wallet"

	"github.com/gin-gonic/gin"
)

// Server exposes the codec and signer over HTTP. Keypair may be nil, in
// which case /payment/sign answers 503.
type Server struct {
	Keypair wallet.Keypair
	Net     blockchain.NetType
	Store   *database.BoltDB
	Log     *utils.Logger
}

func NewServer(kp wallet.Keypair, net blockchain.NetType, store *database.BoltDB) *Server {
	return &Server{
		Keypair: kp,
		Net:     net,
		Store:   store,
		Log:     &utils.Logger{Prefix: "rpc: "},
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", s.health)
	r.POST("/payment/encode", s.encodePayment)
	r.POST("/payment/sign", s.signPayment)
	r.POST("/txn/decode", s.decodeTxn)
	r.GET("/txn/:hash", s.getTxn)
	r.GET("/account/:address/nonce", s.lastNonce)
	return r
}

func (s *Server) Start(addr string) error {
	s.Log.Info("listening at %s", addr)
	return s.Router().Run(addr)
}

func (s *Server) health(c *gin.Context) {
	resp := gin.H{"status": "ok", "network": s.Net.String()}
	if s.Keypair != nil {
		resp["signer"] = s.Keypair.Address(s.Net).B58()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) encodePayment(c *gin.Context) {
	var req PaymentV2DTO
	if err := decodeBody(c.Request.Body, &req); err != nil {
		s.fail(c, err)
		return
	}
	tx, err := DTOToTx(req)
	if err != nil {
		s.fail(c, err)
		return
	}

	unsigned, err := tx.MarshalUnsigned()
	if err != nil {
		s.fail(c, err)
		return
	}
	envelope, err := tx.Serialize()
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, EncodeResult{
		Hash:     blockchain.HashTxBytes(unsigned),
		Unsigned: base64.StdEncoding.EncodeToString(unsigned),
		Txn:      base64.StdEncoding.EncodeToString(envelope),
	})
}

func (s *Server) signPayment(c *gin.Context) {
	if s.Keypair == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no signing key configured"})
		return
	}

	var req PaymentV2DTO
	if err := decodeBody(c.Request.Body, &req); err != nil {
		s.fail(c, err)
		return
	}
	tx, err := DTOToTx(req)
	if err != nil {
		s.fail(c, err)
		return
	}

	if err := wallet.SignTransaction(c.Request.Context(), tx, s.Keypair, s.Net); err != nil {
		s.fail(c, err)
		return
	}

	envelope, err := tx.Serialize()
	if err != nil {
		s.fail(c, err)
		return
	}
	hash, err := tx.Hash()
	if err != nil {
		s.fail(c, err)
		return
	}

	if err := s.Store.PutTxn(hash, envelope); err != nil {
		s.fail(c, err)
		return
	}
	if tx.Nonce != nil {
		key := nonceKey(tx.Payer.B58())
		if err := s.Store.PutMeta(key, []byte(strconv.FormatInt(*tx.Nonce, 10))); err != nil {
			s.Log.Warn("record nonce for %s: %v", tx.Payer, err)
		}
	}
	s.Log.Info("signed %s for %s", hash, tx.Payer)

	c.JSON(http.StatusOK, SignResult{
		Hash:      hash,
		Txn:       base64.StdEncoding.EncodeToString(envelope),
		Signature: blockchain.SignatureHex(tx.Signature),
	})
}

func (s *Server) decodeTxn(c *gin.Context) {
	var req DecodeRequest
	if err := decodeBody(c.Request.Body, &req); err != nil {
		s.fail(c, err)
		return
	}
	raw, err := base64.StdEncoding.DecodeString(req.Txn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "txn is not base64"})
		return
	}

	res, err := Describe(raw)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) getTxn(c *gin.Context) {
	hash := c.Param("hash")
	envelope, err := s.Store.GetTxn(hash)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"hash": hash,
		"txn":  base64.StdEncoding.EncodeToString(envelope),
	})
}

func (s *Server) lastNonce(c *gin.Context) {
	addr := c.Param("address")
	v, err := s.Store.GetMeta(nonceKey(addr))
	if err != nil {
		s.fail(c, err)
		return
	}
	nonce, err := strconv.ParseInt(string(v), 10, 64)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": addr, "nonce": nonce})
}

// Describe decodes an envelope into its JSON form and reports whether the
// signature verifies.
func Describe(envelope []byte) (*DecodeResult, error) {
	txn, err := blockchain.DecodeTxn(envelope)
	if err != nil {
		return nil, err
	}
	tx, ok := txn.(*blockchain.PaymentV2)
	if !ok {
		return nil, blockchain.ErrUnsupportedTxn
	}
	hash, err := tx.Hash()
	if err != nil {
		return nil, err
	}
	return &DecodeResult{
		Kind:     tx.Kind().String(),
		Hash:     hash,
		Verified: tx.Verify() == nil,
		Payment:  TxToDTO(tx),
	}, nil
}

func nonceKey(addr string) string {
	return "nonce:" + addr
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.Log.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, blockchain.ErrInvalidAddress),
		errors.Is(err, blockchain.ErrSchemaViolation),
		errors.Is(err, blockchain.ErrMalformedSignature),
		errors.Is(err, blockchain.ErrUnsupportedTxn),
		errors.Is(err, wallet.ErrPayerMismatch):
		return http.StatusBadRequest
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, blockchain.ErrSigningFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
