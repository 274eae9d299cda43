package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"heliumtx/blockchain"
	"heliumtx/config"
	"heliumtx/database"
	"heliumtx/rpc"
	"heliumtx/utils"
	"heliumtx/wallet"
)

var logger = &utils.Logger{Prefix: "heliumtx: "}

func main() {
	mode := flag.String("mode", "serve", "serve | encode | sign | decode | pending | clear")
	cfgPath := flag.String("config", "", "YAML config file")
	reqPath := flag.String("req", "", "JSON payment request (encode, sign)")
	txnB64 := flag.String("txn", "", "base64 envelope (decode)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	net, err := cfg.NetType()
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	// the secret is read from the environment only, never from disk
	kp, err := loadKeypair(os.Getenv("HELIUMTX_SECRET"))
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	switch *mode {
	case "serve":
		err = serve(cfg, kp, net)
	case "encode":
		err = encode(*reqPath)
	case "sign":
		err = sign(cfg, *reqPath, kp, net)
	case "decode":
		err = decode(*txnB64)
	case "pending":
		err = pending(cfg)
	case "clear":
		err = clearOutbox(cfg)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func loadKeypair(secret string) (wallet.Keypair, error) {
	if secret == "" {
		return nil, nil
	}
	return wallet.ImportSecret(secret)
}

func serve(cfg *config.Config, kp wallet.Keypair, net blockchain.NetType) error {
	store, err := database.OpenDB(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if kp == nil {
		logger.Warn("HELIUMTX_SECRET not set, /payment/sign disabled")
	} else {
		logger.Info("signing as %s (%s)", kp.Address(net).B58(), net)
	}

	srv := rpc.NewServer(kp, net, store)
	errc := make(chan error, 1)
	go func() { errc <- srv.Start(cfg.RPC.Listen) }()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	select {
	case err := <-errc:
		return err
	case <-sigc:
		logger.Info("shutting down")
		return nil
	}
}

func readPayment(path string) (*blockchain.PaymentV2, error) {
	if path == "" {
		return nil, fmt.Errorf("-req is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return rpc.ReadPayment(f)
}

func encode(reqPath string) error {
	tx, err := readPayment(reqPath)
	if err != nil {
		return err
	}
	envelope, err := tx.Serialize()
	if err != nil {
		return err
	}
	hash, err := tx.Hash()
	if err != nil {
		return err
	}
	fmt.Println("hash:", hash)
	fmt.Println("txn: ", base64.StdEncoding.EncodeToString(envelope))
	return nil
}

func sign(cfg *config.Config, reqPath string, kp wallet.Keypair, net blockchain.NetType) error {
	if kp == nil {
		return fmt.Errorf("HELIUMTX_SECRET is required to sign")
	}
	tx, err := readPayment(reqPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := wallet.SignTransaction(ctx, tx, kp, net); err != nil {
		return err
	}

	envelope, err := tx.Serialize()
	if err != nil {
		return err
	}
	hash, err := tx.Hash()
	if err != nil {
		return err
	}

	store, err := database.OpenDB(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.PutTxn(hash, envelope); err != nil {
		return err
	}

	fmt.Println("hash:", hash)
	fmt.Println("txn: ", base64.StdEncoding.EncodeToString(envelope))
	return nil
}

func decode(txnB64 string) error {
	raw, err := base64.StdEncoding.DecodeString(txnB64)
	if err != nil {
		return fmt.Errorf("txn is not base64: %w", err)
	}
	res, err := rpc.Describe(raw)
	if err != nil {
		return err
	}
	out, _ := json.MarshalIndent(res, "", "  ")
	fmt.Println(string(out))
	return nil
}

func pending(cfg *config.Config) error {
	store, err := database.OpenDB(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.ForEachTxn(func(hash string, envelope []byte) error {
		fmt.Printf("%s %s\n", hash, base64.StdEncoding.EncodeToString(envelope))
		return nil
	})
}

// clearOutbox drops every recorded envelope. Nonce metadata is kept.
func clearOutbox(cfg *config.Config) error {
	store, err := database.OpenDB(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ClearTxns(); err != nil {
		return err
	}
	logger.Info("outbox cleared")
	return nil
}
