package service

import (
	"fmt"

	"branch-cash-ledger/internal/core/domain"
	"branch-cash-ledger/internal/core/ports"
	"branch-cash-ledger/pkg/apperror"

	"github.com/shopspring/decimal"
)

// Balance triples live AES-encrypted in the wallet row. These helpers are the
// only path between ciphertext and decimal arithmetic; amounts always
// round-trip as fixed 2-decimal strings.

func decryptWalletBalances(encSvc ports.EncryptionService, w *domain.MasterWallet) (*domain.WalletBalances, error) {
	bal, err := decryptAmount(encSvc, w.EncryptedBalance)
	if err != nil {
		return nil, err
	}
	avail, err := decryptAmount(encSvc, w.EncryptedAvailable)
	if err != nil {
		return nil, err
	}
	reserve, err := decryptAmount(encSvc, w.EncryptedReserve)
	if err != nil {
		return nil, err
	}
	return &domain.WalletBalances{Balance: bal, Available: avail, Reserve: reserve}, nil
}

func decryptAmount(encSvc ports.EncryptionService, enc string) (decimal.Decimal, error) {
	plain, err := encSvc.Decrypt(enc)
	if err != nil {
		return decimal.Zero, apperror.ErrEncryptionFailure(fmt.Errorf("decrypt balance: %w", err))
	}
	d, err := decimal.NewFromString(plain)
	if err != nil {
		return decimal.Zero, apperror.InternalError(fmt.Errorf("parse balance: %w", err))
	}
	return d, nil
}

func encryptWalletBalances(encSvc ports.EncryptionService, b *domain.WalletBalances) (string, string, string, error) {
	encBal, err := encSvc.Encrypt(b.Balance.StringFixed(2))
	if err != nil {
		return "", "", "", apperror.ErrEncryptionFailure(fmt.Errorf("encrypt balance: %w", err))
	}
	encAvail, err := encSvc.Encrypt(b.Available.StringFixed(2))
	if err != nil {
		return "", "", "", apperror.ErrEncryptionFailure(fmt.Errorf("encrypt available: %w", err))
	}
	encRes, err := encSvc.Encrypt(b.Reserve.StringFixed(2))
	if err != nil {
		return "", "", "", apperror.ErrEncryptionFailure(fmt.Errorf("encrypt reserve: %w", err))
	}
	return encBal, encAvail, encRes, nil
}
