package handler

import (
	"pezkuwi/internal/account/models"
	"pezkuwi/internal/account/service"
	id "pezkuwi/pkg/domain"
)

type SignupResponse struct {
	Success       bool             `json:"success"`
	UserID        id.UserID        `json:"user_id"`
	WalletAddress id.WalletAddress `json:"wallet_address"`
	Message       string           `json:"message"`
}

type LoginResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

type WalletResponse struct {
	WalletAddress id.WalletAddress `json:"wallet_address"`
	HEZBalance    id.Amount        `json:"hez_balance"`
	PEZBalance    id.Amount        `json:"pez_balance"`
}

func toWalletResponse(w *service.Wallet) WalletResponse {
	return WalletResponse{
		WalletAddress: w.WalletAddress,
		HEZBalance:    w.HEZBalance,
		PEZBalance:    w.PEZBalance,
	}
}
