package handler

import (
	"github.com/shmakov/account-service/internal/core/domain"
	"github.com/shmakov/account-service/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createAccountRequest) ports.CreateAccountInput {
	return ports.CreateAccountInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	}
}

// --- Service result → HTTP response ---

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		CreatedAt: a.CreatedAt.UTC(),
	}
}
