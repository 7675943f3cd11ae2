package service

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	model "schoolfeesku_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Gateway client (Midtrans Snap)
========================================================= */

var snapClient snap.Client

// InitGateway harus dipanggil saat bootstrap app.
func InitGateway(serverKey string, useProduction bool) {
	if useProduction {
		snapClient.New(serverKey, midtrans.Production)
	} else {
		snapClient.New(serverKey, midtrans.Sandbox)
	}
}

type PayerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// CreateGatewayOrder membuat transaksi Snap untuk payment online yang sudah
// tersimpan. Mengembalikan (token, redirectURL).
func CreateGatewayOrder(p model.PaymentModel, payer PayerInput) (string, string, error) {
	if !p.PaymentAmount.IsPositive() {
		return "", "", errors.New("invalid payment amount")
	}
	if p.PaymentGatewayOrderID == nil || *p.PaymentGatewayOrderID == "" {
		return "", "", errors.New("gateway order id is required")
	}

	gross := p.PaymentAmount.Round(0).IntPart()
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  *p.PaymentGatewayOrderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: payer.FirstName,
			LName: payer.LastName,
			Email: payer.Email,
			Phone: payer.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       *p.PaymentGatewayOrderID,
				Price:    gross,
				Qty:      1,
				Name:     "School fee payment",
				Category: "FEES",
			},
		},
	}

	resp, err := snapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

/* =========================================================
   Signature verification
========================================================= */

func sha512sum(s string) string {
	h := sha512.Sum512([]byte(s))
	return hex.EncodeToString(h[:])
}

// VerifyConfirmSignature memverifikasi bukti dari widget:
// SHA512(order_id + payment_id + server key).
func VerifyConfirmSignature(orderID, paymentID, signature, serverKey string) bool {
	want := sha512sum(orderID + paymentID + serverKey)
	got := strings.ToLower(strings.TrimSpace(signature))
	if got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

// VerifyWebhookSignature: skema notifikasi gateway,
// SHA512(order_id + status_code + gross_amount + server key).
func VerifyWebhookSignature(orderID, statusCode, grossAmount, signature, serverKey string) bool {
	want := sha512sum(orderID + statusCode + grossAmount + serverKey)
	got := strings.ToLower(strings.TrimSpace(signature))
	if got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}
