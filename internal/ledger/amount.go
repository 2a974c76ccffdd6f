package ledger

import "errors"

// BaseCurrency - tüm amount_try değerlerinin normalize edildiği para birimi
const BaseCurrency = "TRY"

var (
	ErrInvalidAmount       = errors.New("tutar 0'dan büyük olmalı")
	ErrInvalidExchangeRate = errors.New("döviz kuru 0'dan büyük olmalı")
)

// ValidateMoneyInput - yeni girilen tutar/kur ikilisini doğrular.
// Kur kontrolü yalnızca dövizli işlemlerde yapılır.
func ValidateMoneyInput(amount float64, currency string, exchangeRate float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if currency != BaseCurrency && exchangeRate <= 0 {
		return ErrInvalidExchangeRate
	}
	return nil
}

// DeriveBaseAmount - TRY karşılığını hesaplar. Kayıtlı satırlar yeniden
// okunurken kur 0/boş kalmış olabilir; sıfır değerleme üretmemek için bu
// durumda kur 1 kabul edilir. Yeni girişlerin doğrulaması ValidateMoneyInput'tadır.
func DeriveBaseAmount(amount float64, currency string, exchangeRate float64) float64 {
	if currency == BaseCurrency {
		return amount
	}
	if exchangeRate <= 0 {
		exchangeRate = 1
	}
	return amount * exchangeRate
}
