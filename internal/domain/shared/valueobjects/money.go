package valueobjects

import "fmt"

// Money is an amount in the shop's currency, held in cents to avoid float
// arithmetic on prices.
type Money struct {
	amountInCents int64
	currency      string
}

const defaultCurrency = "PHP"

func NewMoney(amountInCents int64, currency string) Money {
	if currency == "" {
		currency = defaultCurrency
	}
	return Money{
		amountInCents: amountInCents,
		currency:      currency,
	}
}

func (m Money) AmountInCents() int64 {
	return m.amountInCents
}

func (m Money) Currency() string {
	if m.currency == "" {
		return defaultCurrency
	}
	return m.currency
}

func (m Money) Add(other Money) Money {
	return Money{
		amountInCents: m.amountInCents + other.amountInCents,
		currency:      m.Currency(),
	}
}

func (m Money) Equals(other Money) bool {
	return m.amountInCents == other.amountInCents && m.Currency() == other.Currency()
}

func (m Money) IsPositive() bool {
	return m.amountInCents > 0
}

func (m Money) IsNegative() bool {
	return m.amountInCents < 0
}

func (m Money) String() string {
	return fmt.Sprintf("%s %d.%02d", m.Currency(), m.amountInCents/100, m.amountInCents%100)
}
