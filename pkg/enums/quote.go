package enums

// QuoteStatus tracks whether a quote can still be mutated.
type QuoteStatus string

const (
	QuoteStatusActive   QuoteStatus = "active"
	QuoteStatusInactive QuoteStatus = "inactive"
)

func (q QuoteStatus) IsValid() bool {
	switch q {
	case QuoteStatusActive, QuoteStatusInactive:
		return true
	}
	return false
}
