package loyalty

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrCouponCodeExhausted = errors.New("coupon code retries exhausted")
	ErrInvalidInput        = errors.New("invalid input")
)
