package service

import "time"

const (
	// ApprovedClass is the model class label meaning "loan approved". The
	// training pipeline encodes Loan_Status Y as 1.
	ApprovedClass = 1

	cacheKeyPrefix  = "loan:prediction:"
	DefaultCacheTTL = 10 * time.Minute
)
