package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/spf13/viper"
)

const (
	paramDialRetryInterval = "dial-retry-interval"  // constant
	paramDialRetryMaxCount = "dial-retry-max-count" // constant + exponential
	paramDialRetryMaxTime  = "dial-retry-max-time"  // constant + exponential
	paramDialRetryPolicy   = "dial-retry-policy"

	defaultDialRetryInterval = 1 * time.Second  // constant
	defaultDialRetryMaxCount = 0                // constant + exponential
	defaultDialRetryMaxTime  = 15 * time.Second // constant + exponential
	defaultDialRetryPolicy   = policyExponential

	policyConstant    = "constant"
	policyDisabled    = "disabled"
	policyExponential = "exponential"
)

type BackoffFactory func() backoff.BackOff

// NewBackoffFactory creates a new BackoffFactory based on a backoff.ExponentialBackOff.
//
// backoff.ConstantBackOff lacks randomization of interval and a maximum
// duration, so the constant policy is a backoff.ExponentialBackOff with a
// Multiplier of 1.0 instead.
func NewBackoffFactory(multiplier float64, maxElapsedTime, interval time.Duration, maxRetries uint64) BackoffFactory {
	return func() backoff.BackOff {
		bo := backoff.NewExponentialBackOff()
		bo.Multiplier = multiplier
		bo.MaxElapsedTime = maxElapsedTime
		bo.InitialInterval = interval
		bo.Reset() // Reset is required to make the InitialInterval change take effect.
		if maxRetries == 0 {
			return bo
		}
		return backoff.WithMaxRetries(bo, maxRetries)
	}
}

// GetDialRetryFromViper reads the connection retry policy applied when the
// statsd sink dials a stream transport.
func GetDialRetryFromViper(v *viper.Viper) (BackoffFactory, error) {
	v.SetDefault(paramDialRetryInterval, defaultDialRetryInterval) // constant
	v.SetDefault(paramDialRetryMaxCount, defaultDialRetryMaxCount) // constant + exponential
	v.SetDefault(paramDialRetryMaxTime, defaultDialRetryMaxTime)   // constant + exponential
	v.SetDefault(paramDialRetryPolicy, defaultDialRetryPolicy)

	retryInterval := v.GetDuration(paramDialRetryInterval) // constant
	retryMaxCount := v.GetInt64(paramDialRetryMaxCount)    // constant + exponential
	retryMaxTime := v.GetDuration(paramDialRetryMaxTime)   // constant + exponential
	retryPolicy := v.GetString(paramDialRetryPolicy)

	if retryInterval <= 0 {
		return nil, errors.New(paramDialRetryInterval + " must be positive")
	}

	if retryMaxCount < 0 {
		return nil, errors.New(paramDialRetryMaxCount + " must be zero or positive")
	}

	if retryMaxTime <= 0 {
		return nil, errors.New(paramDialRetryMaxTime + " must be positive")
	}

	switch retryPolicy {
	case policyDisabled:
		return func() backoff.BackOff { return &backoff.StopBackOff{} }, nil
	case policyExponential:
		return NewBackoffFactory(backoff.DefaultMultiplier, retryMaxTime, backoff.DefaultInitialInterval, uint64(retryMaxCount)), nil
	case policyConstant:
		return NewBackoffFactory(1.0, retryMaxTime, retryInterval, uint64(retryMaxCount)), nil
	default:
		return nil, fmt.Errorf("%s (%s) not one of %s, %s, or %s", paramDialRetryPolicy, retryPolicy, policyDisabled, policyConstant, policyExponential)
	}
}
