// Copyright 2026 The Caliper Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"github.com/pingcap/errors"
)

// WrapError wraps an error into the given normalized error, returning nil if
// the inner error is nil.
func WrapError(rfcError *errors.Error, err error, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return rfcError.Wrap(err).GenWithStackByArgs(args...)
}

// RFCCode extracts the RFC error code of an error or of any error in its
// cause chain.
func RFCCode(err error) (errors.RFCErrorCode, bool) {
	type rfcCoder interface {
		RFCCode() errors.RFCErrorCode
	}
	if coder, ok := err.(rfcCoder); ok {
		return coder.RFCCode(), true
	}
	cause := errors.Unwrap(err)
	if cause == nil {
		return errors.RFCErrorCode(""), false
	}
	return RFCCode(cause)
}

var configurationErrorCodes = map[errors.RFCErrorCode]struct{}{
	ErrContractIDMissing.RFCCode():       {},
	ErrContractFunctionMissing.RFCCode(): {},
	ErrChannelNotResolved.RFCCode():      {},
	ErrUnknownIdentity.RFCCode():         {},
	ErrContractNotFound.RFCCode():        {},
	ErrIdentityNotInWallet.RFCCode():     {},
	ErrWorkloadConfigInvalid.RFCCode():   {},
}

// IsConfigurationError reports whether the error originates from a workload
// configuration mistake. Configuration errors are surfaced to the caller and
// must never be converted into ordinary failed status records silently.
func IsConfigurationError(err error) bool {
	code, ok := RFCCode(err)
	if !ok {
		return false
	}
	_, ok = configurationErrorCodes[code]
	return ok
}
