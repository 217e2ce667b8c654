// Copyright (c) 2020 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/direct-state-transfer/escrow-sdk-go
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package escrowsdk

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCategory represents the category of the error, which describes how the error should be handled
// by the client.
type ErrorCategory int

const (
	// ClientError is caused by the errors in the request from the client. It could be errors in arguments
	// or errors in configuration provided by the client.
	//
	// To resolve this, the client should provide valid arguments or configuration and retry.
	ClientError ErrorCategory = iota

	// RemoteError is caused when the transaction building backend rejects the request, cannot be reached
	// or returns a response that cannot be interpreted.
	//
	// To resolve this, the client should check the state of the backend and retry.
	RemoteError

	// InternalError is caused due to unintended behavior in the sdk, such as a failure to sign a
	// transaction that passed validation.
	//
	// To resolve this, user should manually inspect the error message and handle it.
	InternalError
)

// String implements the stringer interface for ErrorCategory.
func (c ErrorCategory) String() string {
	return [...]string{
		"Client",
		"Remote",
		"Internal",
	}[c]
}

// ErrorCode is a numeric code for each error.
type ErrorCode int

// Error codes for each error defined in the sdk.
const (
	ErrInvalidArgument      ErrorCode = 201
	ErrUnsupportedProtocol  ErrorCode = 202
	ErrUnsupportedTokenType ErrorCode = 203
	ErrRemoteRejected       ErrorCode = 301
	ErrRemoteUnreachable    ErrorCode = 302
	ErrMalformedResponse    ErrorCode = 303
	ErrSigningFailed        ErrorCode = 401
	ErrUnknownInternal      ErrorCode = 402
)

// APIError represents the errors returned by the sdk.
type APIError struct {
	category ErrorCategory
	code     ErrorCode
	message  string
	addInfo  interface{}
}

// Category returns the category of the error.
func (e APIError) Category() ErrorCategory {
	return e.category
}

// Code returns the error code.
func (e APIError) Code() ErrorCode {
	return e.code
}

// Message returns the error message.
func (e APIError) Message() string {
	return e.message
}

// AddInfo returns the additional info about the error.
func (e APIError) AddInfo() interface{} {
	return e.addInfo
}

// Error implements the error interface.
func (e APIError) Error() string {
	return fmt.Sprintf("Category: %s, Code: %d, Message: %s, AddInfo: %+v",
		e.Category(), e.Code(), e.Message(), e.AddInfo())
}

type (
	// InvalidArgumentInfo represents the fields in the additional info for
	// ErrInvalidArgument, ErrUnsupportedProtocol and ErrUnsupportedTokenType.
	InvalidArgumentInfo struct {
		Name        string
		Value       string
		Requirement string
	}

	// RemoteInfo represents the fields in the additional info for
	// ErrRemoteRejected, ErrRemoteUnreachable and ErrMalformedResponse.
	RemoteInfo struct {
		Method     string
		Path       string
		StatusCode int
		Body       string
	}
)

// NewErrInvalidArgument returns an ErrInvalidArgument API Error with the given
// argument name, value, requirement for the argument and the error message.
func NewErrInvalidArgument(name, value, requirement, message string) APIError {
	return APIError{
		category: ClientError,
		code:     ErrInvalidArgument,
		message:  message,
		addInfo: InvalidArgumentInfo{
			Name:        name,
			Value:       value,
			Requirement: requirement,
		},
	}
}

// NewErrUnsupportedProtocol returns an ErrUnsupportedProtocol API Error for the given protocol.
func NewErrUnsupportedProtocol(p Protocol) APIError {
	return APIError{
		category: ClientError,
		code:     ErrUnsupportedProtocol,
		message:  "Unsupported protocol",
		addInfo: InvalidArgumentInfo{
			Name:        "protocol",
			Value:       string(p),
			Requirement: "one of ETHEREUM, CELO, BSC, POLYGON, AVAXCCHAIN",
		},
	}
}

// NewErrUnsupportedTokenType returns an ErrUnsupportedTokenType API Error for the given token type.
// The requirement lists the token types accepted by the operation.
func NewErrUnsupportedTokenType(t TokenType, requirement string) APIError {
	return APIError{
		category: ClientError,
		code:     ErrUnsupportedTokenType,
		message:  "Unsupported token type",
		addInfo: InvalidArgumentInfo{
			Name:        "tokenType",
			Value:       string(t),
			Requirement: requirement,
		},
	}
}

// NewErrRemoteRejected returns an ErrRemoteRejected API Error for a request that the backend answered
// with a non success status.
func NewErrRemoteRejected(method, path string, statusCode int, body string) APIError {
	return APIError{
		category: RemoteError,
		code:     ErrRemoteRejected,
		message:  fmt.Sprintf("Request rejected by backend with status %d", statusCode),
		addInfo: RemoteInfo{
			Method:     method,
			Path:       path,
			StatusCode: statusCode,
			Body:       body,
		},
	}
}

// NewErrRemoteUnreachable returns an ErrRemoteUnreachable API Error for a request that could not be
// delivered to the backend.
func NewErrRemoteUnreachable(method, path string, err error) APIError {
	return APIError{
		category: RemoteError,
		code:     ErrRemoteUnreachable,
		message:  "Backend not reachable: " + err.Error(),
		addInfo: RemoteInfo{
			Method: method,
			Path:   path,
		},
	}
}

// NewErrMalformedResponse returns an ErrMalformedResponse API Error for a response that could not be
// interpreted.
func NewErrMalformedResponse(method, path, reason string) APIError {
	return APIError{
		category: RemoteError,
		code:     ErrMalformedResponse,
		message:  "Malformed response from backend: " + reason,
		addInfo: RemoteInfo{
			Method: method,
			Path:   path,
		},
	}
}

// NewErrSigningFailed returns an ErrSigningFailed API Error.
func NewErrSigningFailed(p Protocol, err error) APIError {
	return APIError{
		category: InternalError,
		code:     ErrSigningFailed,
		message:  fmt.Sprintf("Signing %s transaction: %v", p, err),
	}
}

// NewErrUnknownInternal returns an ErrUnknownInternal API Error with the given error message.
func NewErrUnknownInternal(err error) APIError {
	return APIError{
		category: InternalError,
		code:     ErrUnknownInternal,
		message:  err.Error(),
	}
}

// AsAPIError returns the APIError in the chain of err, if any.
func AsAPIError(err error) (APIError, bool) {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return APIError{}, false
}
