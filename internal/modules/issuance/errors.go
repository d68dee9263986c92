package issuance

import "errors"

var (
	ErrRequestNotFound    = errors.New("request not found")
	ErrIssueNotFound      = errors.New("issue not found")
	ErrOfficeNotFound     = errors.New("office not found")
	ErrRequestNotApproved = errors.New("request is not approved")
	ErrAlreadyIssued      = errors.New("request already issued")
	ErrInvalidQuantity    = errors.New("quantity must be > 0")
	ErrExceedsIssued      = errors.New("return exceeds issued quantity")
)
