/*
Package errors provides the error values shared by all tokendrop packages.

Every error returned to a client wraps a root error created with Register.
The root error carries the ABCI code reported in the transaction result, so
clients can tell "insufficient amount" from "paused" without parsing
messages. Codes below 100 belong to this package; extensions register
their own range (the airdrop uses 200 to 209).

Wrap and Wrapf add context while keeping the root error reachable:

	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "transfer")
	}
	...
	if errors.ErrAmount.Is(err) { ... }

The first wrap records a stack trace, printed with the %+v verb. Validation
code reports per field problems with Field and AppendField, and groups
them with Append.

Errors that do not wrap a registered root are internal. ABCIInfo reports
them with code 1 and a generic message unless running in debug mode.
*/
package errors
