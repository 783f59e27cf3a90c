/*
Package x holds what the extensions of the chain share: the Authenticator
that tells a handler who signed the transaction.

The extensions live in the sub packages. ledger keeps token balances,
airdrop keeps the distribution registry and pays entitlements through the
ledger, sigs verifies signatures and utils has the decorators that wrap
every handler.
*/
package x
