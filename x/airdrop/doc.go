/*
Package airdrop implements a one-shot distribution of ledger tokens.

The registry owns a ledger account, derived from the condition
airdrop/registry/<symbol>, that is funded with an ordinary transfer. The
owner registers how much each recipient may claim. Every address can be
registered once. A recipient claims its whole entitlement in one go, after
which the entitlement is zero. The owner may pause claims and may sweep
whatever is left on the registry account back to itself.

Sweeping does not touch the entitlements. A recipient that did not claim
before a sweep still has an entitlement, but its claim fails because the
registry account is empty.
*/
package airdrop
