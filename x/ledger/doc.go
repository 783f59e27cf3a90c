/*
Package ledger implements a single fungible token with a fixed supply.

The token is created once, from the genesis file, and its whole supply is
credited to an initial holder. After that the supply can only shrink: holders
may transfer their balance to any address or burn it. The sum of all balances
always equals the total supply recorded on the token.

All amounts are counted in base units. One whole token is 10^18 base units.
*/
package ledger
